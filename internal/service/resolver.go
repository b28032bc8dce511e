// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

// Package service provides the menu business logic: link resolution,
// slug management and nested-set tree maintenance.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/biostate/menu-builder-go/internal/menuable"
	"github.com/biostate/menu-builder-go/internal/model"
	"github.com/biostate/menu-builder-go/internal/store"
)

// Placeholder is the link an item degrades to when resolution fails.
const Placeholder = "#"

// Resolution is the outcome of resolving one item's link. Resolution
// failures are data, never errors: a tree render degrades the failing
// item to the placeholder link and carries on.
type Resolution struct {
	URL           string   `json:"url"`
	Resolved      bool     `json:"resolved"`
	Error         string   `json:"error,omitempty"`
	MissingParams []string `json:"missing_params,omitempty"`
}

// Resolver computes the effective link, display name and type label of
// menu items at read time. It holds the three collaborator capabilities:
// a named-route table, the menuable registry, and the site base URL.
type Resolver struct {
	routes   RouteExpander
	registry *menuable.Registry
	base     *url.URL
	title    cases.Caser
}

// NewResolver creates a resolver. baseURL must be absolute.
func NewResolver(routes RouteExpander, registry *menuable.Registry, baseURL string) (*Resolver, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL %q is not absolute", baseURL)
	}
	return &Resolver{
		routes:   routes,
		registry: registry,
		base:     base,
		title:    cases.Title(language.English),
	}, nil
}

// SiteRoot returns the site root URL used as the empty-link fallback.
func (r *Resolver) SiteRoot() string {
	return r.base.String()
}

// ToAbsolute expands a site-relative path against the base URL.
func (r *Resolver) ToAbsolute(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return r.base.ResolveReference(ref).String()
}

// Resolve computes the item's effective link. The returned error is
// non-nil only for configuration errors (unregistered menuable type,
// missing menu-link capability); every data-level failure is reported
// inside the Resolution instead.
func (r *Resolver) Resolve(ctx context.Context, item store.MenuItem) (Resolution, error) {
	switch model.ParseItemType(item.Type) {
	case model.ItemTypeRoute:
		return r.resolveRoute(item), nil
	case model.ItemTypeModel:
		return r.resolveModel(ctx, item)
	default:
		return r.resolveLink(item), nil
	}
}

// resolveLink handles static links. It cannot fail: empty links fall
// back to the site root and relative paths expand against the base URL.
func (r *Resolver) resolveLink(item store.MenuItem) Resolution {
	raw := strings.TrimSpace(item.Url.String)
	if !item.Url.Valid || raw == "" {
		return Resolution{URL: r.SiteRoot(), Resolved: true}
	}
	if raw == Placeholder {
		return Resolution{URL: Placeholder, Resolved: true}
	}
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return Resolution{URL: raw, Resolved: true}
	}
	return Resolution{URL: r.ToAbsolute(raw), Resolved: true}
}

func (r *Resolver) resolveRoute(item store.MenuItem) Resolution {
	params, err := model.ParseParams(item.RouteParameters.String)
	if err != nil {
		return Resolution{URL: Placeholder, Error: "Route error: " + err.Error()}
	}

	path, err := r.routes.Expand(item.Route.String, params)
	if err != nil {
		var missing *MissingRouteParamsError
		if errors.As(err, &missing) {
			return Resolution{
				URL:           Placeholder,
				Error:         err.Error(),
				MissingParams: missing.Params,
			}
		}
		return Resolution{URL: Placeholder, Error: "Route error: " + err.Error()}
	}
	return Resolution{URL: r.ToAbsolute(path), Resolved: true}
}

func (r *Resolver) resolveModel(ctx context.Context, item store.MenuItem) (Resolution, error) {
	if !item.MenuableType.Valid || !item.MenuableID.Valid {
		return Resolution{URL: Placeholder, Error: "Model not found"}, nil
	}

	entity, found, err := r.registry.Find(ctx, item.MenuableType.String, item.MenuableID.Int64)
	if err != nil {
		return Resolution{}, err
	}
	if !found {
		return Resolution{URL: Placeholder, Error: "Model not found"}, nil
	}

	linker, ok := entity.(menuable.Linker)
	if !ok {
		return Resolution{}, fmt.Errorf("menuable type %q: %w",
			item.MenuableType.String, menuable.ErrNotMenuable)
	}
	return Resolution{URL: linker.MenuLink(), Resolved: true}, nil
}

// DisplayName computes the item's effective label. Model items with
// use_menuable_name read the entity's own name; every failure along that
// path falls back to the stored name rather than surfacing.
func (r *Resolver) DisplayName(ctx context.Context, item store.MenuItem) string {
	if model.ParseItemType(item.Type) != model.ItemTypeModel || !item.UseMenuableName {
		return item.Name
	}
	if !item.MenuableType.Valid || !item.MenuableID.Valid {
		return item.Name
	}
	entity, found, err := r.registry.Find(ctx, item.MenuableType.String, item.MenuableID.Int64)
	if err != nil || !found {
		return item.Name
	}
	if namer, ok := entity.(menuable.Namer); ok {
		return namer.MenuName()
	}
	return item.Name
}

// TypeLabel returns the human-readable type label. Model items are
// labelled with the short kind of the referenced entity ("Page") instead
// of the generic word "Model".
func (r *Resolver) TypeLabel(item store.MenuItem) string {
	t := model.ParseItemType(item.Type)
	if t != model.ItemTypeModel || !item.MenuableType.Valid {
		return t.Label()
	}
	kind := item.MenuableType.String
	if i := strings.LastIndexAny(kind, "/."); i >= 0 {
		kind = kind[i+1:]
	}
	return r.title.String(kind)
}
