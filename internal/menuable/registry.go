// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

// Package menuable lets application entities be linked from model-type
// menu items. An entity kind registers a Provider under a type
// identifier; the entity values it returns expose their canonical menu
// link (and optionally menu name) through small capability interfaces.
package menuable

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// SearchLimit caps the number of results an entity-picker search returns.
const SearchLimit = 10

// Linker is the capability an entity must implement to be linkable from
// a menu. Its absence on a referenced entity is a configuration error,
// not a per-record condition.
type Linker interface {
	MenuLink() string
}

// Namer is the optional capability of exposing a display name. Items
// with use_menuable_name set read it; entities without it fall back to
// the item's stored name.
type Namer interface {
	MenuName() string
}

// Option is one entry of an entity-picker search result.
type Option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Provider loads and searches entities of one registered kind.
type Provider interface {
	// Find returns the entity with the given id, or found=false when no
	// such record exists.
	Find(ctx context.Context, id int64) (entity any, found bool, err error)

	// Search returns up to limit entities whose display field contains
	// term, case-insensitively, as picker options.
	Search(ctx context.Context, term string, limit int) ([]Option, error)
}

// Configuration errors. These indicate integration bugs and propagate,
// unlike per-record resolution failures.
var (
	ErrUnknownType = errors.New("menuable type is not registered")
	ErrNotMenuable = errors.New("you need to implement the menu link capability")
)

// Registry maps type identifiers to providers. Registration happens at
// startup; lookups are read-only afterwards, so no locking is needed.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register binds a provider to a type identifier, replacing any previous
// binding for the same identifier.
func (r *Registry) Register(typeID string, p Provider) {
	r.providers[typeID] = p
}

// Types returns all registered type identifiers, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.providers))
	for t := range r.providers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Find loads an entity by type identifier and id. An unregistered type
// identifier is a configuration error wrapping ErrUnknownType.
func (r *Registry) Find(ctx context.Context, typeID string, id int64) (any, bool, error) {
	p, ok := r.providers[typeID]
	if !ok {
		return nil, false, fmt.Errorf("menuable type %q: %w", typeID, ErrUnknownType)
	}
	return p.Find(ctx, id)
}

// Search runs the entity-picker search for a type identifier. Results
// are capped at SearchLimit regardless of the requested limit.
func (r *Registry) Search(ctx context.Context, typeID, term string) ([]Option, error) {
	p, ok := r.providers[typeID]
	if !ok {
		return nil, fmt.Errorf("menuable type %q: %w", typeID, ErrUnknownType)
	}
	return p.Search(ctx, term, SearchLimit)
}
