// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package menuable

import (
	"context"
	"database/sql"
	"errors"

	"github.com/biostate/menu-builder-go/internal/store"
)

// TypePage is the type identifier the built-in page provider registers under.
const TypePage = "page"

// PageEntity adapts a store.Page to the menuable capabilities.
type PageEntity struct {
	store.Page
}

// MenuLink returns the page's canonical site-relative link.
func (p PageEntity) MenuLink() string {
	return "/" + p.Slug
}

// MenuName returns the page title.
func (p PageEntity) MenuName() string {
	return p.Title
}

// PageProvider serves pages as menuable entities.
type PageProvider struct {
	queries *store.Queries
}

// NewPageProvider creates a provider backed by the pages table.
func NewPageProvider(db *sql.DB) *PageProvider {
	return &PageProvider{queries: store.New(db)}
}

// Find implements Provider.
func (p *PageProvider) Find(ctx context.Context, id int64) (any, bool, error) {
	page, err := p.queries.GetPageByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return PageEntity{page}, true, nil
}

// Search implements Provider.
func (p *PageProvider) Search(ctx context.Context, term string, limit int) ([]Option, error) {
	pages, err := p.queries.SearchPages(ctx, store.SearchPagesParams{
		Term:  term,
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(pages))
	for _, page := range pages {
		options = append(options, Option{ID: page.ID, Label: page.Title})
	}
	return options, nil
}
