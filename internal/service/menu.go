// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

// Package service implements the menu domain on top of the store layer:
// menu lifecycle, nested-set tree mutation, and link resolution.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/biostate/menu-builder-go/internal/cache"
	"github.com/biostate/menu-builder-go/internal/store"
	"github.com/biostate/menu-builder-go/internal/util"
)

// MenuService manages menu lifecycle: creation with slug derivation,
// renames that keep published slugs stable, and deletion.
type MenuService struct {
	queries *store.Queries
	trees   *cache.Typed[[]TreeNode]
}

// NewMenuService creates a MenuService. c may be nil to disable caching.
func NewMenuService(db *sql.DB, c cache.Cache) *MenuService {
	s := &MenuService{queries: store.New(db)}
	if c != nil {
		s.trees = cache.NewTyped[[]TreeNode](c, treeCachePrefix)
	}
	return s
}

// Create inserts a new menu, deriving a unique slug from the name.
func (s *MenuService) Create(ctx context.Context, name string) (store.Menu, error) {
	slug, err := s.uniqueSlug(ctx, name, 0)
	if err != nil {
		return store.Menu{}, err
	}
	now := time.Now()
	menu, err := s.queries.CreateMenu(ctx, store.CreateMenuParams{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.Menu{}, fmt.Errorf("creating menu: %w", err)
	}
	return menu, nil
}

// Rename changes a menu's display name. The slug is left untouched so
// published references keep working. A stale id is a no-op and returns nil.
func (s *MenuService) Rename(ctx context.Context, id int64, name string) (*store.Menu, error) {
	menu, err := s.queries.GetMenuByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading menu %d: %w", id, err)
	}
	updated, err := s.queries.UpdateMenu(ctx, store.UpdateMenuParams{
		ID:        id,
		Name:      name,
		Slug:      menu.Slug,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("renaming menu %d: %w", id, err)
	}
	return &updated, nil
}

// RegenerateSlug re-derives a menu's slug from its current name, on
// explicit request only. The menu's own slug does not count as a
// collision, so regenerating an unchanged name is stable.
func (s *MenuService) RegenerateSlug(ctx context.Context, id int64) (*store.Menu, error) {
	menu, err := s.queries.GetMenuByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading menu %d: %w", id, err)
	}
	slug, err := s.uniqueSlug(ctx, menu.Name, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.queries.UpdateMenu(ctx, store.UpdateMenuParams{
		ID:        id,
		Name:      menu.Name,
		Slug:      slug,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("updating menu %d: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a menu; its items cascade at the storage level.
// Deleting an id that no longer exists is a no-op.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	if _, err := s.queries.GetMenuByID(ctx, id); errors.Is(err, sql.ErrNoRows) {
		return nil
	} else if err != nil {
		return fmt.Errorf("loading menu %d: %w", id, err)
	}
	if err := s.queries.DeleteMenu(ctx, id); err != nil {
		return fmt.Errorf("deleting menu %d: %w", id, err)
	}
	if s.trees != nil {
		if err := s.trees.Delete(ctx, strconv.FormatInt(id, 10)); err != nil {
			slog.Warn("menu tree cache invalidation failed", "error", err, "menu_id", id)
		}
	}
	return nil
}

// Get fetches a menu by id.
func (s *MenuService) Get(ctx context.Context, id int64) (store.Menu, error) {
	return s.queries.GetMenuByID(ctx, id)
}

// GetBySlug fetches a menu by slug.
func (s *MenuService) GetBySlug(ctx context.Context, slug string) (store.Menu, error) {
	return s.queries.GetMenuBySlug(ctx, slug)
}

// List returns all menus ordered by name.
func (s *MenuService) List(ctx context.Context) ([]store.Menu, error) {
	return s.queries.ListMenus(ctx)
}

// uniqueSlug derives a slug from name that collides with no other menu.
// excludeID > 0 leaves that menu's own slug out of the collision check.
func (s *MenuService) uniqueSlug(ctx context.Context, name string, excludeID int64) (string, error) {
	base := util.Slugify(name)
	return util.UniqueSlug(base, func(slug string) (bool, error) {
		var (
			count int64
			err   error
		)
		if excludeID > 0 {
			count, err = s.queries.MenuSlugExistsExcluding(ctx, store.MenuSlugExistsExcludingParams{
				Slug: slug,
				ID:   excludeID,
			})
		} else {
			count, err = s.queries.MenuSlugExists(ctx, slug)
		}
		if err != nil {
			return false, fmt.Errorf("checking slug %q: %w", slug, err)
		}
		return count > 0, nil
	})
}
