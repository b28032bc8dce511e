// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biostate/menu-builder-go/internal/testutil"
)

func newMenuService(t *testing.T) *MenuService {
	t.Helper()
	return NewMenuService(testutil.TestDB(t), nil)
}

func TestMenuCreateDerivesSlug(t *testing.T) {
	s := newMenuService(t)

	menu, err := s.Create(context.Background(), "Main Menu")
	require.NoError(t, err)
	assert.Equal(t, "Main Menu", menu.Name)
	assert.Equal(t, "main-menu", menu.Slug)
}

func TestMenuCreateSuffixesCollidingSlug(t *testing.T) {
	s := newMenuService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Main Menu")
	require.NoError(t, err)

	second, err := s.Create(ctx, "Main Menu")
	require.NoError(t, err)
	assert.Equal(t, "main-menu-2", second.Slug)

	third, err := s.Create(ctx, "Main Menu")
	require.NoError(t, err)
	assert.Equal(t, "main-menu-3", third.Slug)
}

func TestMenuRenameKeepsSlug(t *testing.T) {
	s := newMenuService(t)
	ctx := context.Background()

	menu, err := s.Create(ctx, "Main Menu")
	require.NoError(t, err)

	renamed, err := s.Rename(ctx, menu.ID, "Primary Navigation")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, "Primary Navigation", renamed.Name)
	assert.Equal(t, "main-menu", renamed.Slug)
}

func TestMenuRenameStaleIDIsNoOp(t *testing.T) {
	s := newMenuService(t)

	menu, err := s.Rename(context.Background(), 9999, "X")
	require.NoError(t, err)
	assert.Nil(t, menu)
}

func TestRegenerateSlugFollowsName(t *testing.T) {
	s := newMenuService(t)
	ctx := context.Background()

	menu, err := s.Create(ctx, "Main Menu")
	require.NoError(t, err)
	_, err = s.Rename(ctx, menu.ID, "Primary Navigation")
	require.NoError(t, err)

	updated, err := s.RegenerateSlug(ctx, menu.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "primary-navigation", updated.Slug)
}

func TestRegenerateSlugStableWhenNameUnchanged(t *testing.T) {
	s := newMenuService(t)
	ctx := context.Background()

	menu, err := s.Create(ctx, "Main Menu")
	require.NoError(t, err)

	// The menu's own slug does not count as a collision.
	updated, err := s.RegenerateSlug(ctx, menu.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "main-menu", updated.Slug)
}

func TestMenuDeleteCascadesAndIsIdempotent(t *testing.T) {
	db := testutil.TestDB(t)
	s := NewMenuService(db, nil)
	ctx := context.Background()

	menu, err := s.Create(ctx, "Doomed")
	require.NoError(t, err)

	resolver, err := NewResolver(RouteMap{}, nil, "http://test.local")
	require.NoError(t, err)
	trees := NewTreeService(db, resolver, nil)
	_, err = trees.AddItem(ctx, menu.ID, nil, ItemInput{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, menu.ID))

	_, err = s.Get(ctx, menu.ID)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM menu_items").Scan(&count))
	assert.Equal(t, int64(0), count)

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, menu.ID))
}

func TestMenuList(t *testing.T) {
	s := newMenuService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Zeta")
	require.NoError(t, err)
	_, err = s.Create(ctx, "Alpha")
	require.NoError(t, err)

	menus, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, "Alpha", menus[0].Name)
	assert.Equal(t, "Zeta", menus[1].Name)
}
