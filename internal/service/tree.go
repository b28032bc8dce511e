// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

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
	"github.com/biostate/menu-builder-go/internal/model"
	"github.com/biostate/menu-builder-go/internal/store"
	"github.com/biostate/menu-builder-go/internal/util"
)

// CopySuffix is appended to a duplicated item's display label.
const CopySuffix = " (copy)"

// treeCachePrefix namespaces cached resolved trees, keyed by menu ID.
const treeCachePrefix = "menu:tree:"

// TreeNode is one node of the materialized menu tree handed to the
// admin surface: the item's fields plus its lazily resolved link.
type TreeNode struct {
	ID              int64        `json:"id"`
	ParentID        *int64       `json:"parent_id,omitempty"`
	Name            string       `json:"name"`
	DisplayName     string       `json:"display_name"`
	Target          string       `json:"target"`
	Type            string       `json:"type"`
	TypeLabel       string       `json:"type_label"`
	URL             *string      `json:"url,omitempty"`
	Route           *string      `json:"route,omitempty"`
	RouteParameters []model.Pair `json:"route_parameters,omitempty"`
	LinkClass       *string      `json:"link_class,omitempty"`
	WrapperClass    *string      `json:"wrapper_class,omitempty"`
	Parameters      []model.Pair `json:"parameters,omitempty"`
	MenuableType    *string      `json:"menuable_type,omitempty"`
	MenuableID      *int64       `json:"menuable_id,omitempty"`
	UseMenuableName bool         `json:"use_menuable_name"`
	Link            Resolution   `json:"link"`
	Children        []TreeNode   `json:"children"`
}

// SnapshotNode is one node of the full tree snapshot a drag-and-drop
// editor submits: identities plus the new nesting, nothing else.
type SnapshotNode struct {
	ID       int64          `json:"id"`
	Children []SnapshotNode `json:"children,omitempty"`
}

// ItemInput carries the payload fields for creating or updating an item.
// Structured parameters arrive as the edit form's pair lists and are
// normalized to mappings for storage.
type ItemInput struct {
	Name            string
	Target          string
	Type            string
	URL             *string
	Route           *string
	RouteParameters []model.Pair
	LinkClass       *string
	WrapperClass    *string
	Parameters      []model.Pair
	MenuableType    *string
	MenuableID      *int64
	UseMenuableName bool
}

// TreeService maintains the nested-set item trees: ordering, parenting
// and cascading mutation. Every multi-row rewrite runs in one
// transaction; partial application of a tree change is not possible.
type TreeService struct {
	db       *sql.DB
	queries  *store.Queries
	resolver *Resolver
	trees    *cache.Typed[[]TreeNode]
}

// NewTreeService creates a TreeService. c may be nil to disable caching.
func NewTreeService(db *sql.DB, resolver *Resolver, c cache.Cache) *TreeService {
	s := &TreeService{
		db:       db,
		queries:  store.New(db),
		resolver: resolver,
	}
	if c != nil {
		s.trees = cache.NewTyped[[]TreeNode](c, treeCachePrefix)
	}
	return s
}

// AddItem inserts a new item as the last root node of the menu, or as
// the last child of parentID when given. A stale parent reference is a
// no-op and returns nil.
func (s *TreeService) AddItem(ctx context.Context, menuID int64, parentID *int64, in ItemInput) (*store.MenuItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	if _, err := qtx.GetMenuByID(ctx, menuID); err != nil {
		return nil, fmt.Errorf("loading menu %d: %w", menuID, err)
	}

	arg, err := createParams(menuID, in)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := qtx.GetMenuItemByID(ctx, *parentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading parent item %d: %w", *parentID, err)
		}
		if parent.MenuID != menuID {
			return nil, fmt.Errorf("parent item %d belongs to a different menu", parent.ID)
		}
		// Append as last child: open a two-wide gap at the parent's
		// right bound. The parent's own interval widens with it.
		at := parent.Rgt
		if err := s.openGap(ctx, qtx, menuID, at); err != nil {
			return nil, err
		}
		arg.ParentID = sql.NullInt64{Int64: parent.ID, Valid: true}
		arg.Lft = at
		arg.Rgt = at + 1
	} else {
		// Append as last root node, directly after the forest's
		// rightmost interval.
		max, err := qtx.MaxMenuItemRgt(ctx, menuID)
		if err != nil {
			return nil, fmt.Errorf("reading forest bounds: %w", err)
		}
		at := int64(1)
		if max.Valid {
			at = max.Int64 + 1
		}
		arg.Lft = at
		arg.Rgt = at + 1
	}

	item, err := qtx.CreateMenuItem(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("creating menu item: %w", err)
	}
	if err := s.touchAndCommit(ctx, tx, qtx, menuID); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem rewrites an item's payload fields without touching its
// placement. A stale item id is a no-op and returns nil.
func (s *TreeService) UpdateItem(ctx context.Context, itemID int64, in ItemInput) (*store.MenuItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	existing, err := qtx.GetMenuItemByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading menu item %d: %w", itemID, err)
	}

	create, err := createParams(existing.MenuID, in)
	if err != nil {
		return nil, err
	}
	item, err := qtx.UpdateMenuItem(ctx, store.UpdateMenuItemParams{
		ID:              itemID,
		Name:            create.Name,
		Target:          create.Target,
		Type:            create.Type,
		Url:             create.Url,
		Route:           create.Route,
		RouteParameters: create.RouteParameters,
		LinkClass:       create.LinkClass,
		WrapperClass:    create.WrapperClass,
		Parameters:      create.Parameters,
		MenuableType:    create.MenuableType,
		MenuableID:      create.MenuableID,
		UseMenuableName: create.UseMenuableName,
	})
	if err != nil {
		return nil, fmt.Errorf("updating menu item %d: %w", itemID, err)
	}
	if err := s.touchAndCommit(ctx, tx, qtx, existing.MenuID); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item and its whole descendant subtree in one
// atomic interval scan, then closes the gap. Deleting an id that no
// longer exists is a no-op; concurrent deletes of the same subtree are
// therefore safe.
func (s *TreeService) DeleteItem(ctx context.Context, itemID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	item, err := qtx.GetMenuItemByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("loading menu item %d: %w", itemID, err)
	}

	deleted, err := qtx.DeleteMenuItemSubtree(ctx, store.DeleteMenuItemSubtreeParams{
		MenuID: item.MenuID,
		Lft:    item.Lft,
		Rgt:    item.Rgt,
	})
	if err != nil {
		return 0, fmt.Errorf("deleting subtree of item %d: %w", itemID, err)
	}

	width := item.Rgt - item.Lft + 1
	shift := store.ShiftMenuItemBoundsParams{MenuID: item.MenuID, At: item.Rgt, Delta: -width}
	if err := qtx.ShiftMenuItemLftAfter(ctx, shift); err != nil {
		return 0, fmt.Errorf("closing interval gap: %w", err)
	}
	if err := qtx.ShiftMenuItemRgtAfter(ctx, shift); err != nil {
		return 0, fmt.Errorf("closing interval gap: %w", err)
	}

	if err := s.touchAndCommit(ctx, tx, qtx, item.MenuID); err != nil {
		return 0, err
	}
	return deleted, nil
}

// DuplicateItem clones an item's payload fields into a new item placed
// as the immediate next sibling of the original, with " (copy)" appended
// to the label. Descendants are not cloned. A stale id is a no-op.
func (s *TreeService) DuplicateItem(ctx context.Context, itemID int64) (*store.MenuItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	orig, err := qtx.GetMenuItemByID(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading menu item %d: %w", itemID, err)
	}

	// Insert directly after the original's subtree interval.
	at := orig.Rgt + 1
	if err := s.openGap(ctx, qtx, orig.MenuID, at); err != nil {
		return nil, err
	}

	clone, err := qtx.CreateMenuItem(ctx, store.CreateMenuItemParams{
		MenuID:          orig.MenuID,
		ParentID:        orig.ParentID,
		Name:            orig.Name + CopySuffix,
		Target:          orig.Target,
		Type:            orig.Type,
		Url:             orig.Url,
		Route:           orig.Route,
		RouteParameters: orig.RouteParameters,
		LinkClass:       orig.LinkClass,
		WrapperClass:    orig.WrapperClass,
		Parameters:      orig.Parameters,
		MenuableType:    orig.MenuableType,
		MenuableID:      orig.MenuableID,
		UseMenuableName: orig.UseMenuableName,
		Lft:             at,
		Rgt:             at + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("duplicating menu item %d: %w", itemID, err)
	}
	if err := s.touchAndCommit(ctx, tx, qtx, orig.MenuID); err != nil {
		return nil, err
	}
	return &clone, nil
}

// Rebuild replaces the whole persisted tree of a menu with the submitted
// snapshot: same item identities, new nesting and order. The snapshot
// must cover exactly the menu's current item set; a partial or stale
// snapshot is rejected so the editor reloads instead of silently losing
// structure. All placements are rewritten in one transaction.
func (s *TreeService) Rebuild(ctx context.Context, menuID int64, snapshot []SnapshotNode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	items, err := qtx.ListMenuItems(ctx, menuID)
	if err != nil {
		return fmt.Errorf("loading items of menu %d: %w", menuID, err)
	}
	existing := make(map[int64]bool, len(items))
	for _, item := range items {
		existing[item.ID] = true
	}

	counter := int64(1)
	seen := 0
	var place func(nodes []SnapshotNode, parent sql.NullInt64) error
	place = func(nodes []SnapshotNode, parent sql.NullInt64) error {
		for _, node := range nodes {
			if !existing[node.ID] {
				return fmt.Errorf("item %d does not belong to menu %d", node.ID, menuID)
			}
			existing[node.ID] = false
			seen++

			lft := counter
			counter++
			if err := place(node.Children, sql.NullInt64{Int64: node.ID, Valid: true}); err != nil {
				return err
			}
			rgt := counter
			counter++

			if err := qtx.UpdateMenuItemPlacement(ctx, store.UpdateMenuItemPlacementParams{
				ID:       node.ID,
				ParentID: parent,
				Lft:      lft,
				Rgt:      rgt,
			}); err != nil {
				return fmt.Errorf("placing item %d: %w", node.ID, err)
			}
		}
		return nil
	}
	if err := place(snapshot, sql.NullInt64{}); err != nil {
		return err
	}
	if seen != len(items) {
		return fmt.Errorf("snapshot covers %d of %d items in menu %d", seen, len(items), menuID)
	}

	return s.touchAndCommit(ctx, tx, qtx, menuID)
}

// Tree loads a menu's items in pre-order and materializes them into a
// nested tree with each item's link resolved. Per-item resolution
// failures degrade that item to a placeholder link; configuration errors
// abort the listing.
func (s *TreeService) Tree(ctx context.Context, menuID int64) ([]TreeNode, error) {
	key := strconv.FormatInt(menuID, 10)
	if s.trees != nil {
		if nodes, found, err := s.trees.Get(ctx, key); err == nil && found {
			return nodes, nil
		} else if err != nil {
			slog.Warn("menu tree cache read failed", "error", err, "menu_id", menuID)
		}
	}

	items, err := s.queries.ListMenuItems(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("loading items of menu %d: %w", menuID, err)
	}

	roots := []TreeNode{}
	type frame struct {
		node *TreeNode
		rgt  int64
	}
	var stack []frame
	for _, item := range items {
		node, err := s.node(ctx, item)
		if err != nil {
			return nil, err
		}

		for len(stack) > 0 && item.Lft > stack[len(stack)-1].rgt {
			stack = stack[:len(stack)-1]
		}
		var slot *[]TreeNode
		if len(stack) == 0 {
			slot = &roots
		} else {
			slot = &stack[len(stack)-1].node.Children
		}
		*slot = append(*slot, node)
		stack = append(stack, frame{node: &(*slot)[len(*slot)-1], rgt: item.Rgt})
	}

	if s.trees != nil {
		if err := s.trees.Set(ctx, key, roots, 0); err != nil {
			slog.Warn("menu tree cache write failed", "error", err, "menu_id", menuID)
		}
	}
	return roots, nil
}

// node converts a stored item into its tree view, resolving the link.
func (s *TreeService) node(ctx context.Context, item store.MenuItem) (TreeNode, error) {
	res, err := s.resolver.Resolve(ctx, item)
	if err != nil {
		return TreeNode{}, err
	}

	routeParams, err := model.ParseParams(item.RouteParameters.String)
	if err != nil {
		return TreeNode{}, fmt.Errorf("item %d: %w", item.ID, err)
	}
	params, err := model.ParseParams(item.Parameters.String)
	if err != nil {
		return TreeNode{}, fmt.Errorf("item %d: %w", item.ID, err)
	}

	return TreeNode{
		ID:              item.ID,
		ParentID:        util.PtrFromNullInt64(item.ParentID),
		Name:            item.Name,
		DisplayName:     s.resolver.DisplayName(ctx, item),
		Target:          item.Target,
		Type:            item.Type,
		TypeLabel:       s.resolver.TypeLabel(item),
		URL:             util.PtrFromNullString(item.Url),
		Route:           util.PtrFromNullString(item.Route),
		RouteParameters: routeParams.Pairs(),
		LinkClass:       util.PtrFromNullString(item.LinkClass),
		WrapperClass:    util.PtrFromNullString(item.WrapperClass),
		Parameters:      params.Pairs(),
		MenuableType:    util.PtrFromNullString(item.MenuableType),
		MenuableID:      util.PtrFromNullInt64(item.MenuableID),
		UseMenuableName: item.UseMenuableName,
		Link:            res,
		Children:        []TreeNode{},
	}, nil
}

// openGap widens the forest by two positions at the given bound to make
// room for one new leaf.
func (s *TreeService) openGap(ctx context.Context, qtx *store.Queries, menuID, at int64) error {
	shift := store.ShiftMenuItemBoundsParams{MenuID: menuID, At: at, Delta: 2}
	if err := qtx.ShiftMenuItemLftFrom(ctx, shift); err != nil {
		return fmt.Errorf("opening interval gap: %w", err)
	}
	if err := qtx.ShiftMenuItemRgtFrom(ctx, shift); err != nil {
		return fmt.Errorf("opening interval gap: %w", err)
	}
	return nil
}

// touchAndCommit bumps the owning menu's updated_at, commits, and
// invalidates the cached tree.
func (s *TreeService) touchAndCommit(ctx context.Context, tx *sql.Tx, qtx *store.Queries, menuID int64) error {
	if err := qtx.TouchMenu(ctx, store.TouchMenuParams{ID: menuID, UpdatedAt: time.Now()}); err != nil {
		return fmt.Errorf("touching menu %d: %w", menuID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	s.invalidate(ctx, menuID)
	return nil
}

// invalidate drops the cached tree for a menu.
func (s *TreeService) invalidate(ctx context.Context, menuID int64) {
	if s.trees == nil {
		return
	}
	if err := s.trees.Delete(ctx, strconv.FormatInt(menuID, 10)); err != nil {
		slog.Warn("menu tree cache invalidation failed", "error", err, "menu_id", menuID)
	}
}

// createParams normalizes an ItemInput into storage form.
func createParams(menuID int64, in ItemInput) (store.CreateMenuItemParams, error) {
	target := in.Target
	if target == "" {
		target = model.TargetSelf
	}
	if !model.IsValidTarget(target) {
		return store.CreateMenuItemParams{}, fmt.Errorf("invalid target %q", in.Target)
	}

	routeParams, err := model.ParamsFromPairs(in.RouteParameters).MarshalText()
	if err != nil {
		return store.CreateMenuItemParams{}, err
	}
	params, err := model.ParamsFromPairs(in.Parameters).MarshalText()
	if err != nil {
		return store.CreateMenuItemParams{}, err
	}

	return store.CreateMenuItemParams{
		MenuID:          menuID,
		Name:            in.Name,
		Target:          target,
		Type:            string(model.ParseItemType(in.Type)),
		Url:             util.NullStringFromPtr(in.URL),
		Route:           util.NullStringFromPtr(in.Route),
		RouteParameters: util.NullStringFromValue(routeParams),
		LinkClass:       util.NullStringFromPtr(in.LinkClass),
		WrapperClass:    util.NullStringFromPtr(in.WrapperClass),
		Parameters:      util.NullStringFromValue(params),
		MenuableType:    util.NullStringFromPtr(in.MenuableType),
		MenuableID:      util.NullInt64FromPtr(in.MenuableID),
		UseMenuableName: in.UseMenuableName,
	}, nil
}
