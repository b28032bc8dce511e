package store

import (
	"context"
	"database/sql"
)

const menuItemColumns = `id, menu_id, parent_id, name, target, type, url, route, route_parameters,
link_class, wrapper_class, parameters, menuable_type, menuable_id, use_menuable_name, lft, rgt`

func scanMenuItem(row interface{ Scan(...any) error }) (MenuItem, error) {
	var i MenuItem
	err := row.Scan(
		&i.ID, &i.MenuID, &i.ParentID, &i.Name, &i.Target, &i.Type,
		&i.Url, &i.Route, &i.RouteParameters,
		&i.LinkClass, &i.WrapperClass, &i.Parameters,
		&i.MenuableType, &i.MenuableID, &i.UseMenuableName,
		&i.Lft, &i.Rgt,
	)
	return i, err
}

const createMenuItem = `
INSERT INTO menu_items (
	menu_id, parent_id, name, target, type, url, route, route_parameters,
	link_class, wrapper_class, parameters, menuable_type, menuable_id,
	use_menuable_name, lft, rgt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + menuItemColumns

// CreateMenuItemParams holds the arguments for CreateMenuItem.
type CreateMenuItemParams struct {
	MenuID          int64
	ParentID        sql.NullInt64
	Name            string
	Target          string
	Type            string
	Url             sql.NullString
	Route           sql.NullString
	RouteParameters sql.NullString
	LinkClass       sql.NullString
	WrapperClass    sql.NullString
	Parameters      sql.NullString
	MenuableType    sql.NullString
	MenuableID      sql.NullInt64
	UseMenuableName bool
	Lft             int64
	Rgt             int64
}

// CreateMenuItem inserts a new menu item and returns the created row.
// Interval bounds must be prepared by the caller (gap already opened).
func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRowContext(ctx, createMenuItem,
		arg.MenuID, arg.ParentID, arg.Name, arg.Target, arg.Type,
		arg.Url, arg.Route, arg.RouteParameters,
		arg.LinkClass, arg.WrapperClass, arg.Parameters,
		arg.MenuableType, arg.MenuableID, arg.UseMenuableName,
		arg.Lft, arg.Rgt,
	)
	return scanMenuItem(row)
}

const getMenuItemByID = `
SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ?`

// GetMenuItemByID fetches a menu item by its primary key.
func (q *Queries) GetMenuItemByID(ctx context.Context, id int64) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, getMenuItemByID, id))
}

const listMenuItems = `
SELECT ` + menuItemColumns + ` FROM menu_items WHERE menu_id = ? ORDER BY lft`

// ListMenuItems returns all items of a menu in nested-set default order:
// pre-order, each parent immediately followed by its descendants.
func (q *Queries) ListMenuItems(ctx context.Context, menuID int64) ([]MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, listMenuItems, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const updateMenuItem = `
UPDATE menu_items SET
	name = ?, target = ?, type = ?, url = ?, route = ?, route_parameters = ?,
	link_class = ?, wrapper_class = ?, parameters = ?,
	menuable_type = ?, menuable_id = ?, use_menuable_name = ?
WHERE id = ?
RETURNING ` + menuItemColumns

// UpdateMenuItemParams holds the arguments for UpdateMenuItem.
type UpdateMenuItemParams struct {
	ID              int64
	Name            string
	Target          string
	Type            string
	Url             sql.NullString
	Route           sql.NullString
	RouteParameters sql.NullString
	LinkClass       sql.NullString
	WrapperClass    sql.NullString
	Parameters      sql.NullString
	MenuableType    sql.NullString
	MenuableID      sql.NullInt64
	UseMenuableName bool
}

// UpdateMenuItem rewrites an item's payload fields. Tree placement
// (parent, interval bounds) is untouched.
func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRowContext(ctx, updateMenuItem,
		arg.Name, arg.Target, arg.Type, arg.Url, arg.Route, arg.RouteParameters,
		arg.LinkClass, arg.WrapperClass, arg.Parameters,
		arg.MenuableType, arg.MenuableID, arg.UseMenuableName,
		arg.ID,
	)
	return scanMenuItem(row)
}

const updateMenuItemPlacement = `
UPDATE menu_items SET parent_id = ?, lft = ?, rgt = ? WHERE id = ?
`

// UpdateMenuItemPlacementParams holds the arguments for UpdateMenuItemPlacement.
type UpdateMenuItemPlacementParams struct {
	ID       int64
	ParentID sql.NullInt64
	Lft      int64
	Rgt      int64
}

// UpdateMenuItemPlacement rewrites an item's position in the tree,
// preserving its identity and payload fields.
func (q *Queries) UpdateMenuItemPlacement(ctx context.Context, arg UpdateMenuItemPlacementParams) error {
	_, err := q.db.ExecContext(ctx, updateMenuItemPlacement, arg.ParentID, arg.Lft, arg.Rgt, arg.ID)
	return err
}

const deleteMenuItemSubtree = `
DELETE FROM menu_items WHERE menu_id = ? AND lft >= ? AND rgt <= ?
`

// DeleteMenuItemSubtreeParams holds the arguments for DeleteMenuItemSubtree.
type DeleteMenuItemSubtreeParams struct {
	MenuID int64
	Lft    int64
	Rgt    int64
}

// DeleteMenuItemSubtree removes a node and all its descendants in one
// interval scan. Returns the number of rows deleted.
func (q *Queries) DeleteMenuItemSubtree(ctx context.Context, arg DeleteMenuItemSubtreeParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteMenuItemSubtree, arg.MenuID, arg.Lft, arg.Rgt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ShiftMenuItemBoundsParams holds the arguments for the interval shift queries.
type ShiftMenuItemBoundsParams struct {
	MenuID int64
	At     int64
	Delta  int64
}

const shiftMenuItemLftFrom = `
UPDATE menu_items SET lft = lft + ? WHERE menu_id = ? AND lft >= ?
`

// ShiftMenuItemLftFrom shifts every left bound at or beyond At by Delta.
func (q *Queries) ShiftMenuItemLftFrom(ctx context.Context, arg ShiftMenuItemBoundsParams) error {
	_, err := q.db.ExecContext(ctx, shiftMenuItemLftFrom, arg.Delta, arg.MenuID, arg.At)
	return err
}

const shiftMenuItemRgtFrom = `
UPDATE menu_items SET rgt = rgt + ? WHERE menu_id = ? AND rgt >= ?
`

// ShiftMenuItemRgtFrom shifts every right bound at or beyond At by Delta.
func (q *Queries) ShiftMenuItemRgtFrom(ctx context.Context, arg ShiftMenuItemBoundsParams) error {
	_, err := q.db.ExecContext(ctx, shiftMenuItemRgtFrom, arg.Delta, arg.MenuID, arg.At)
	return err
}

const shiftMenuItemLftAfter = `
UPDATE menu_items SET lft = lft + ? WHERE menu_id = ? AND lft > ?
`

// ShiftMenuItemLftAfter shifts every left bound strictly beyond At by Delta.
func (q *Queries) ShiftMenuItemLftAfter(ctx context.Context, arg ShiftMenuItemBoundsParams) error {
	_, err := q.db.ExecContext(ctx, shiftMenuItemLftAfter, arg.Delta, arg.MenuID, arg.At)
	return err
}

const shiftMenuItemRgtAfter = `
UPDATE menu_items SET rgt = rgt + ? WHERE menu_id = ? AND rgt > ?
`

// ShiftMenuItemRgtAfter shifts every right bound strictly beyond At by Delta.
func (q *Queries) ShiftMenuItemRgtAfter(ctx context.Context, arg ShiftMenuItemBoundsParams) error {
	_, err := q.db.ExecContext(ctx, shiftMenuItemRgtAfter, arg.Delta, arg.MenuID, arg.At)
	return err
}

const maxMenuItemRgt = `
SELECT MAX(rgt) FROM menu_items WHERE menu_id = ?
`

// MaxMenuItemRgt returns the largest right bound in a menu's forest, or an
// invalid NullInt64 when the menu has no items.
func (q *Queries) MaxMenuItemRgt(ctx context.Context, menuID int64) (sql.NullInt64, error) {
	row := q.db.QueryRowContext(ctx, maxMenuItemRgt, menuID)
	var max sql.NullInt64
	err := row.Scan(&max)
	return max, err
}

const countMenuItems = `
SELECT COUNT(*) FROM menu_items WHERE menu_id = ?
`

// CountMenuItems returns the number of items in a menu.
func (q *Queries) CountMenuItems(ctx context.Context, menuID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMenuItems, menuID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
