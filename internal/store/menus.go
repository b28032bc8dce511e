package store

import (
	"context"
	"time"
)

const createMenu = `
INSERT INTO menus (name, slug, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id, name, slug, created_at, updated_at
`

// CreateMenuParams holds the arguments for CreateMenu.
type CreateMenuParams struct {
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateMenu inserts a new menu and returns the created row.
func (q *Queries) CreateMenu(ctx context.Context, arg CreateMenuParams) (Menu, error) {
	row := q.db.QueryRowContext(ctx, createMenu, arg.Name, arg.Slug, arg.CreatedAt, arg.UpdatedAt)
	var m Menu
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const getMenuByID = `
SELECT id, name, slug, created_at, updated_at FROM menus WHERE id = ?
`

// GetMenuByID fetches a menu by its primary key.
func (q *Queries) GetMenuByID(ctx context.Context, id int64) (Menu, error) {
	row := q.db.QueryRowContext(ctx, getMenuByID, id)
	var m Menu
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const getMenuBySlug = `
SELECT id, name, slug, created_at, updated_at FROM menus WHERE slug = ?
`

// GetMenuBySlug fetches a menu by slug.
func (q *Queries) GetMenuBySlug(ctx context.Context, slug string) (Menu, error) {
	row := q.db.QueryRowContext(ctx, getMenuBySlug, slug)
	var m Menu
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const listMenus = `
SELECT id, name, slug, created_at, updated_at FROM menus ORDER BY name
`

// ListMenus returns all menus ordered by name.
func (q *Queries) ListMenus(ctx context.Context) ([]Menu, error) {
	rows, err := q.db.QueryContext(ctx, listMenus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var menus []Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

const updateMenu = `
UPDATE menus SET name = ?, slug = ?, updated_at = ?
WHERE id = ?
RETURNING id, name, slug, created_at, updated_at
`

// UpdateMenuParams holds the arguments for UpdateMenu.
type UpdateMenuParams struct {
	ID        int64
	Name      string
	Slug      string
	UpdatedAt time.Time
}

// UpdateMenu rewrites a menu's name and slug.
func (q *Queries) UpdateMenu(ctx context.Context, arg UpdateMenuParams) (Menu, error) {
	row := q.db.QueryRowContext(ctx, updateMenu, arg.Name, arg.Slug, arg.UpdatedAt, arg.ID)
	var m Menu
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const touchMenu = `
UPDATE menus SET updated_at = ? WHERE id = ?
`

// TouchMenuParams holds the arguments for TouchMenu.
type TouchMenuParams struct {
	ID        int64
	UpdatedAt time.Time
}

// TouchMenu bumps a menu's updated_at marker. Item mutations use this in
// place of per-item timestamps.
func (q *Queries) TouchMenu(ctx context.Context, arg TouchMenuParams) error {
	_, err := q.db.ExecContext(ctx, touchMenu, arg.UpdatedAt, arg.ID)
	return err
}

const deleteMenu = `
DELETE FROM menus WHERE id = ?
`

// DeleteMenu removes a menu. Items cascade at the storage level.
func (q *Queries) DeleteMenu(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteMenu, id)
	return err
}

const menuSlugExists = `
SELECT COUNT(*) FROM menus WHERE slug = ?
`

// MenuSlugExists reports how many menus carry the given slug.
func (q *Queries) MenuSlugExists(ctx context.Context, slug string) (int64, error) {
	row := q.db.QueryRowContext(ctx, menuSlugExists, slug)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const menuSlugExistsExcluding = `
SELECT COUNT(*) FROM menus WHERE slug = ? AND id != ?
`

// MenuSlugExistsExcludingParams holds the arguments for MenuSlugExistsExcluding.
type MenuSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// MenuSlugExistsExcluding reports how many other menus carry the given slug.
func (q *Queries) MenuSlugExistsExcluding(ctx context.Context, arg MenuSlugExistsExcludingParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, menuSlugExistsExcluding, arg.Slug, arg.ID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
