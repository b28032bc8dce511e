package store

import (
	"context"
	"time"
)

const createPage = `
INSERT INTO pages (title, slug, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id, title, slug, created_at, updated_at
`

// CreatePageParams holds the arguments for CreatePage.
type CreatePageParams struct {
	Title     string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePage inserts a new page and returns the created row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, createPage, arg.Title, arg.Slug, arg.CreatedAt, arg.UpdatedAt)
	var p Page
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPageByID = `
SELECT id, title, slug, created_at, updated_at FROM pages WHERE id = ?
`

// GetPageByID fetches a page by its primary key.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (Page, error) {
	row := q.db.QueryRowContext(ctx, getPageByID, id)
	var p Page
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const searchPages = `
SELECT id, title, slug, created_at, updated_at FROM pages
WHERE LOWER(title) LIKE '%' || LOWER(?) || '%'
ORDER BY title LIMIT ?
`

// SearchPagesParams holds the arguments for SearchPages.
type SearchPagesParams struct {
	Term  string
	Limit int64
}

// SearchPages returns pages whose title contains the term,
// case-insensitively, ordered by title.
func (q *Queries) SearchPages(ctx context.Context, arg SearchPagesParams) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, searchPages, arg.Term, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
