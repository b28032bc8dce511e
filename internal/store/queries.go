// Package store provides database access for menus, menu items, pages
// and the event log. Queries follow the sqlc calling convention: a
// Queries value bound to a DBTX, one method per statement, params structs
// for multi-argument statements.
package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries exposes all database statements bound to a connection or transaction.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given connection.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
