package store

import (
	"database/sql"
	"time"
)

// Menu is a row of the menus table.
type Menu struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItem is a row of the menu_items table. Lft and Rgt are the
// nested-set interval bounds: a node's interval strictly contains the
// intervals of all its descendants, and ordering by Lft yields the
// pre-order listing of the tree.
type MenuItem struct {
	ID              int64
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

// Event is a row of the events table.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// Page is a row of the pages table.
type Page struct {
	ID        int64
	Title     string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
