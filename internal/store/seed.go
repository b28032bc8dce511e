package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biostate/menu-builder-go/internal/model"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if the default menu already exists
	_, err := queries.GetMenuBySlug(ctx, model.MenuMain)
	if err == nil {
		slog.Info("default menu already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for default menu: %w", err)
	}

	now := time.Now()
	menu, err := queries.CreateMenu(ctx, CreateMenuParams{
		Name:      "Main",
		Slug:      model.MenuMain,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating default menu: %w", err)
	}

	slog.Info("created default menu", "id", menu.ID, "slug", menu.Slug)
	return nil
}
