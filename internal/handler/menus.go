// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/biostate/menu-builder-go/internal/service"
	"github.com/biostate/menu-builder-go/internal/store"
)

// MenuResponse is the API representation of a menu.
type MenuResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func menuResponse(m store.Menu) MenuResponse {
	return MenuResponse{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MenuRequest is the payload for creating or renaming a menu.
type MenuRequest struct {
	Name string `json:"name"`
}

// ListMenus returns all menus ordered by name.
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.menus.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list menus")
		return
	}
	resp := make([]MenuResponse, 0, len(menus))
	for _, m := range menus {
		resp = append(resp, menuResponse(m))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreateMenu creates a new menu with a slug derived from the name.
func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var req MenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	menu, err := h.menus.Create(r.Context(), req.Name)
	if err != nil {
		WriteInternalError(w, "Failed to create menu")
		return
	}
	WriteCreated(w, menuResponse(menu))
}

// GetMenu fetches a single menu by ID.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	menu, err := h.menus.Get(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Menu not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to retrieve menu")
		return
	}
	WriteSuccess(w, menuResponse(menu), nil)
}

// UpdateMenu renames a menu. The slug stays stable across renames.
func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	var req MenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	menu, err := h.menus.Rename(r.Context(), id, req.Name)
	if err != nil {
		WriteInternalError(w, "Failed to update menu")
		return
	}
	if menu == nil {
		WriteNotFound(w, "Menu not found")
		return
	}
	WriteSuccess(w, menuResponse(*menu), nil)
}

// RegenerateMenuSlug re-derives a menu's slug from its current name.
func (h *Handler) RegenerateMenuSlug(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	menu, err := h.menus.RegenerateSlug(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to regenerate slug")
		return
	}
	if menu == nil {
		WriteNotFound(w, "Menu not found")
		return
	}
	WriteSuccess(w, menuResponse(*menu), nil)
}

// DeleteMenu removes a menu and all of its items.
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	if err := h.menus.Delete(r.Context(), id); err != nil {
		WriteInternalError(w, "Failed to delete menu")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

// GetMenuTree returns a menu's items as a nested tree with resolved links.
func (h *Handler) GetMenuTree(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	if _, err := h.menus.Get(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Menu not found")
		return
	} else if err != nil {
		WriteInternalError(w, "Failed to retrieve menu")
		return
	}

	tree, err := h.trees.Tree(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to build menu tree")
		return
	}
	WriteSuccess(w, tree, nil)
}

// RebuildMenuTree replaces a menu's tree structure from a full snapshot.
func (h *Handler) RebuildMenuTree(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	var snapshot []service.SnapshotNode
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if _, err := h.menus.Get(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Menu not found")
		return
	} else if err != nil {
		WriteInternalError(w, "Failed to retrieve menu")
		return
	}

	if err := h.trees.Rebuild(r.Context(), id, snapshot); err != nil {
		WriteBadRequest(w, "Stale tree snapshot, reload the menu", nil)
		return
	}
	WriteSuccess(w, map[string]bool{"rebuilt": true}, nil)
}
