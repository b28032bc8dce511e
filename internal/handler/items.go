// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/biostate/menu-builder-go/internal/model"
	"github.com/biostate/menu-builder-go/internal/service"
	"github.com/biostate/menu-builder-go/internal/store"
	"github.com/biostate/menu-builder-go/internal/util"
)

// ItemRequest is the payload for creating or updating a menu item.
type ItemRequest struct {
	ParentID        *int64       `json:"parent_id,omitempty"`
	Name            string       `json:"name"`
	Target          string       `json:"target,omitempty"`
	Type            string       `json:"type,omitempty"`
	URL             *string      `json:"url,omitempty"`
	Route           *string      `json:"route,omitempty"`
	RouteParameters []model.Pair `json:"route_parameters,omitempty"`
	LinkClass       *string      `json:"link_class,omitempty"`
	WrapperClass    *string      `json:"wrapper_class,omitempty"`
	Parameters      []model.Pair `json:"parameters,omitempty"`
	MenuableType    *string      `json:"menuable_type,omitempty"`
	MenuableID      *int64       `json:"menuable_id,omitempty"`
	UseMenuableName bool         `json:"use_menuable_name,omitempty"`
}

func (req ItemRequest) input() service.ItemInput {
	return service.ItemInput{
		Name:            req.Name,
		Target:          req.Target,
		Type:            req.Type,
		URL:             req.URL,
		Route:           req.Route,
		RouteParameters: req.RouteParameters,
		LinkClass:       req.LinkClass,
		WrapperClass:    req.WrapperClass,
		Parameters:      req.Parameters,
		MenuableType:    req.MenuableType,
		MenuableID:      req.MenuableID,
		UseMenuableName: req.UseMenuableName,
	}
}

// ItemResponse is the flat API representation of a stored menu item.
type ItemResponse struct {
	ID              int64        `json:"id"`
	MenuID          int64        `json:"menu_id"`
	ParentID        *int64       `json:"parent_id,omitempty"`
	Name            string       `json:"name"`
	Target          string       `json:"target"`
	Type            string       `json:"type"`
	URL             *string      `json:"url,omitempty"`
	Route           *string      `json:"route,omitempty"`
	RouteParameters []model.Pair `json:"route_parameters,omitempty"`
	LinkClass       *string      `json:"link_class,omitempty"`
	WrapperClass    *string      `json:"wrapper_class,omitempty"`
	Parameters      []model.Pair `json:"parameters,omitempty"`
	MenuableType    *string      `json:"menuable_type,omitempty"`
	MenuableID      *int64       `json:"menuable_id,omitempty"`
	UseMenuableName bool         `json:"use_menuable_name"`
}

func itemResponse(item store.MenuItem) (ItemResponse, error) {
	routeParams, err := model.ParseParams(item.RouteParameters.String)
	if err != nil {
		return ItemResponse{}, err
	}
	params, err := model.ParseParams(item.Parameters.String)
	if err != nil {
		return ItemResponse{}, err
	}
	return ItemResponse{
		ID:              item.ID,
		MenuID:          item.MenuID,
		ParentID:        util.PtrFromNullInt64(item.ParentID),
		Name:            item.Name,
		Target:          item.Target,
		Type:            item.Type,
		URL:             util.PtrFromNullString(item.Url),
		Route:           util.PtrFromNullString(item.Route),
		RouteParameters: routeParams.Pairs(),
		LinkClass:       util.PtrFromNullString(item.LinkClass),
		WrapperClass:    util.PtrFromNullString(item.WrapperClass),
		Parameters:      params.Pairs(),
		MenuableType:    util.PtrFromNullString(item.MenuableType),
		MenuableID:      util.PtrFromNullInt64(item.MenuableID),
		UseMenuableName: item.UseMenuableName,
	}, nil
}

// CreateItem appends a new item to a menu, at root level or under the
// given parent. A stale parent reference is reported as success with no
// data so a concurrently edited tree does not error out.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	menuID, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid menu ID", nil)
		return
	}
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}
	if req.Target != "" && !model.IsValidTarget(req.Target) {
		WriteValidationError(w, map[string]string{"target": "Target must be '_self' or '_blank'"})
		return
	}

	item, err := h.trees.AddItem(r.Context(), menuID, req.ParentID, req.input())
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Menu not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to create menu item")
		return
	}
	if item == nil {
		WriteSuccess(w, nil, nil)
		return
	}
	resp, err := itemResponse(*item)
	if err != nil {
		WriteInternalError(w, "Failed to encode menu item")
		return
	}
	WriteCreated(w, resp)
}

// UpdateItem rewrites an item's payload fields. A stale item ID is
// reported as success with no data.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid item ID", nil)
		return
	}
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}
	if req.Target != "" && !model.IsValidTarget(req.Target) {
		WriteValidationError(w, map[string]string{"target": "Target must be '_self' or '_blank'"})
		return
	}

	item, err := h.trees.UpdateItem(r.Context(), id, req.input())
	if err != nil {
		WriteInternalError(w, "Failed to update menu item")
		return
	}
	if item == nil {
		WriteSuccess(w, nil, nil)
		return
	}
	resp, err := itemResponse(*item)
	if err != nil {
		WriteInternalError(w, "Failed to encode menu item")
		return
	}
	WriteSuccess(w, resp, nil)
}

// DeleteItem removes an item and its whole subtree. Deleting an already
// removed item succeeds with a zero count.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid item ID", nil)
		return
	}
	deleted, err := h.trees.DeleteItem(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to delete menu item")
		return
	}
	WriteSuccess(w, map[string]int64{"deleted": deleted}, nil)
}

// DuplicateItem clones an item next to the original and returns the new
// item so the editor can open it immediately. A stale item ID is
// reported as success with no data.
func (h *Handler) DuplicateItem(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid item ID", nil)
		return
	}
	item, err := h.trees.DuplicateItem(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to duplicate menu item")
		return
	}
	if item == nil {
		WriteSuccess(w, nil, nil)
		return
	}
	resp, err := itemResponse(*item)
	if err != nil {
		WriteInternalError(w, "Failed to encode menu item")
		return
	}
	WriteCreated(w, resp)
}
