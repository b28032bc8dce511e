// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/biostate/menu-builder-go/internal/menuable"
	"github.com/biostate/menu-builder-go/internal/service"
	"github.com/biostate/menu-builder-go/internal/store"
	"github.com/biostate/menu-builder-go/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Queries) {
	t.Helper()

	db := testutil.TestDB(t)
	registry := menuable.NewRegistry()
	registry.Register(menuable.TypePage, menuable.NewPageProvider(db))

	resolver, err := service.NewResolver(service.RouteMap{"home": "/"}, registry, "http://test.local")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	h := NewHandler(db, service.NewMenuService(db, nil), service.NewTreeService(db, resolver, nil), registry)
	r := chi.NewRouter()
	r.Route("/api/v1", h.Routes)
	return r, store.New(db)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response envelope: %v", err)
	}
	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("decoding response data: %v", err)
		}
	}
}

func createMenuViaAPI(t *testing.T, h http.Handler, name string) MenuResponse {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/menus", MenuRequest{Name: name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create menu status = %d, body %s", rec.Code, rec.Body.String())
	}
	var menu MenuResponse
	decodeData(t, rec, &menu)
	return menu
}

func createItemViaAPI(t *testing.T, h http.Handler, menuID int64, req ItemRequest) ItemResponse {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/menus/%d/items", menuID), req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d, body %s", rec.Code, rec.Body.String())
	}
	var item ItemResponse
	decodeData(t, rec, &item)
	return item
}

func TestStatusEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status StatusResponse
	decodeData(t, rec, &status)
	if status.Status != "ok" {
		t.Errorf("Status = %q, want ok", status.Status)
	}
}

func TestMenuLifecycle(t *testing.T) {
	h, _ := newTestRouter(t)

	menu := createMenuViaAPI(t, h, "Main Menu")
	if menu.Slug != "main-menu" {
		t.Errorf("slug = %q, want main-menu", menu.Slug)
	}

	// Rename keeps the slug.
	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/menus/%d", menu.ID), MenuRequest{Name: "Primary"})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d", rec.Code)
	}
	var renamed MenuResponse
	decodeData(t, rec, &renamed)
	if renamed.Name != "Primary" || renamed.Slug != "main-menu" {
		t.Errorf("renamed = %+v", renamed)
	}

	// Explicit slug regeneration follows the new name.
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/menus/%d/slug", menu.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("regenerate status = %d", rec.Code)
	}
	var regenerated MenuResponse
	decodeData(t, rec, &regenerated)
	if regenerated.Slug != "primary" {
		t.Errorf("regenerated slug = %q, want primary", regenerated.Slug)
	}

	// List contains the menu.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/menus", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var menus []MenuResponse
	decodeData(t, rec, &menus)
	if len(menus) != 1 {
		t.Fatalf("got %d menus, want 1", len(menus))
	}

	// Delete, then reads 404.
	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/menus/%d", menu.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/menus/%d", menu.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateMenuValidation(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/menus", MenuRequest{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestRenameMissingMenuIs404(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/menus/9999", MenuRequest{Name: "X"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestItemLifecycle(t *testing.T) {
	h, _ := newTestRouter(t)
	menu := createMenuViaAPI(t, h, "Main")

	root := createItemViaAPI(t, h, menu.ID, ItemRequest{Name: "Home"})
	child := createItemViaAPI(t, h, menu.ID, ItemRequest{Name: "Docs", ParentID: &root.ID})
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Fatalf("child parent = %v, want %d", child.ParentID, root.ID)
	}

	// Update payload fields.
	url := "/docs"
	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/items/%d", child.ID), ItemRequest{
		Name:   "Documentation",
		Target: "_blank",
		URL:    &url,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated ItemResponse
	decodeData(t, rec, &updated)
	if updated.Name != "Documentation" || updated.Target != "_blank" {
		t.Errorf("updated = %+v", updated)
	}

	// The tree endpoint reflects nesting and resolved links.
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/menus/%d/tree", menu.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tree status = %d", rec.Code)
	}
	var tree []service.TreeNode
	decodeData(t, rec, &tree)
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Fatalf("tree shape = %+v", tree)
	}
	if tree[0].Link.URL != "http://test.local" {
		t.Errorf("root link = %q, want site root", tree[0].Link.URL)
	}
	if tree[0].Children[0].Link.URL != "http://test.local/docs" {
		t.Errorf("child link = %q", tree[0].Children[0].Link.URL)
	}

	// Duplicate returns the clone for immediate editing.
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/items/%d/duplicate", child.ID), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
	var clone ItemResponse
	decodeData(t, rec, &clone)
	if clone.Name != "Documentation (copy)" {
		t.Errorf("clone name = %q", clone.Name)
	}

	// Delete the root: the whole subtree goes.
	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/items/%d", root.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	var deleted map[string]int64
	decodeData(t, rec, &deleted)
	if deleted["deleted"] != 3 {
		t.Errorf("deleted = %d, want 3", deleted["deleted"])
	}
}

func TestCreateItemStaleParentSucceedsEmpty(t *testing.T) {
	h, _ := newTestRouter(t)
	menu := createMenuViaAPI(t, h, "Main")

	stale := int64(9999)
	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/menus/%d/items", menu.ID), ItemRequest{
		Name:     "Orphan",
		ParentID: &stale,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCreateItemInvalidTarget(t *testing.T) {
	h, _ := newTestRouter(t)
	menu := createMenuViaAPI(t, h, "Main")

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/menus/%d/items", menu.ID), ItemRequest{
		Name:   "X",
		Target: "_parent",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestRebuildEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)
	menu := createMenuViaAPI(t, h, "Main")

	a := createItemViaAPI(t, h, menu.ID, ItemRequest{Name: "A"})
	b := createItemViaAPI(t, h, menu.ID, ItemRequest{Name: "B"})

	// Move A under B.
	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/menus/%d/tree", menu.ID), []service.SnapshotNode{
		{ID: b.ID, Children: []service.SnapshotNode{{ID: a.ID}}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("rebuild status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/menus/%d/tree", menu.ID), nil)
	var tree []service.TreeNode
	decodeData(t, rec, &tree)
	if len(tree) != 1 || tree[0].Name != "B" || len(tree[0].Children) != 1 {
		t.Fatalf("tree after rebuild = %+v", tree)
	}

	// A partial snapshot is rejected.
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/menus/%d/tree", menu.ID), []service.SnapshotNode{
		{ID: b.ID},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("partial rebuild status = %d, want 400", rec.Code)
	}
}

func TestMenuableEndpoints(t *testing.T) {
	h, q := newTestRouter(t)

	now := time.Now()
	if _, err := q.CreatePage(context.Background(), store.CreatePageParams{
		Title:     "About Us",
		Slug:      "about-us",
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/menuables", nil)
	var types []string
	decodeData(t, rec, &types)
	if len(types) != 1 || types[0] != "page" {
		t.Errorf("types = %v, want [page]", types)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/menuables/page/search?q=about", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d", rec.Code)
	}
	var options []menuable.Option
	decodeData(t, rec, &options)
	if len(options) != 1 || options[0].Label != "About Us" {
		t.Errorf("options = %v", options)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/menuables/widget/search?q=x", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown type status = %d, want 404", rec.Code)
	}
}

func TestEventsEndpoint(t *testing.T) {
	h, q := newTestRouter(t)

	if _, err := q.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     "warning",
		Category:  "menu",
		Message:   "slug collision",
		Metadata:  "{}",
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/events", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("events status = %d", rec.Code)
	}
	var events []EventResponse
	decodeData(t, rec, &events)
	if len(events) != 1 || events[0].Message != "slug collision" {
		t.Errorf("events = %+v", events)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/events?limit=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}
}
