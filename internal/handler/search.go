// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListMenuableTypes returns the registered entity kinds the model item
// picker can reference.
func (h *Handler) ListMenuableTypes(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.registry.Types(), nil)
}

// SearchMenuables runs the entity-picker search for one registered kind.
func (h *Handler) SearchMenuables(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "type")
	term := r.URL.Query().Get("q")

	options, err := h.registry.Search(r.Context(), typeID, term)
	if err != nil {
		WriteNotFound(w, "Unknown menuable type")
		return
	}
	WriteSuccess(w, options, &Meta{Total: int64(len(options))})
}
