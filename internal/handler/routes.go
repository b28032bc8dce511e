// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package handler

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts all API endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/status", h.Status)

	r.Route("/menus", func(r chi.Router) {
		r.Get("/", h.ListMenus)
		r.Post("/", h.CreateMenu)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetMenu)
			r.Put("/", h.UpdateMenu)
			r.Delete("/", h.DeleteMenu)
			r.Post("/slug", h.RegenerateMenuSlug)
			r.Get("/tree", h.GetMenuTree)
			r.Post("/tree", h.RebuildMenuTree)
			r.Post("/items", h.CreateItem)
		})
	})

	r.Route("/items/{id}", func(r chi.Router) {
		r.Put("/", h.UpdateItem)
		r.Delete("/", h.DeleteItem)
		r.Post("/duplicate", h.DuplicateItem)
	})

	r.Route("/menuables", func(r chi.Router) {
		r.Get("/", h.ListMenuableTypes)
		r.Get("/{type}/search", h.SearchMenuables)
	})

	r.Get("/events", h.ListEvents)
}
