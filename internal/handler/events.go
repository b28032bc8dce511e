// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"strconv"
	"time"
)

// defaultEventLimit bounds the event log listing when no limit is given.
const defaultEventLimit = 50

// EventResponse is the API representation of an event log record.
type EventResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// ListEvents returns the newest event log records.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultEventLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			WriteBadRequest(w, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	events, err := h.queries.ListRecentEvents(r.Context(), limit)
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}
	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, EventResponse{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}
