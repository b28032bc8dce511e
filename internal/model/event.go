// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package model

import "time"

// Event log levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories.
const (
	EventCategoryMenu   = "menu"
	EventCategoryItem   = "item"
	EventCategoryCache  = "cache"
	EventCategorySystem = "system"
)

// Event is an audit record of an admin action or a runtime warning.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
