// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

// Package model defines the domain types shared between the store,
// service and handler layers.
package model

import "time"

// Default menu slug seeded on first boot.
const MenuMain = "main"

// Link target values.
const (
	TargetSelf  = "_self"
	TargetBlank = "_blank"
)

// ValidTargets contains all valid link target values.
var ValidTargets = []string{TargetSelf, TargetBlank}

// Menu represents a navigation menu: a named, slugged container of items.
// The slug is derived from the name at creation time and stays stable on
// rename; it only changes through the explicit regenerate action.
type Menu struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidTarget checks if a target value is valid.
func IsValidTarget(target string) bool {
	for _, t := range ValidTargets {
		if t == target {
			return true
		}
	}
	return false
}
