// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package model

// ItemType discriminates how a menu item's link is produced.
type ItemType string

// Menu item types. The type determines which payload fields of the item
// are meaningful; fields belonging to other types are ignored, not cleared.
const (
	ItemTypeLink  ItemType = "link"  // static URL (or site-relative path)
	ItemTypeRoute ItemType = "route" // named route expanded with parameters
	ItemTypeModel ItemType = "model" // polymorphic reference to an application entity
)

// ItemTypes contains all valid item types.
var ItemTypes = []ItemType{ItemTypeLink, ItemTypeRoute, ItemTypeModel}

// ParseItemType maps a stored string to an ItemType.
// Unknown values fall back to ItemTypeLink.
func ParseItemType(s string) ItemType {
	switch ItemType(s) {
	case ItemTypeRoute:
		return ItemTypeRoute
	case ItemTypeModel:
		return ItemTypeModel
	default:
		return ItemTypeLink
	}
}

// Label returns the human-readable label for the type. Model-type items
// are usually labelled with the referenced entity kind instead; see
// Resolver.TypeLabel.
func (t ItemType) Label() string {
	switch t {
	case ItemTypeRoute:
		return "Route"
	case ItemTypeModel:
		return "Model"
	default:
		return "Link"
	}
}
