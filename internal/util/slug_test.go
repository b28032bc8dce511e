// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package util

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Main Menu", "main-menu"},
		{"accents", "Café Menü", "cafe-menu"},
		{"cyrillic", "Главное меню", "glavnoe-meniu"},
		{"punctuation", "What's New?!", "whats-new"},
		{"multiple spaces", "a   b", "a-b"},
		{"leading trailing", "  -hello-  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"main", "main-menu", "menu-2"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "Main", "main menu", "-main", "main-", "main--menu", "ménu"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"menu": true, "menu-2": true}
	exists := func(slug string) (bool, error) { return taken[slug], nil }

	got, err := UniqueSlug("menu", exists)
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "menu-3" {
		t.Errorf("UniqueSlug = %q, want %q", got, "menu-3")
	}
}

func TestUniqueSlugNoCollision(t *testing.T) {
	exists := func(string) (bool, error) { return false, nil }

	got, err := UniqueSlug("fresh", exists)
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "fresh" {
		t.Errorf("UniqueSlug = %q, want %q", got, "fresh")
	}
}

func TestUniqueSlugEmptyBase(t *testing.T) {
	exists := func(string) (bool, error) { return false, nil }

	got, err := UniqueSlug("", exists)
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "menu" {
		t.Errorf("UniqueSlug = %q, want %q", got, "menu")
	}
}

func TestUniqueSlugPropagatesError(t *testing.T) {
	wantErr := errors.New("db down")
	exists := func(string) (bool, error) { return false, wantErr }

	if _, err := UniqueSlug("menu", exists); !errors.Is(err, wantErr) {
		t.Errorf("UniqueSlug error = %v, want %v", err, wantErr)
	}
}
