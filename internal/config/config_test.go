// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/menus.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache = true with no URL set")
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MENUD_SERVER_HOST", "0.0.0.0")
	t.Setenv("MENUD_SERVER_PORT", "9090")
	t.Setenv("MENUD_ENV", "production")
	t.Setenv("MENUD_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("MENUD_BASE_URL", "https://example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddr() != "0.0.0.0:9090" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment = true in production")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache = false with URL set")
	}
}

func TestLoadRejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("MENUD_BASE_URL", "/just-a-path")

	if _, err := Load(); err == nil {
		t.Error("Load accepted a relative base URL")
	}
}
