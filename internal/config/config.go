// Copyright (c) 2026 Biostate
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"MENUD_DB_PATH" envDefault:"./data/menus.db"`
	ServerHost string `env:"MENUD_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"MENUD_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"MENUD_ENV" envDefault:"development"`
	LogLevel   string `env:"MENUD_LOG_LEVEL" envDefault:"info"`

	// BaseURL is the absolute site root that relative links resolve against.
	BaseURL string `env:"MENUD_BASE_URL" envDefault:"http://localhost:8080"`

	// Cache configuration
	RedisURL     string `env:"MENUD_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"MENUD_CACHE_PREFIX" envDefault:"menud:"`  // Redis key prefix
	CacheTTL     int    `env:"MENUD_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"MENUD_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"MENUD_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing MENUD_BASE_URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("MENUD_BASE_URL must be an absolute URL, got %q", cfg.BaseURL)
	}

	return cfg, nil
}
