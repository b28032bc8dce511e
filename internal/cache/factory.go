package cache

import (
	"log/slog"
	"time"
)

// Config selects and tunes the cache backend.
type Config struct {
	// RedisURL enables the Redis backend when non-empty.
	RedisURL string
	// Prefix namespaces keys in shared backends.
	Prefix string
	// TTL is the default entry lifetime.
	TTL time.Duration
	// MaxSize bounds the in-memory backend; <= 0 means unbounded.
	MaxSize int
}

// New creates a cache from the configuration: Redis when a URL is set,
// in-memory otherwise.
func New(cfg Config) (Cache, error) {
	if cfg.RedisURL != "" {
		c, err := NewRedis(cfg.RedisURL, cfg.Prefix, cfg.TTL)
		if err != nil {
			return nil, err
		}
		slog.Info("using redis cache", "prefix", cfg.Prefix)
		return c, nil
	}
	slog.Info("using in-memory cache", "max_size", cfg.MaxSize)
	return NewMemory(cfg.TTL, cfg.MaxSize), nil
}
