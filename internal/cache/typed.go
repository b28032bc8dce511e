package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Typed wraps a byte Cache with JSON encoding for one value type, so
// callers store structured values (resolved menu trees) directly.
type Typed[T any] struct {
	cache  Cache
	prefix string
}

// NewTyped creates a typed view over a cache, namespacing keys with prefix.
func NewTyped[T any](c Cache, prefix string) *Typed[T] {
	return &Typed[T]{cache: c, prefix: prefix}
}

// Get retrieves and decodes a value. found is false on a cache miss.
func (t *Typed[T]) Get(ctx context.Context, key string) (value T, found bool, err error) {
	raw, err := t.cache.Get(ctx, t.prefix+key)
	if errors.Is(err, ErrCacheMiss) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decoding cached value: %w", err)
	}
	return value, true, nil
}

// Set encodes and stores a value.
func (t *Typed[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cached value: %w", err)
	}
	return t.cache.Set(ctx, t.prefix+key, raw, ttl)
}

// Delete removes a value.
func (t *Typed[T]) Delete(ctx context.Context, key string) error {
	return t.cache.Delete(ctx, t.prefix+key)
}
