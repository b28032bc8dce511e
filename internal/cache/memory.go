package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process Cache with per-entry TTL and a background
// janitor that evicts expired entries.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	maxSize    int
	hits       atomic.Int64
	misses     atomic.Int64
	done       chan struct{}
	closeOnce  sync.Once
}

// NewMemory creates an in-memory cache. maxSize <= 0 means unbounded.
func NewMemory(defaultTTL time.Duration, maxSize int) *Memory {
	c := &Memory{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get implements Cache.
func (c *Memory) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	c.hits.Add(1)
	return entry.value, nil
}

// Set implements Cache.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	return nil
}

// Delete implements Cache.
func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear implements Cache.
func (c *Memory) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Close implements Cache.
func (c *Memory) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// Stats implements StatsProvider.
func (c *Memory) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// evictLocked drops expired entries; if nothing expired, it drops one
// arbitrary entry to make room. Caller holds the write lock.
func (c *Memory) evictLocked() {
	now := time.Now()
	evicted := false
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			evicted = true
		}
	}
	if !evicted {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
}

// janitor evicts expired entries once a minute until Close.
func (c *Memory) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
