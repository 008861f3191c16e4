package settings

import (
	"sync"
	"time"
)

// Cache is a process-scoped, read-mostly snapshot of the app_settings table.
// It is advisory: staleness up to TTL is acceptable and the database stays
// the source of truth. Safe for concurrent use; the snapshot is swapped
// whole, never mutated in place.
type Cache struct {
	TTL  time.Duration
	Load func() (map[string]string, error)

	mu      sync.RWMutex
	snap    map[string]string
	expires time.Time
}

// Get returns the value for key, refreshing the snapshot when stale. Missing
// keys return ok=false with a nil error.
func (c *Cache) Get(key string) (string, bool, error) {
	snap, err := c.snapshot()
	if err != nil {
		return "", false, err
	}
	v, ok := snap[key]
	return v, ok, nil
}

// All returns the current snapshot (shared, callers must not mutate).
func (c *Cache) All() (map[string]string, error) {
	return c.snapshot()
}

// Clear drops the snapshot so the next read reloads from the database.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.snap = nil
	c.expires = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) snapshot() (map[string]string, error) {
	c.mu.RLock()
	if c.snap != nil && time.Now().Before(c.expires) {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil && time.Now().Before(c.expires) {
		return c.snap, nil
	}

	fresh, err := c.Load()
	if err != nil {
		// serve the stale snapshot if we have one
		if c.snap != nil {
			return c.snap, nil
		}
		return nil, err
	}
	c.snap = fresh
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	c.expires = time.Now().Add(ttl)
	return c.snap, nil
}
