// Package cache provides a keyed memo for read-mostly lookups with manual
// invalidation. Entries have no TTL: they live until explicit invalidation
// or process exit, so callers needing freshness must invalidate themselves.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache memoizes loader results per key. It is safe for concurrent use.
// Concurrent GetOrLoad calls for the same absent key may perform redundant
// loads; they converge to a single entry per key (last writer wins), which
// is acceptable for the read-mostly data this cache fronts.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
}

// New returns an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]entry[V])}
}

// GetOrLoad returns the cached value for key, or invokes loader, stores the
// result and returns it. The loader runs without the lock held, so a slow
// load never blocks hits on other keys. Loader errors are returned without
// caching anything.
func (c *Cache[K, V]) GetOrLoad(key K, loader func() (V, error)) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.value, nil
	}

	value, err := loader()
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, insertedAt: time.Now()}
	c.mu.Unlock()
	return value, nil
}

// Get returns the cached value for key, if present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// Invalidate removes the entry for key, if any.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear empties the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}

// Len reports the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
