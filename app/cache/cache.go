// Package cache provides an injected TTL cache for rendered post HTML.
// Entries expire on their own; writers invalidate eagerly on post
// update and delete so stale bodies never outlive a mutation.
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache wraps a ristretto cache with a fixed per-entry TTL.
type Cache struct {
	store *ristretto.Cache[string, string]
	ttl   time.Duration
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, ttl: ttl}, nil
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (string, bool) {
	return c.store.Get(key)
}

// Set stores value under key, costed by its length.
func (c *Cache) Set(key, value string) {
	c.store.SetWithTTL(key, value, int64(len(value)), c.ttl)
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.store.Del(key)
}

// Wait blocks until buffered writes are applied. Tests use it to make
// Set visible before asserting on Get.
func (c *Cache) Wait() {
	c.store.Wait()
}

// Close releases the underlying cache resources.
func (c *Cache) Close() {
	c.store.Close()
}
