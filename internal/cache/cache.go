// Package cache provides a TTL-bounded in-memory store for raw event fetch
// payloads, keyed by fetch parameters.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/goldengate-labs/sfevents/internal/domain/events"
)

const (
	// DefaultTTL is how long a cached fetch payload stays fresh.
	DefaultTTL = 5 * time.Minute

	// DefaultMaxItems bounds how many distinct fetch payloads are retained.
	DefaultMaxItems = 100

	cleanupInterval = time.Minute
)

// RecordCache caches raw event batches with a TTL. It is safe for concurrent
// use; go-cache serializes writers per store.
type RecordCache struct {
	cache    *gocache.Cache
	maxItems int
}

// New creates a record cache. Non-positive ttl or maxItems fall back to the
// defaults.
func New(ttl time.Duration, maxItems int) *RecordCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &RecordCache{
		cache:    gocache.New(ttl, cleanupInterval),
		maxItems: maxItems,
	}
}

// Get returns the cached batch for the key, if present and unexpired.
func (c *RecordCache) Get(key string) ([]events.Record, bool) {
	value, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	records, ok := value.([]events.Record)
	return records, ok
}

// Set stores a batch under the key with the default TTL. When the cache is
// at capacity and the key is new, the write is dropped rather than evicting
// an arbitrary entry; expiry frees space soon enough.
func (c *RecordCache) Set(key string, records []events.Record) {
	if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxItems {
		return
	}
	c.cache.Set(key, records, gocache.DefaultExpiration)
}

// Clear removes all cached batches.
func (c *RecordCache) Clear() {
	c.cache.Flush()
}

// Len reports the number of cached batches, including not-yet-swept expired
// entries.
func (c *RecordCache) Len() int {
	return c.cache.ItemCount()
}
