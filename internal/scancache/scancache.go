// Package scancache caches per-view scan results so interactive
// re-filtering does not rescan the registry on every query.
package scancache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"comspect/internal/log"
)

const DefaultExpiration = 2 * time.Minute
const DefaultCleanupInterval = 5 * time.Minute

// Cache is a typed TTL cache keyed by string.
type Cache[V any] struct {
	useCase string
	cache   *gocache.Cache
}

// New initializes a cache with the given expiry and cleanup interval.
func New[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *Cache[V] {
	return &Cache[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item from the cache by its key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "use_case", c.useCase, "key", key)
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "use_case", c.useCase, "key", key)
	return v, true
}

// Set stores an item under key with the default expiration.
func (c *Cache[V]) Set(key string, value V) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}

// Flush drops every cached item.
func (c *Cache[V]) Flush() {
	c.cache.Flush()
}
