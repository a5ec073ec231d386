package hero

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lifequest/lifequest/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedHeroEntry wraps a hero with version metadata for cache invalidation
type cachedHeroEntry struct {
	Version  string       `json:"version"`
	Hero     *domain.Hero `json:"hero"`
	CachedAt time.Time    `json:"cached_at"`
}

// heroCache provides an in-memory LRU cache for hero lookups with
// time-based expiration and version-based invalidation. Entries are
// keyed on the hero's ID.
type heroCache struct {
	lru *expirable.LRU[string, *cachedHeroEntry]
}

// newHeroCache creates a hero cache with the given size and TTL
func newHeroCache(size int, ttl time.Duration) *heroCache {
	return &heroCache{
		lru: expirable.NewLRU[string, *cachedHeroEntry](size, nil, ttl),
	}
}

// Get retrieves a hero from the cache.
// Returns (nil, false) if not cached, expired, or the schema version
// changed; a version mismatch also evicts the stale entry.
func (c *heroCache) Get(id string) (*domain.Hero, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		return nil, false
	}

	return entry.Hero, true
}

// Set stores a hero in the cache with the current schema version
func (c *heroCache) Set(id string, hero *domain.Hero) {
	c.lru.Add(id, &cachedHeroEntry{
		Version:  CacheSchemaVersion,
		Hero:     hero,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a hero from the cache. Every write path calls this
// so reads never serve state older than the last mutation.
func (c *heroCache) Invalidate(id string) {
	c.lru.Remove(id)
}

// Clear removes all entries from the cache
func (c *heroCache) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached entries
func (c *heroCache) Len() int {
	return c.lru.Len()
}
