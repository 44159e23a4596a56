package cache

import (
	"time"

	"address-validator/internal/models"

	gocache "github.com/patrickmn/go-cache"
)

// OutcomeCache keeps recent classification outcomes in memory, keyed by the
// normalized address they were produced for.
type OutcomeCache struct {
	cache *gocache.Cache
}

// NewOutcomeCache creates a new outcome cache. A ttl of zero or less disables caching.
func NewOutcomeCache(ttl, cleanupInterval time.Duration) *OutcomeCache {
	if ttl <= 0 {
		return &OutcomeCache{}
	}
	return &OutcomeCache{cache: gocache.New(ttl, cleanupInterval)}
}

// Get retrieves the outcome stored for key
func (c *OutcomeCache) Get(key string) (models.Outcome, bool) {
	if c.cache == nil {
		return nil, false
	}
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	outcome, ok := val.(models.Outcome)
	return outcome, ok
}

// Set stores an outcome with the default TTL
func (c *OutcomeCache) Set(key string, outcome models.Outcome) {
	if c.cache == nil {
		return
	}
	c.cache.SetDefault(key, outcome)
}

// Len returns the number of cached outcomes, including expired ones not yet cleaned up.
func (c *OutcomeCache) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.ItemCount()
}
