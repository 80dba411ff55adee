package region

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// regionCache keeps listed catalogues in memory until they expire or a reload purges them
type regionCache struct {
	lru *expirable.LRU[string, []domain.Region]
}

func newRegionCache(size int, ttl time.Duration) *regionCache {
	return &regionCache{
		lru: expirable.NewLRU[string, []domain.Region](size, nil, ttl),
	}
}

// Get returns a copy so callers cannot mutate the cached slice
func (c *regionCache) Get(key string) ([]domain.Region, bool) {
	regions, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	out := make([]domain.Region, len(regions))
	copy(out, regions)
	return out, true
}

func (c *regionCache) Set(key string, regions []domain.Region) {
	stored := make([]domain.Region, len(regions))
	copy(stored, regions)
	c.lru.Add(key, stored)
}

func (c *regionCache) Clear() {
	c.lru.Purge()
}
