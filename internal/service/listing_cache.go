package service

import (
	"sync"
	"time"

	"github.com/set-night/travelhub/internal/domain"
)

// ListingCache holds the last full package listing for a short time so that
// paging and repeated searches do not refetch it.
type ListingCache struct {
	mu       sync.RWMutex
	packages []domain.TravelPackage
	cachedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{ttl: ttl, now: time.Now}
}

// Get returns nil when nothing fresh is cached.
func (c *ListingCache) Get() []domain.TravelPackage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.packages == nil || c.now().Sub(c.cachedAt) > c.ttl {
		return nil
	}
	return c.packages
}

func (c *ListingCache) Set(packages []domain.TravelPackage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packages = packages
	c.cachedAt = c.now()
}

func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packages = nil
}
