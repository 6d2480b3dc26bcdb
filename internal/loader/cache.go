package loader

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
	"golang.org/x/sync/singleflight"
)

// CachingLoader shares loaded datasets between callers. Concurrent loads of
// one URL collapse into a single fetch, and successful results are kept for
// a fixed TTL. Failures are never cached.
type CachingLoader struct {
	next  contract.Loader
	cache *expirable.LRU[string, []schema.RawSample]
	group singleflight.Group
}

var _ contract.Loader = &CachingLoader{} // Compile-time check

// NewCachingLoader wraps next with a TTL-bounded LRU of the given size.
func NewCachingLoader(next contract.Loader, size int, ttl time.Duration) *CachingLoader {
	if size <= 0 {
		size = contract.DefaultCacheSize
	}
	return &CachingLoader{
		next:  next,
		cache: expirable.NewLRU[string, []schema.RawSample](size, nil, ttl),
	}
}

// Load implements the contract.Loader interface.
// The returned slice is shared and must be treated as read-only.
func (c *CachingLoader) Load(ctx context.Context, url string) ([]schema.RawSample, error) {
	if samples, ok := c.cache.Get(url); ok {
		return samples, nil
	}

	// The shared fetch must not die with whichever caller happened to start it.
	detached := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(url, func() (any, error) {
		samples, err := c.next.Load(detached, url)
		if err != nil {
			return nil, err
		}
		c.cache.Add(url, samples)
		return samples, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]schema.RawSample), nil
}

// Purge drops every cached dataset.
func (c *CachingLoader) Purge() {
	c.cache.Purge()
}

// Len reports the number of cached datasets.
func (c *CachingLoader) Len() int {
	return c.cache.Len()
}
