package holiday

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	holidays  []Holiday
	expiresAt time.Time
}

// CachedProvider memoizes successful lookups per year. Failures are not cached,
// so the next call retries the upstream provider.
type CachedProvider struct {
	next Provider
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[int]cacheEntry
}

func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int]cacheEntry),
	}
}

func (c *CachedProvider) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	c.mu.Lock()
	if e, ok := c.entries[year]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.holidays, nil
	}
	c.mu.Unlock()

	holidays, err := c.next.Holidays(ctx, year)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[year] = cacheEntry{holidays: holidays, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return holidays, nil
}
