package memory

import (
	"context"
	"sync"

	"presence-stats-service/internal/stats/core/ports"
)

// BucketCache is an in-process cache used when no redis URL is configured.
// Values are copied on the way in and out.
type BucketCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var (
	_ ports.BucketCachePort = (*BucketCache)(nil)
	_ ports.GuardedSetter   = (*BucketCache)(nil)
)

func NewBucketCache() *BucketCache {
	return &BucketCache{items: map[string][]byte{}}
}

func (c *BucketCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return clone(v), nil
}

func (c *BucketCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.items[key] = clone(value)
	c.mu.Unlock()
	return nil
}

func (c *BucketCache) SetUnless(_ context.Context, key string, value []byte, keep func(current []byte) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.items[key]; keep(curOrNil(cur, ok)) {
		return nil
	}
	c.items[key] = clone(value)
	return nil
}

func (c *BucketCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func curOrNil(v []byte, ok bool) []byte {
	if !ok {
		return nil
	}
	return clone(v)
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
