package ports

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("cache miss")

// BucketCachePort is a best-effort key-value store without expiry.
type BucketCachePort interface {
	// Get returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// GuardedSetter is implemented by caches that can replace a value
// atomically with respect to its current content. keep is called with the
// stored value (nil when absent) and returns true to leave it in place.
type GuardedSetter interface {
	SetUnless(ctx context.Context, key string, value []byte, keep func(current []byte) bool) error
}
