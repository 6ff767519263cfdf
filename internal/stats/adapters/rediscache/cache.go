package rediscache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/xerrors"

	"presence-stats-service/internal/stats/core/ports"
)

const maxWatchRetries = 5

var errContended = errors.New("key kept changing during guarded write")

// BucketCache stores bucket values under plain string keys without expiry.
type BucketCache struct {
	client redis.UniversalClient
	prefix string
}

var (
	_ ports.BucketCachePort = (*BucketCache)(nil)
	_ ports.GuardedSetter   = (*BucketCache)(nil)
)

// NewBucketCache namespaces every key with prefix, which may be empty.
func NewBucketCache(client redis.UniversalClient, prefix string) *BucketCache {
	return &BucketCache{client: client, prefix: prefix}
}

// Connect parses a redis:// URL and returns a client for it.
func Connect(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, xerrors.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (c *BucketCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, xerrors.Errorf("redis get %q: %w", key, err)
	}
	return b, nil
}

func (c *BucketCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, value, 0).Err(); err != nil {
		return xerrors.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// SetUnless writes value inside a WATCH/MULTI transaction so keep always
// sees the value that is actually replaced.
func (c *BucketCache) SetUnless(ctx context.Context, key string, value []byte, keep func(current []byte) bool) error {
	k := c.prefix + key
	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, k).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			cur = nil
		case err != nil:
			return err
		}
		if keep(cur) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, value, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := c.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return xerrors.Errorf("redis guarded set %q: %w", key, err)
		}
		return nil
	}
	return xerrors.Errorf("redis guarded set %q: %w", key, errContended)
}

// Ping reports whether the server answers; used by the health check.
func (c *BucketCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
