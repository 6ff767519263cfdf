package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

const DefaultMaxConcurrentBuckets = 32

type ResolverOptions struct {
	Aggregator *Aggregator
	Cache      ports.BucketCachePort
	Writer     *CacheWriter
	Earliest   *EarliestDate
	Clock      quartz.Clock
	Location   *time.Location
	Logger     slog.Logger
	Metrics    *Metrics

	// MaxConcurrentBuckets bounds the fan-out of a single resolution step.
	MaxConcurrentBuckets int
}

// Resolver serves calendar buckets through the bucket cache. Closed buckets
// are computed once and cached forever. Open Month and Year buckets keep a
// cached prefix of their closed subunits and recompute only the rest.
type Resolver struct {
	aggregator *Aggregator
	cache      ports.BucketCachePort
	writer     *CacheWriter
	earliest   *EarliestDate
	clock      quartz.Clock
	loc        *time.Location
	log        slog.Logger
	metrics    *Metrics
	limit      int
}

func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxConcurrentBuckets <= 0 {
		opts.MaxConcurrentBuckets = DefaultMaxConcurrentBuckets
	}
	return &Resolver{
		aggregator: opts.Aggregator,
		cache:      opts.Cache,
		writer:     opts.Writer,
		earliest:   opts.Earliest,
		clock:      opts.Clock,
		loc:        opts.Location,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		limit:      opts.MaxConcurrentBuckets,
	}
}

// Now is the current instant in the calendar location.
func (r *Resolver) Now() time.Time {
	return r.clock.Now().In(r.loc)
}

func (r *Resolver) Location() *time.Location { return r.loc }

// Resolve returns the stats of a single bucket.
func (r *Resolver) Resolve(ctx context.Context, b domain.Bucket) (domain.StatsMap, error) {
	return r.resolve(ctx, b, r.Now())
}

// ResolveAll resolves the buckets concurrently and merges the results. All
// buckets see the same now.
func (r *Resolver) ResolveAll(ctx context.Context, buckets []domain.Bucket, now time.Time) (domain.StatsMap, error) {
	parts, err := r.resolveEach(ctx, buckets, now)
	if err != nil {
		return nil, err
	}
	out := domain.StatsMap{}
	for _, p := range parts {
		out.MergeInto(p)
	}
	return out, nil
}

// resolveEach keeps results in bucket order.
func (r *Resolver) resolveEach(ctx context.Context, buckets []domain.Bucket, now time.Time) ([]domain.StatsMap, error) {
	out := make([]domain.StatsMap, len(buckets))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.limit)
	for i, b := range buckets {
		eg.Go(func() error {
			stats, err := r.resolve(egCtx, b, now)
			if err != nil {
				return err
			}
			out[i] = stats
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resolver) resolve(ctx context.Context, b domain.Bucket, now time.Time) (domain.StatsMap, error) {
	today := domain.DateOf(now, r.loc)
	if b.Start().After(today) {
		return domain.StatsMap{}, nil
	}

	earliest, found, err := r.earliest.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found || b.End().Before(domain.DateOf(earliest, r.loc)) {
		return domain.StatsMap{}, nil
	}

	switch {
	case b.End().Before(today):
		return r.resolveClosed(ctx, b)
	case b.Kind == domain.KindDay:
		// Today is never cached; sessions may still be growing.
		from, _ := b.Span(r.loc)
		return r.aggregator.Aggregate(ctx, from, now)
	default:
		return r.resolveOpen(ctx, b, now, today)
	}
}

func (r *Resolver) resolveClosed(ctx context.Context, b domain.Bucket) (domain.StatsMap, error) {
	key := b.Key()
	if stats, ok := r.cachedStats(ctx, b.Kind.String(), key); ok {
		return stats, nil
	}

	from, to := b.Span(r.loc)
	stats, err := r.aggregator.Aggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if value, err := json.Marshal(stats); err == nil {
		r.writer.Submit(CacheWriteJob{Key: key, Value: value})
	}
	return stats, nil
}

// resolveOpen serves a Month or Year bucket that contains today. The cached
// prefix covers subunits 1..LastClosed; subunits after it up to the current
// one are resolved on every call. The prefix is extended with every subunit
// except the current one and written back.
func (r *Resolver) resolveOpen(ctx context.Context, b domain.Bucket, now time.Time, today domain.Date) (domain.StatsMap, error) {
	key := b.Key()
	current := b.SubunitIndex(today)

	rec := r.cachedPartial(ctx, key)
	if rec.LastClosed < 0 || rec.LastClosed >= current {
		r.log.Debug(ctx, "discarding partial record",
			slog.F("key", key),
			slog.F("last_closed", rec.LastClosed),
			slog.F("current", current),
		)
		rec = domain.PartialRecord{}
	}

	subunits := make([]domain.Bucket, 0, current-rec.LastClosed)
	for i := rec.LastClosed + 1; i <= current; i++ {
		subunits = append(subunits, b.Subunit(i))
	}
	parts, err := r.resolveEach(ctx, subunits, now)
	if err != nil {
		return nil, err
	}

	prefix := domain.StatsMap{}
	prefix.MergeInto(rec.Stats)
	for _, p := range parts[:len(parts)-1] {
		prefix.MergeInto(p)
	}

	if advanced := current - 1; advanced > rec.LastClosed {
		r.storePartial(key, domain.PartialRecord{LastClosed: advanced, Stats: prefix})
	}

	return domain.Merge(prefix, parts[len(parts)-1]), nil
}

func (r *Resolver) cachedStats(ctx context.Context, kind, key string) (domain.StatsMap, bool) {
	b, ok := r.cacheGet(ctx, kind, key)
	if !ok {
		return nil, false
	}
	var stats domain.StatsMap
	if err := json.Unmarshal(b, &stats); err != nil {
		r.metrics.lookup(kind, "invalid")
		r.log.Warn(ctx, "undecodable bucket in cache", slog.F("key", key), slog.Error(err))
		return nil, false
	}
	if stats == nil {
		stats = domain.StatsMap{}
	}
	r.metrics.lookup(kind, "hit")
	return stats, true
}

// cachedPartial never fails; anything unusable reads as an empty prefix.
func (r *Resolver) cachedPartial(ctx context.Context, key string) domain.PartialRecord {
	b, ok := r.cacheGet(ctx, "partial", key)
	if !ok {
		return domain.PartialRecord{}
	}
	rec, err := decodePartial(b)
	if err != nil {
		r.metrics.lookup("partial", "invalid")
		r.log.Warn(ctx, "undecodable partial record in cache", slog.F("key", key), slog.Error(err))
		return domain.PartialRecord{}
	}
	r.metrics.lookup("partial", "hit")
	return rec
}

func (r *Resolver) cacheGet(ctx context.Context, kind, key string) ([]byte, bool) {
	b, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			r.metrics.lookup(kind, "miss")
		} else {
			r.metrics.lookup(kind, "error")
			r.log.Warn(ctx, "bucket cache read failed", slog.F("key", key), slog.Error(err))
		}
		return nil, false
	}
	return b, true
}

// storePartial never lets a slower writer move LastClosed backwards or
// replace the value of a bucket that has since closed.
func (r *Resolver) storePartial(key string, rec domain.PartialRecord) {
	value, err := json.Marshal(rec)
	if err != nil {
		return
	}
	r.writer.Submit(CacheWriteJob{
		Key:   key,
		Value: value,
		Keep: func(current []byte) bool {
			if current == nil {
				return false
			}
			stored, err := decodePartial(current)
			if err != nil {
				// A full bucket value means the bucket closed meanwhile.
				var closed domain.StatsMap
				return json.Unmarshal(current, &closed) == nil
			}
			return stored.LastClosed >= rec.LastClosed
		},
	})
}

func decodePartial(b []byte) (domain.PartialRecord, error) {
	var rec domain.PartialRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.PartialRecord{}, err
	}
	if rec.Stats == nil {
		return domain.PartialRecord{}, errors.New("partial record without stats")
	}
	return rec, nil
}
