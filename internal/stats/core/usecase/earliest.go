package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"cdr.dev/slog/v3"

	"presence-stats-service/internal/stats/core/ports"
)

const EarliestDateKey = "earliest_date"

// EarliestDate memoizes the start of the first recorded session. The first
// callers serialize on mu while the value is looked up; once it is known it
// is read without locking for the lifetime of the process.
type EarliestDate struct {
	sessions ports.SessionReaderPort
	cache    ports.BucketCachePort
	writer   *CacheWriter
	log      slog.Logger
	metrics  *Metrics

	mu    sync.Mutex
	value atomic.Pointer[time.Time]
}

func NewEarliestDate(sessions ports.SessionReaderPort, cache ports.BucketCachePort, writer *CacheWriter, log slog.Logger, metrics *Metrics) *EarliestDate {
	return &EarliestDate{
		sessions: sessions,
		cache:    cache,
		writer:   writer,
		log:      log,
		metrics:  metrics,
	}
}

// Get returns the earliest session start. found is false while no session
// has been recorded; that outcome is not memoized.
func (e *EarliestDate) Get(ctx context.Context) (time.Time, bool, error) {
	if t := e.value.Load(); t != nil {
		return *t, true, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if t := e.value.Load(); t != nil {
		return *t, true, nil
	}

	if t, ok := e.fromCache(ctx); ok {
		e.value.Store(&t)
		return t, true, nil
	}

	t, found, err := e.sessions.GetEarliestSessionStart(ctx)
	if err != nil {
		return time.Time{}, false, &UpstreamError{Op: "get earliest session start", Err: err}
	}
	if !found {
		return time.Time{}, false, nil
	}
	e.value.Store(&t)

	if b, err := json.Marshal(t); err == nil {
		e.writer.Submit(CacheWriteJob{Key: EarliestDateKey, Value: b})
	}
	return t, true, nil
}

func (e *EarliestDate) fromCache(ctx context.Context) (time.Time, bool) {
	b, err := e.cache.Get(ctx, EarliestDateKey)
	if err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			e.metrics.lookup("earliest", "miss")
		} else {
			e.metrics.lookup("earliest", "error")
			e.log.Warn(ctx, "read earliest date from cache", slog.Error(err))
		}
		return time.Time{}, false
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil || t.IsZero() {
		e.metrics.lookup("earliest", "invalid")
		return time.Time{}, false
	}
	e.metrics.lookup("earliest", "hit")
	return t, true
}
