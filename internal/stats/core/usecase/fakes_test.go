package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
	"presence-stats-service/internal/stats/core/usecase"
)

var (
	userA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	userB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

type rangeCall struct {
	From time.Time
	To   time.Time
}

// fakeSessionStore implements ports.SessionReaderPort over a fixed slice.
type fakeSessionStore struct {
	mu            sync.Mutex
	sessions      []domain.SessionInterval
	err           error
	rangeCalls    []rangeCall
	earliestCalls int
}

func (f *fakeSessionStore) GetSessionsInRange(_ context.Context, from, to time.Time) ([]domain.SessionInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeCalls = append(f.rangeCalls, rangeCall{From: from, To: to})
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SessionInterval
	for _, s := range f.sessions {
		if s.End.After(from) && s.Start.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) GetEarliestSessionStart(_ context.Context) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.earliestCalls++
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	var earliest time.Time
	for _, s := range f.sessions {
		if earliest.IsZero() || s.Start.Before(earliest) {
			earliest = s.Start
		}
	}
	return earliest, !earliest.IsZero(), nil
}

func (f *fakeSessionStore) GetUserSessions(_ context.Context, userID uuid.UUID) ([]domain.SessionInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SessionInterval
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) calls() []rangeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]rangeCall(nil), f.rangeCalls...)
}

func (f *fakeSessionStore) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeCalls = nil
	f.earliestCalls = 0
}

// fakeCache implements ports.BucketCachePort. With broken set every call
// fails like an unreachable server.
type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	broken bool
	gets   int
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.broken {
		return nil, errors.New("connection refused")
	}
	v, ok := f.data[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return append([]byte(nil), v...), nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.broken {
		return errors.New("connection refused")
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeCache) raw(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeCache) counts() (gets, sets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, f.sets
}

type harness struct {
	clock    *quartz.Mock
	store    *fakeSessionStore
	cache    *fakeCache
	writer   *usecase.CacheWriter
	earliest *usecase.EarliestDate
	resolver *usecase.Resolver
	uc       *usecase.GetStatsUseCase
}

func newHarness(t *testing.T, now time.Time, sessions ...domain.SessionInterval) *harness {
	t.Helper()
	return newHarnessWith(t, now, &fakeSessionStore{sessions: sessions}, newFakeCache())
}

func newHarnessWith(t *testing.T, now time.Time, store *fakeSessionStore, cache *fakeCache) *harness {
	t.Helper()
	logger := slogtest.Make(t, &slogtest.Options{IgnoreErrors: true})
	clock := quartz.NewMock(t)
	clock.Set(now)

	metrics := usecase.NewMetrics(nil)
	writer := usecase.NewCacheWriter(cache, logger, metrics, usecase.CacheWriterOptions{Workers: 2, QueueSize: 1024})
	t.Cleanup(writer.Close)

	earliest := usecase.NewEarliestDate(store, cache, writer, logger, metrics)
	resolver := usecase.NewResolver(usecase.ResolverOptions{
		Aggregator: usecase.NewAggregator(store, metrics),
		Cache:      cache,
		Writer:     writer,
		Earliest:   earliest,
		Clock:      clock,
		Location:   time.UTC,
		Logger:     logger,
		Metrics:    metrics,
	})
	return &harness{
		clock:    clock,
		store:    store,
		cache:    cache,
		writer:   writer,
		earliest: earliest,
		resolver: resolver,
		uc:       usecase.NewGetStatsUseCase(resolver, earliest, &fakeStudyPeriods{}),
	}
}

type fakeStudyPeriods struct {
	GetStudyPeriodFn func(ctx context.Context, year int, period domain.StudyPeriod) (domain.Date, domain.Date, error)
	GetStudyYearFn   func(ctx context.Context, year int) (domain.Date, domain.Date, error)
	GetCurrentFn     func(ctx context.Context, day domain.Date) (domain.StudyPeriodSpan, error)
}

func (f *fakeStudyPeriods) GetStudyPeriod(ctx context.Context, year int, period domain.StudyPeriod) (domain.Date, domain.Date, error) {
	if f.GetStudyPeriodFn != nil {
		return f.GetStudyPeriodFn(ctx, year, period)
	}
	return domain.Date{}, domain.Date{}, ports.ErrStudyPeriodNotFound
}

func (f *fakeStudyPeriods) GetStudyYear(ctx context.Context, year int) (domain.Date, domain.Date, error) {
	if f.GetStudyYearFn != nil {
		return f.GetStudyYearFn(ctx, year)
	}
	return domain.Date{}, domain.Date{}, ports.ErrStudyPeriodNotFound
}

func (f *fakeStudyPeriods) GetCurrentStudyPeriod(ctx context.Context, day domain.Date) (domain.StudyPeriodSpan, error) {
	if f.GetCurrentFn != nil {
		return f.GetCurrentFn(ctx, day)
	}
	return domain.StudyPeriodSpan{}, ports.ErrStudyPeriodNotFound
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func dateOf(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

func session(user uuid.UUID, start, end time.Time) domain.SessionInterval {
	return domain.SessionInterval{UserID: user, Start: start, End: end}
}

// dailySessions gives user one session from 10:00 to 11:00 on every day of
// [from, to].
func dailySessions(user uuid.UUID, from, to domain.Date) []domain.SessionInterval {
	var out []domain.SessionInterval
	for d := from; !d.After(to); d = d.AddDays(1) {
		start := d.Midnight(time.UTC).Add(10 * time.Hour)
		out = append(out, session(user, start, start.Add(time.Hour)))
	}
	return out
}

func hours(n int) int64 { return int64(n) * time.Hour.Milliseconds() }

func minutes(n int) int64 { return int64(n) * time.Minute.Milliseconds() }
