package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/stretchr/testify/require"

	"presence-stats-service/internal/stats/core/usecase"
)

func newTestEarliest(t *testing.T, store *fakeSessionStore, cache *fakeCache) (*usecase.EarliestDate, *usecase.CacheWriter) {
	t.Helper()
	logger := slogtest.Make(t, &slogtest.Options{IgnoreErrors: true})
	w := usecase.NewCacheWriter(cache, logger, nil, usecase.CacheWriterOptions{})
	t.Cleanup(w.Close)
	return usecase.NewEarliestDate(store, cache, w, logger, nil), w
}

func TestEarliestDate_ComputedOnce(t *testing.T) {
	first := at(2025, time.February, 3, 8, 15)
	store := &fakeSessionStore{sessions: dailySessions(userA, dateOf(2025, time.March, 1), dateOf(2025, time.March, 5))}
	store.sessions = append(store.sessions, session(userB, first, first.Add(time.Hour)))
	cache := newFakeCache()
	e, w := newTestEarliest(t, store, cache)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, found, err := e.Get(context.Background())
			if err != nil || !found || !got.Equal(first) {
				t.Errorf("Get() = %v, %v, %v", got, found, err)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, store.earliestCalls)

	w.Flush()
	raw, ok := cache.raw(usecase.EarliestDateKey)
	require.True(t, ok)
	var cached time.Time
	require.NoError(t, json.Unmarshal(raw, &cached))
	require.True(t, cached.Equal(first))
}

func TestEarliestDate_ReadsCache(t *testing.T) {
	cached := at(2024, time.September, 14, 7, 0)
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	cache := newFakeCache()
	cache.data[usecase.EarliestDateKey] = raw
	store := &fakeSessionStore{}
	e, _ := newTestEarliest(t, store, cache)

	got, found, err := e.Get(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, got.Equal(cached))
	require.Zero(t, store.earliestCalls)
}

func TestEarliestDate_EmptyStoreIsNotMemoized(t *testing.T) {
	store := &fakeSessionStore{}
	e, _ := newTestEarliest(t, store, newFakeCache())
	ctx := context.Background()

	_, found, err := e.Get(ctx)
	require.NoError(t, err)
	require.False(t, found)

	first := at(2026, time.October, 1, 9, 0)
	store.mu.Lock()
	store.sessions = append(store.sessions, session(userA, first, first.Add(time.Hour)))
	store.mu.Unlock()

	got, found, err := e.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, got.Equal(first))
	require.Equal(t, 2, store.earliestCalls)
}

func TestEarliestDate_StoreError(t *testing.T) {
	cache := newFakeCache()
	cache.broken = true
	e, _ := newTestEarliest(t, &fakeSessionStore{err: errors.New("timeout")}, cache)

	_, _, err := e.Get(context.Background())
	require.ErrorIs(t, err, usecase.ErrUpstreamUnavailable)
}
