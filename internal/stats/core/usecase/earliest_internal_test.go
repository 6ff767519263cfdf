package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEarliestDate_KnownValueSkipsLock(t *testing.T) {
	e := &EarliestDate{}
	want := time.Date(2019, time.September, 14, 8, 0, 0, 0, time.UTC)
	e.value.Store(&want)

	// A caller stuck in the first lookup must not hold up later readers.
	e.mu.Lock()
	defer e.mu.Unlock()

	done := make(chan time.Time, 1)
	go func() {
		got, found, err := e.Get(context.Background())
		if err == nil && found {
			done <- got
		}
		close(done)
	}()

	select {
	case got, ok := <-done:
		require.True(t, ok, "Get failed")
		require.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("Get blocked on the lookup lock after the value was known")
	}
}
