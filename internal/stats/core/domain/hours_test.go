package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"presence-stats-service/internal/stats/core/domain"
)

func TestHourStats_SplitsAtHourBoundaries(t *testing.T) {
	var h domain.HourStats
	h.Add(
		time.Date(2025, time.May, 4, 8, 45, 0, 0, time.UTC),
		time.Date(2025, time.May, 4, 10, 10, 0, 0, time.UTC),
		time.UTC,
	)

	require.Equal(t, (15 * time.Minute).Milliseconds(), h[8])
	require.Equal(t, time.Hour.Milliseconds(), h[9])
	require.Equal(t, (10 * time.Minute).Milliseconds(), h[10])
}

func TestHourStats_WrapsPastMidnight(t *testing.T) {
	var h domain.HourStats
	h.Add(
		time.Date(2025, time.May, 4, 23, 30, 0, 0, time.UTC),
		time.Date(2025, time.May, 5, 0, 20, 0, 0, time.UTC),
		time.UTC,
	)

	require.Equal(t, (30 * time.Minute).Milliseconds(), h[23])
	require.Equal(t, (20 * time.Minute).Milliseconds(), h[0])
}

func TestHourStats_UsesLocation(t *testing.T) {
	var h domain.HourStats
	h.Add(
		time.Date(2025, time.May, 4, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 4, 8, 30, 0, 0, time.UTC),
		time.FixedZone("UTC+2", 2*3600),
	)

	require.Equal(t, (30 * time.Minute).Milliseconds(), h[10])
	require.Zero(t, h[8])
}

func TestHourStats_EmptyInterval(t *testing.T) {
	var h domain.HourStats
	at := time.Date(2025, time.May, 4, 8, 0, 0, 0, time.UTC)
	h.Add(at, at, time.UTC)
	h.Add(at, at.Add(-time.Hour), time.UTC)
	require.Equal(t, domain.HourStats{}, h)
}
