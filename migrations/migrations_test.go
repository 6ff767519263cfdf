package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"presence-stats-service/internal/stats/core/domain"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(files, dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		body, err := fs.ReadFile(files, dir+"/"+e.Name())
		require.NoError(t, err)
		require.True(t, strings.Contains(string(body), "-- +goose Up"), e.Name())
		require.True(t, strings.Contains(string(body), "-- +goose Down"), e.Name())
	}
}

func TestSessionTableMatchesRepositories(t *testing.T) {
	body, err := fs.ReadFile(files, dir+"/00001_presence.sql")
	require.NoError(t, err)
	for _, col := range []string{"user_id", "start_time", "end_time"} {
		require.Contains(t, string(body), col)
	}
}

func TestStudyPeriodEncodingMatchesDomain(t *testing.T) {
	body, err := fs.ReadFile(files, dir+"/00002_study_calendar.sql")
	require.NoError(t, err)
	require.Contains(t, string(body), "period 0-3 are LP1-LP4, 4 is summer")
	require.Contains(t, string(body), "CHECK (period BETWEEN 0 AND 4)")

	require.Equal(t, 0, int(domain.LP1))
	require.Equal(t, 3, int(domain.LP4))
	require.Equal(t, 4, int(domain.Summer))
}
