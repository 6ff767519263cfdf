package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/usecase"
)

func TestGetUserSessions_RecentAndLongest(t *testing.T) {
	var sessions []domain.SessionInterval
	// Twelve one-hour sessions, stored oldest first.
	for d := 1; d <= 12; d++ {
		start := at(2026, time.September, d, 10, 0)
		sessions = append(sessions, session(userA, start, start.Add(time.Hour)))
	}
	longest := session(userA, at(2026, time.September, 5, 13, 0), at(2026, time.September, 5, 18, 30))
	sessions = append(sessions, longest)
	sessions = append(sessions, session(userB, at(2026, time.September, 20, 8, 0), at(2026, time.September, 21, 8, 0)))

	clock := quartz.NewMock(t)
	clock.Set(at(2026, time.October, 19, 12, 0))
	uc := usecase.NewGetUserSessionsUseCase(&fakeSessionStore{sessions: sessions}, clock)

	got, err := uc.Execute(context.Background(), userA)
	require.NoError(t, err)

	require.Len(t, got.Recent, usecase.RecentSessionsLimit)
	require.Equal(t, at(2026, time.September, 12, 10, 0), got.Recent[0].Start)
	for i := 1; i < len(got.Recent); i++ {
		require.True(t, got.Recent[i-1].Start.After(got.Recent[i].Start))
	}
	require.NotNil(t, got.Longest)
	require.Equal(t, longest, *got.Longest)
}

func TestGetUserSessions_OpenSessionEndsNow(t *testing.T) {
	now := at(2026, time.October, 19, 12, 0)
	store := &fakeSessionStore{sessions: []domain.SessionInterval{
		session(userA, at(2026, time.October, 19, 9, 0), now.Add(4*time.Minute)),
		session(userA, at(2026, time.October, 18, 9, 0), at(2026, time.October, 18, 11, 0)),
	}}
	clock := quartz.NewMock(t)
	clock.Set(now)

	got, err := usecase.NewGetUserSessionsUseCase(store, clock).Execute(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, got.Recent, 2)
	require.Equal(t, now, got.Recent[0].End)
	require.Equal(t, 3*time.Hour, got.Longest.End.Sub(got.Longest.Start))
}

func TestGetUserSessions_NoSessions(t *testing.T) {
	clock := quartz.NewMock(t)
	got, err := usecase.NewGetUserSessionsUseCase(&fakeSessionStore{}, clock).Execute(context.Background(), userA)
	require.NoError(t, err)
	require.Empty(t, got.Recent)
	require.Nil(t, got.Longest)
}

func TestGetUserSessions_Errors(t *testing.T) {
	clock := quartz.NewMock(t)
	uc := usecase.NewGetUserSessionsUseCase(&fakeSessionStore{err: errors.New("down")}, clock)

	_, err := uc.Execute(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, usecase.ErrInvalidUser)

	_, err = uc.Execute(context.Background(), userA)
	require.ErrorIs(t, err, usecase.ErrUpstreamUnavailable)
}
