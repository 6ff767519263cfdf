package usecase

import (
	"context"
	"slices"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

const RecentSessionsLimit = 10

type UserSessions struct {
	// Recent holds the latest sessions, newest first.
	Recent []domain.SessionInterval
	// Longest is nil when the user has no sessions.
	Longest *domain.SessionInterval
}

// GetUserSessionsUseCase lists a user's most recent sessions and finds their
// longest one. A session that is still open ends at now.
type GetUserSessionsUseCase struct {
	sessions ports.SessionReaderPort
	clock    quartz.Clock
}

func NewGetUserSessionsUseCase(sessions ports.SessionReaderPort, clock quartz.Clock) *GetUserSessionsUseCase {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &GetUserSessionsUseCase{sessions: sessions, clock: clock}
}

func (uc *GetUserSessionsUseCase) Execute(ctx context.Context, userID uuid.UUID) (UserSessions, error) {
	if userID == uuid.Nil {
		return UserSessions{}, ErrInvalidUser
	}

	sessions, err := uc.sessions.GetUserSessions(ctx, userID)
	if err != nil {
		return UserSessions{}, &UpstreamError{Op: "get user sessions", Err: err}
	}

	now := uc.clock.Now()
	clipped := make([]domain.SessionInterval, 0, len(sessions))
	for _, s := range sessions {
		if s.End.After(now) {
			s.End = now
		}
		if !s.End.After(s.Start) {
			continue
		}
		clipped = append(clipped, s)
	}
	slices.SortStableFunc(clipped, func(a, b domain.SessionInterval) int {
		return b.Start.Compare(a.Start)
	})

	var out UserSessions
	for i := range clipped {
		s := clipped[i]
		if out.Longest == nil || s.End.Sub(s.Start) > out.Longest.End.Sub(out.Longest.Start) {
			out.Longest = &s
		}
	}
	out.Recent = clipped[:min(len(clipped), RecentSessionsLimit)]
	return out, nil
}
