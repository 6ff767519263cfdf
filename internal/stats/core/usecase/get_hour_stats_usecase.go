package usecase

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

// GetHourStatsUseCase builds a user's hour-of-day presence profile over the
// whole recorded history. It reads the session store directly; the profile
// is not cached.
type GetHourStatsUseCase struct {
	sessions ports.SessionReaderPort
	clock    quartz.Clock
	loc      *time.Location
}

func NewGetHourStatsUseCase(sessions ports.SessionReaderPort, clock quartz.Clock, loc *time.Location) *GetHourStatsUseCase {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if loc == nil {
		loc = time.Local
	}
	return &GetHourStatsUseCase{sessions: sessions, clock: clock, loc: loc}
}

func (uc *GetHourStatsUseCase) Execute(ctx context.Context, userID uuid.UUID) (domain.HourStats, error) {
	var out domain.HourStats
	if userID == uuid.Nil {
		return out, ErrInvalidUser
	}

	sessions, err := uc.sessions.GetUserSessions(ctx, userID)
	if err != nil {
		return out, &UpstreamError{Op: "get user sessions", Err: err}
	}

	// Open sessions are extended into the future by the poller.
	now := uc.clock.Now()
	for _, s := range sessions {
		end := s.End
		if end.After(now) {
			end = now
		}
		out.Add(s.Start, end, uc.loc)
	}
	return out, nil
}
