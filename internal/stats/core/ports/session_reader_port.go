package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"presence-stats-service/internal/stats/core/domain"
)

type SessionReaderPort interface {
	// GetSessionsInRange returns every session overlapping [from, to), in
	// no particular order.
	GetSessionsInRange(ctx context.Context, from, to time.Time) ([]domain.SessionInterval, error)

	// GetEarliestSessionStart returns the start of the first recorded
	// session. found is false when there are no sessions at all.
	GetEarliestSessionStart(ctx context.Context) (start time.Time, found bool, err error)

	// GetUserSessions returns every session of the user, newest first.
	GetUserSessions(ctx context.Context, userID uuid.UUID) ([]domain.SessionInterval, error)
}
