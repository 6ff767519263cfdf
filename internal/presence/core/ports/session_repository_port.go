package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"presence-stats-service/internal/presence/core/domain"
)

type SessionRepositoryPort interface {
	// ExtendOpenSessions sets end_time to until on every session of the
	// given users that is still open at now, and returns the users it
	// touched.
	ExtendOpenSessions(ctx context.Context, userIDs []uuid.UUID, now, until time.Time) ([]uuid.UUID, error)

	// StartSessions opens a new [start, end) session per user.
	StartSessions(ctx context.Context, userIDs []uuid.UUID, start, end time.Time) (int64, error)

	ListOpenSessions(ctx context.Context, now time.Time) ([]domain.Session, error)
}
