package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ ports.SessionReaderPort = (*SessionRepository)(nil)

// Overlap with the half-open window [$1, $2).
const sessionsInRangeSQL = `
SELECT user_id, start_time, end_time
FROM user_sessions
WHERE end_time > $1 AND start_time < $2
`

const earliestSessionSQL = `
SELECT MIN(start_time)
FROM user_sessions
`

const userSessionsSQL = `
SELECT user_id, start_time, end_time
FROM user_sessions
WHERE user_id = $1
ORDER BY start_time DESC
`

func (r *SessionRepository) GetSessionsInRange(ctx context.Context, from, to time.Time) ([]domain.SessionInterval, error) {
	out, err := r.querySessions(ctx, sessionsInRangeSQL, from.UTC(), to.UTC())
	if err != nil {
		return nil, xerrors.Errorf("query sessions in range: %w", err)
	}
	return out, nil
}

func (r *SessionRepository) GetUserSessions(ctx context.Context, userID uuid.UUID) ([]domain.SessionInterval, error) {
	out, err := r.querySessions(ctx, userSessionsSQL, userID)
	if err != nil {
		return nil, xerrors.Errorf("query sessions of user %s: %w", userID, err)
	}
	return out, nil
}

func (r *SessionRepository) GetEarliestSessionStart(ctx context.Context) (time.Time, bool, error) {
	rows, err := r.db.QueryContext(ctx, earliestSessionSQL)
	if err != nil {
		return time.Time{}, false, xerrors.Errorf("query earliest session: %w", err)
	}
	defer rows.Close()

	// MIN over an empty table is a single NULL row.
	var earliest sql.NullTime
	if rows.Next() {
		if err := rows.Scan(&earliest); err != nil {
			return time.Time{}, false, xerrors.Errorf("scan earliest session: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return time.Time{}, false, xerrors.Errorf("query earliest session: %w", err)
	}
	if !earliest.Valid {
		return time.Time{}, false, nil
	}
	return earliest.Time, true, nil
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]domain.SessionInterval, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SessionInterval
	for rows.Next() {
		var s domain.SessionInterval
		if err := rows.Scan(&s.UserID, &s.Start, &s.End); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
