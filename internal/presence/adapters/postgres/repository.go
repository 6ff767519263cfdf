package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/xerrors"

	"presence-stats-service/internal/presence/core/domain"
	"presence-stats-service/internal/presence/core/ports"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ ports.SessionRepositoryPort = (*SessionRepository)(nil)

const extendOpenSessionsSQL = `
UPDATE user_sessions
SET end_time = $2
WHERE user_id = ANY($1::uuid[]) AND end_time > $3
RETURNING user_id
`

const startSessionsSQL = `
INSERT INTO user_sessions (user_id, start_time, end_time)
SELECT user_id, $2, $3
FROM UNNEST($1::uuid[]) AS user_id
`

const openSessionsSQL = `
SELECT id, user_id, start_time, end_time
FROM user_sessions
WHERE end_time > $1
ORDER BY start_time
`

func (r *SessionRepository) ExtendOpenSessions(ctx context.Context, userIDs []uuid.UUID, now, until time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, extendOpenSessionsSQL, uuidArray(userIDs), until, now)
	if err != nil {
		return nil, xerrors.Errorf("extend open sessions: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, xerrors.Errorf("scan extended session: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Errorf("extend open sessions: %w", err)
	}
	return out, nil
}

func (r *SessionRepository) StartSessions(ctx context.Context, userIDs []uuid.UUID, start, end time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, startSessionsSQL, uuidArray(userIDs), start, end)
	if err != nil {
		return 0, xerrors.Errorf("start sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, xerrors.Errorf("start sessions: %w", err)
	}
	return n, nil
}

func (r *SessionRepository) ListOpenSessions(ctx context.Context, now time.Time) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, openSessionsSQL, now)
	if err != nil {
		return nil, xerrors.Errorf("list open sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Start, &s.End); err != nil {
			return nil, xerrors.Errorf("scan open session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Errorf("list open sessions: %w", err)
	}
	return out, nil
}

func uuidArray(ids []uuid.UUID) any {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}
