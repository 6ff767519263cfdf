package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"presence-stats-service/internal/presence/core/domain"
	"presence-stats-service/internal/presence/core/ports"
)

const DefaultGrace = 5 * time.Minute

var ErrInvalidPresence = errors.New("invalid presence report")

type RecordPresenceUseCase struct {
	repo  ports.SessionRepositoryPort
	clock quartz.Clock
	grace time.Duration
}

func NewRecordPresenceUseCase(repo ports.SessionRepositoryPort, clock quartz.Clock, grace time.Duration) *RecordPresenceUseCase {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &RecordPresenceUseCase{repo: repo, clock: clock, grace: grace}
}

type RecordPresenceInput struct {
	UserIDs []string
}

type RecordPresenceResult struct {
	Extended int
	Started  int
}

// Execute records one poll: users seen now keep their open session alive
// until now+grace, everyone else gets a new session starting now.
func (uc *RecordPresenceUseCase) Execute(ctx context.Context, in RecordPresenceInput) (RecordPresenceResult, error) {
	var res RecordPresenceResult

	ids, err := parseUserIDs(in.UserIDs)
	if err != nil {
		return res, err
	}

	now := uc.clock.Now().UTC()
	until := now.Add(uc.grace)

	extended, err := uc.repo.ExtendOpenSessions(ctx, ids, now, until)
	if err != nil {
		return res, err
	}
	res.Extended = len(extended)

	seen := make(map[uuid.UUID]struct{}, len(extended))
	for _, id := range extended {
		seen[id] = struct{}{}
	}
	var fresh []uuid.UUID
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return res, nil
	}

	started, err := uc.repo.StartSessions(ctx, fresh, now, until)
	if err != nil {
		return res, err
	}
	res.Started = int(started)
	return res, nil
}

// parseUserIDs rejects empty batches and malformed ids and drops duplicates,
// keeping first-seen order.
func parseUserIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidPresence
	}
	out := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil || id == uuid.Nil {
			return nil, ErrInvalidPresence
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

type ListActiveSessionsUseCase struct {
	repo  ports.SessionRepositoryPort
	clock quartz.Clock
}

func NewListActiveSessionsUseCase(repo ports.SessionRepositoryPort, clock quartz.Clock) *ListActiveSessionsUseCase {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &ListActiveSessionsUseCase{repo: repo, clock: clock}
}

func (uc *ListActiveSessionsUseCase) Execute(ctx context.Context) ([]domain.Session, error) {
	now := uc.clock.Now().UTC()
	sessions, err := uc.repo.ListOpenSessions(ctx, now)
	if err != nil {
		return nil, err
	}
	out := sessions[:0]
	for _, s := range sessions {
		if s.OpenAt(now) {
			out = append(out, s)
		}
	}
	return out, nil
}
