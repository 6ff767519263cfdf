package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

// Aggregator sums per-user presence over one concrete interval straight from
// the session store.
type Aggregator struct {
	sessions ports.SessionReaderPort
	metrics  *Metrics
}

func NewAggregator(sessions ports.SessionReaderPort, metrics *Metrics) *Aggregator {
	return &Aggregator{sessions: sessions, metrics: metrics}
}

// Aggregate returns the time each user spent present inside [from, to).
// Sessions are clipped to the interval.
func (a *Aggregator) Aggregate(ctx context.Context, from, to time.Time) (domain.StatsMap, error) {
	started := time.Now()
	sessions, err := a.sessions.GetSessionsInRange(ctx, from, to)
	if err != nil {
		return nil, &UpstreamError{Op: "get sessions in range", Err: err}
	}
	a.metrics.observeAggregation(time.Since(started).Seconds())

	totals := make(map[uuid.UUID]time.Duration)
	for _, s := range sessions {
		totals[s.UserID] += ContributedDuration(s, from, to)
	}

	out := make(domain.StatsMap, len(totals))
	for id, d := range totals {
		out[id] = domain.Stat{UserID: id, DurationMS: d.Milliseconds()}
	}
	return out, nil
}

// ContributedDuration is the overlap of the session with [from, to), never
// negative.
func ContributedDuration(s domain.SessionInterval, from, to time.Time) time.Duration {
	start := s.Start
	if start.Before(from) {
		start = from
	}
	end := s.End
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
