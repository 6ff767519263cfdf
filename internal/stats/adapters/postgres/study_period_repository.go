package postgres

import (
	"context"
	"time"

	"golang.org/x/xerrors"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

type StudyPeriodRepository struct {
	db DB
}

func NewStudyPeriodRepository(db DB) *StudyPeriodRepository {
	return &StudyPeriodRepository{db: db}
}

var _ ports.StudyPeriodReaderPort = (*StudyPeriodRepository)(nil)

// period is stored as 0..4 (LP1..LP4, Summer).
const studyPeriodSQL = `
SELECT start_date, end_date
FROM study_periods
WHERE year = $1 AND period = $2
`

// Periods may be stored overlapping at their edges; the later one wins.
const currentStudyPeriodSQL = `
SELECT year, period, start_date, end_date
FROM study_periods
WHERE start_date <= $1 AND end_date >= $1
ORDER BY start_date DESC
LIMIT 1
`

const studyYearSQL = `
SELECT start_date, end_date
FROM study_years
WHERE year = $1
`

func (r *StudyPeriodRepository) GetStudyPeriod(ctx context.Context, year int, period domain.StudyPeriod) (domain.Date, domain.Date, error) {
	start, end, err := r.queryDates(ctx, studyPeriodSQL, year, int(period))
	if err != nil {
		return domain.Date{}, domain.Date{}, xerrors.Errorf("study period %d/%s: %w", year, period, err)
	}
	return start, end, nil
}

func (r *StudyPeriodRepository) GetStudyYear(ctx context.Context, year int) (domain.Date, domain.Date, error) {
	start, end, err := r.queryDates(ctx, studyYearSQL, year)
	if err != nil {
		return domain.Date{}, domain.Date{}, xerrors.Errorf("study year %d: %w", year, err)
	}
	return start, end, nil
}

func (r *StudyPeriodRepository) GetCurrentStudyPeriod(ctx context.Context, day domain.Date) (domain.StudyPeriodSpan, error) {
	rows, err := r.db.QueryContext(ctx, currentStudyPeriodSQL, day.Midnight(time.UTC))
	if err != nil {
		return domain.StudyPeriodSpan{}, xerrors.Errorf("query current study period: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.StudyPeriodSpan{}, xerrors.Errorf("query current study period: %w", err)
		}
		return domain.StudyPeriodSpan{}, xerrors.Errorf("study period containing %s: %w", day, ports.ErrStudyPeriodNotFound)
	}

	var (
		span       domain.StudyPeriodSpan
		period     int
		start, end time.Time
	)
	if err := rows.Scan(&span.Year, &period, &start, &end); err != nil {
		return domain.StudyPeriodSpan{}, xerrors.Errorf("scan current study period: %w", err)
	}
	if err := rows.Err(); err != nil {
		return domain.StudyPeriodSpan{}, xerrors.Errorf("query current study period: %w", err)
	}
	span.Period = domain.StudyPeriod(period)
	if !span.Period.Valid() {
		return domain.StudyPeriodSpan{}, xerrors.Errorf("study period %d/%d: unknown period", span.Year, period)
	}
	span.Start, span.End = dateOf(start), dateOf(end)
	return span, nil
}

func (r *StudyPeriodRepository) queryDates(ctx context.Context, query string, args ...any) (domain.Date, domain.Date, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Date{}, domain.Date{}, err
		}
		return domain.Date{}, domain.Date{}, ports.ErrStudyPeriodNotFound
	}

	var start, end time.Time
	if err := rows.Scan(&start, &end); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	if err := rows.Err(); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	return dateOf(start), dateOf(end), nil
}

// DATE columns arrive as midnight UTC.
func dateOf(t time.Time) domain.Date {
	y, m, d := t.Date()
	return domain.Date{Year: y, Month: m, Day: d}
}
