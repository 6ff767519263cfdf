package usecase

import (
	"context"
	"errors"
	"time"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
)

const (
	minYear = 1970
	maxYear = 9999
)

// GetStatsUseCase answers presence totals for named calendar periods. Every
// period is reduced to a date range, clamped to the recorded history and
// served bucket by bucket through the Resolver.
type GetStatsUseCase struct {
	resolver *Resolver
	earliest *EarliestDate
	periods  ports.StudyPeriodReaderPort
}

func NewGetStatsUseCase(resolver *Resolver, earliest *EarliestDate, periods ports.StudyPeriodReaderPort) *GetStatsUseCase {
	return &GetStatsUseCase{resolver: resolver, earliest: earliest, periods: periods}
}

func (uc *GetStatsUseCase) GetDay(ctx context.Context, year, month, day int) (domain.StatsMap, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	d, err := domain.NewDate(year, time.Month(month), day)
	if err != nil {
		return nil, errors.Join(ErrInvalidDate, err)
	}
	return uc.getRange(ctx, d, d)
}

// GetWeek serves an ISO-8601 week, Monday through Sunday.
func (uc *GetStatsUseCase) GetWeek(ctx context.Context, year, week int) (domain.StatsMap, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	start, end, err := domain.ISOWeekBounds(year, week)
	if err != nil {
		return nil, errors.Join(ErrInvalidDate, err)
	}
	return uc.getRange(ctx, start, end)
}

func (uc *GetStatsUseCase) GetMonth(ctx context.Context, year, month int) (domain.StatsMap, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	first, err := domain.NewDate(year, time.Month(month), 1)
	if err != nil {
		return nil, errors.Join(ErrInvalidDate, err)
	}
	return uc.getRange(ctx, first, first.LastOfMonth())
}

func (uc *GetStatsUseCase) GetYear(ctx context.Context, year int) (domain.StatsMap, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	first := domain.Date{Year: year, Month: time.January, Day: 1}
	return uc.getRange(ctx, first, first.LastOfYear())
}

func (uc *GetStatsUseCase) GetStudyPeriod(ctx context.Context, year int, period domain.StudyPeriod) (domain.StatsMap, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}
	start, end, err := uc.periods.GetStudyPeriod(ctx, year, period)
	if err != nil {
		return nil, uc.periodErr("get study period", err)
	}
	return uc.getRange(ctx, start, end)
}

func (uc *GetStatsUseCase) GetStudyYear(ctx context.Context, year int) (domain.StatsMap, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	start, end, err := uc.periods.GetStudyYear(ctx, year)
	if err != nil {
		return nil, uc.periodErr("get study year", err)
	}
	return uc.getRange(ctx, start, end)
}

// GetCurrentStudyPeriod returns the study period containing today.
func (uc *GetStatsUseCase) GetCurrentStudyPeriod(ctx context.Context) (domain.StudyPeriodSpan, error) {
	today := domain.DateOf(uc.resolver.Now(), uc.resolver.Location())
	span, err := uc.periods.GetCurrentStudyPeriod(ctx, today)
	if err != nil {
		return domain.StudyPeriodSpan{}, uc.periodErr("get current study period", err)
	}
	return span, nil
}

// GetLifetime covers everything from the first recorded session to now.
func (uc *GetStatsUseCase) GetLifetime(ctx context.Context) (domain.StatsMap, error) {
	earliest, found, err := uc.earliest.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.StatsMap{}, nil
	}
	loc := uc.resolver.Location()
	today := domain.DateOf(uc.resolver.Now(), loc)
	return uc.getRange(ctx, domain.DateOf(earliest, loc).FirstOfYear(), today.LastOfYear())
}

// GetRange serves an arbitrary inclusive date range.
func (uc *GetStatsUseCase) GetRange(ctx context.Context, start, end domain.Date) (domain.StatsMap, error) {
	if err := validateYear(start.Year); err != nil {
		return nil, err
	}
	if err := validateYear(end.Year); err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	return uc.getRange(ctx, start, end)
}

func (uc *GetStatsUseCase) getRange(ctx context.Context, start, end domain.Date) (domain.StatsMap, error) {
	now := uc.resolver.Now()
	loc := uc.resolver.Location()

	earliest, found, err := uc.earliest.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.StatsMap{}, nil
	}

	end = domain.ClampEnd(end, domain.DateOf(now, loc))
	start = domain.ClampStart(start, domain.DateOf(earliest, loc))
	if start.After(end) {
		return domain.StatsMap{}, nil
	}

	return uc.resolver.ResolveAll(ctx, domain.Decompose(start, end).All(), now)
}

func (uc *GetStatsUseCase) periodErr(op string, err error) error {
	if errors.Is(err, ports.ErrStudyPeriodNotFound) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return ErrInvalidDate
	}
	return nil
}
