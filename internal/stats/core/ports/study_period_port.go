package ports

import (
	"context"
	"errors"

	"presence-stats-service/internal/stats/core/domain"
)

var ErrStudyPeriodNotFound = errors.New("study period not found")

type StudyPeriodReaderPort interface {
	// GetStudyPeriod returns the inclusive date range of the period, or
	// ErrStudyPeriodNotFound.
	GetStudyPeriod(ctx context.Context, year int, period domain.StudyPeriod) (start, end domain.Date, err error)
	GetStudyYear(ctx context.Context, year int) (start, end domain.Date, err error)
	// GetCurrentStudyPeriod returns the period whose range contains day, or
	// ErrStudyPeriodNotFound.
	GetCurrentStudyPeriod(ctx context.Context, day domain.Date) (domain.StudyPeriodSpan, error)
}
