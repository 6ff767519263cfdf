package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrInvalidPeriod = errors.New("invalid study period")
	ErrInvalidUser   = errors.New("invalid user id")

	// ErrUpstreamUnavailable matches any failure to read the session store.
	ErrUpstreamUnavailable = errors.New("session store unavailable")
)

// UpstreamError wraps a session store failure. It is never swallowed: a
// query that hits one fails as a whole.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("session store: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamUnavailable }
