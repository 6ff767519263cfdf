package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one row of user_sessions. An open session has End in the
// future; every poll that still sees the user pushes End forward.
type Session struct {
	ID     int64
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

func (s Session) OpenAt(now time.Time) bool {
	return s.End.After(now)
}
