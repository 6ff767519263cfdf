package fiber

import (
	"time"

	"presence-stats-service/internal/stats/core/domain"
)

type UserStatResponse struct {
	UserID          string `json:"user_id" example:"6f1c2a8e-7d2b-4c55-9a1e-0b4f3c2d1e00"`
	DurationMS      int64  `json:"duration_ms" example:"5400000"`
	DurationMinutes int64  `json:"duration_minutes" example:"90"`
}

// StatsResponse lists users by time present, longest first.
// @Description Presence totals for one period
type StatsResponse struct {
	Period string             `json:"period" example:"month"`
	From   string             `json:"from,omitempty" example:"2026-03-01"`
	To     string             `json:"to,omitempty" example:"2026-03-31"`
	Stats  []UserStatResponse `json:"stats"`
}

type HourBucketResponse struct {
	Hour            int   `json:"hour" example:"14"`
	DurationMS      int64 `json:"duration_ms" example:"3600000"`
	DurationMinutes int64 `json:"duration_minutes" example:"60"`
}

type HourStatsResponse struct {
	UserID string               `json:"user_id"`
	Hours  []HourBucketResponse `json:"hours"`
}

type StudyPeriodResponse struct {
	Year   int    `json:"year" example:"2026"`
	Period string `json:"period" example:"lp1"`
	From   string `json:"from" example:"2026-08-31"`
	To     string `json:"to" example:"2026-10-23"`
}

type SessionResponse struct {
	StartTime       string `json:"start_time" example:"2026-10-19T09:00:00Z"`
	EndTime         string `json:"end_time" example:"2026-10-19T12:05:00Z"`
	DurationMS      int64  `json:"duration_ms" example:"11100000"`
	DurationMinutes int64  `json:"duration_minutes" example:"185"`
}

// UserSessionsResponse lists recent sessions newest first. Longest is
// omitted when the user has no sessions.
type UserSessionsResponse struct {
	UserID  string            `json:"user_id"`
	Recent  []SessionResponse `json:"recent"`
	Longest *SessionResponse  `json:"longest,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_date"`
	Message string `json:"message,omitempty" example:"invalid date"`
}

func newStatsResponse(period string, from, to *domain.Date, stats domain.StatsMap) StatsResponse {
	resp := StatsResponse{
		Period: period,
		Stats:  make([]UserStatResponse, 0, len(stats)),
	}
	if from != nil {
		resp.From = from.String()
	}
	if to != nil {
		resp.To = to.String()
	}
	for _, s := range stats.Ranked() {
		resp.Stats = append(resp.Stats, UserStatResponse{
			UserID:          s.UserID.String(),
			DurationMS:      s.DurationMS,
			DurationMinutes: s.DurationMS / 60000,
		})
	}
	return resp
}

func newSessionResponse(s domain.SessionInterval) SessionResponse {
	ms := s.End.Sub(s.Start).Milliseconds()
	return SessionResponse{
		StartTime:       s.Start.UTC().Format(time.RFC3339),
		EndTime:         s.End.UTC().Format(time.RFC3339),
		DurationMS:      ms,
		DurationMinutes: ms / 60000,
	}
}
