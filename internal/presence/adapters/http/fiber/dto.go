package fiber

// RecordPresenceRequest is one poll of the network: every user currently
// seen online.
// @Description Presence report DTO
type RecordPresenceRequest struct {
	UserIDs []string `json:"user_ids" example:"6f1c2a8e-7d2b-4c55-9a1e-0b4f3c2d1e00"`
}

type RecordPresenceResponse struct {
	Extended int `json:"extended"`
	Started  int `json:"started"`
}

type ActiveSessionResponse struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	StartTime string `json:"start_time" example:"2026-10-19T09:00:00Z"`
	EndTime   string `json:"end_time" example:"2026-10-19T12:05:00Z"`
}

type ActiveSessionsResponse struct {
	Sessions []ActiveSessionResponse `json:"sessions"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_presence"`
	Message string `json:"message,omitempty" example:"invalid presence report"`
}
