package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cdr.dev/slog/v3"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"presence-stats-service/internal/stats/core/domain"
	"presence-stats-service/internal/stats/core/ports"
	"presence-stats-service/internal/stats/core/usecase"
)

type GetStatsUseCase interface {
	GetDay(ctx context.Context, year, month, day int) (domain.StatsMap, error)
	GetWeek(ctx context.Context, year, week int) (domain.StatsMap, error)
	GetMonth(ctx context.Context, year, month int) (domain.StatsMap, error)
	GetYear(ctx context.Context, year int) (domain.StatsMap, error)
	GetStudyYear(ctx context.Context, year int) (domain.StatsMap, error)
	GetStudyPeriod(ctx context.Context, year int, period domain.StudyPeriod) (domain.StatsMap, error)
	GetLifetime(ctx context.Context) (domain.StatsMap, error)
	GetRange(ctx context.Context, start, end domain.Date) (domain.StatsMap, error)
	GetCurrentStudyPeriod(ctx context.Context) (domain.StudyPeriodSpan, error)
}

type GetHourStatsUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID) (domain.HourStats, error)
}

type GetUserSessionsUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID) (usecase.UserSessions, error)
}

type StatsHandler struct {
	statsUC    GetStatsUseCase
	hoursUC    GetHourStatsUseCase
	sessionsUC GetUserSessionsUseCase
	log        slog.Logger
}

func NewStatsHandler(statsUC GetStatsUseCase, hoursUC GetHourStatsUseCase, sessionsUC GetUserSessionsUseCase, log slog.Logger) *StatsHandler {
	return &StatsHandler{statsUC: statsUC, hoursUC: hoursUC, sessionsUC: sessionsUC, log: log}
}

// Register mounts the stats routes on r.
func (h *StatsHandler) Register(r fiber.Router) {
	r.Get("/day/:year/:month/:day", h.GetDay)
	r.Get("/week/:year/:week", h.GetWeek)
	r.Get("/month/:year/:month", h.GetMonth)
	r.Get("/year/:year", h.GetYear)
	r.Get("/study-year/:year", h.GetStudyYear)
	r.Get("/study-period/current", h.GetCurrentStudyPeriod)
	r.Get("/study-period/:year/:period", h.GetStudyPeriod)
	r.Get("/lifetime", h.GetLifetime)
	r.Get("/range", h.GetRange)
	r.Get("/users/:user_id/hours", h.GetUserHours)
	r.Get("/users/:user_id/sessions", h.GetUserSessions)
}

// GetDay godoc
// @Summary Presence for one day
// @Tags Stats
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param day path int true "Day of month"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/day/{year}/{month}/{day} [get]
func (h *StatsHandler) GetDay(c *fiber.Ctx) error {
	year, month, day := intParam(c, "year"), intParam(c, "month"), intParam(c, "day")
	if year < 0 || month < 0 || day < 0 {
		return badRequest(c, "invalid_date", "year, month and day must be integers")
	}
	stats, err := h.statsUC.GetDay(c.UserContext(), year, month, day)
	if err != nil {
		return h.writeError(c, err)
	}
	d := domain.Date{Year: year, Month: time.Month(month), Day: day}
	return c.Status(http.StatusOK).JSON(newStatsResponse("day", &d, &d, stats))
}

// GetWeek godoc
// @Summary Presence for one ISO-8601 week
// @Tags Stats
// @Produce json
// @Param year path int true "ISO week-numbering year"
// @Param week path int true "ISO week (1-53)"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/week/{year}/{week} [get]
func (h *StatsHandler) GetWeek(c *fiber.Ctx) error {
	year, week := intParam(c, "year"), intParam(c, "week")
	if year < 0 || week < 0 {
		return badRequest(c, "invalid_date", "year and week must be integers")
	}
	stats, err := h.statsUC.GetWeek(c.UserContext(), year, week)
	if err != nil {
		return h.writeError(c, err)
	}
	from, to, _ := domain.ISOWeekBounds(year, week)
	return c.Status(http.StatusOK).JSON(newStatsResponse("week", &from, &to, stats))
}

// GetMonth godoc
// @Summary Presence for one calendar month
// @Tags Stats
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/month/{year}/{month} [get]
func (h *StatsHandler) GetMonth(c *fiber.Ctx) error {
	year, month := intParam(c, "year"), intParam(c, "month")
	if year < 0 || month < 0 {
		return badRequest(c, "invalid_date", "year and month must be integers")
	}
	stats, err := h.statsUC.GetMonth(c.UserContext(), year, month)
	if err != nil {
		return h.writeError(c, err)
	}
	from := domain.Date{Year: year, Month: time.Month(month), Day: 1}
	to := from.LastOfMonth()
	return c.Status(http.StatusOK).JSON(newStatsResponse("month", &from, &to, stats))
}

// GetYear godoc
// @Summary Presence for one calendar year
// @Tags Stats
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/year/{year} [get]
func (h *StatsHandler) GetYear(c *fiber.Ctx) error {
	year := intParam(c, "year")
	if year < 0 {
		return badRequest(c, "invalid_date", "year must be an integer")
	}
	stats, err := h.statsUC.GetYear(c.UserContext(), year)
	if err != nil {
		return h.writeError(c, err)
	}
	from := domain.Date{Year: year, Month: 1, Day: 1}
	to := from.LastOfYear()
	return c.Status(http.StatusOK).JSON(newStatsResponse("year", &from, &to, stats))
}

// GetStudyYear godoc
// @Summary Presence for one academic year
// @Tags Stats
// @Produce json
// @Param year path int true "Year the academic year starts in"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/study-year/{year} [get]
func (h *StatsHandler) GetStudyYear(c *fiber.Ctx) error {
	year := intParam(c, "year")
	if year < 0 {
		return badRequest(c, "invalid_date", "year must be an integer")
	}
	stats, err := h.statsUC.GetStudyYear(c.UserContext(), year)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(newStatsResponse("study_year", nil, nil, stats))
}

// GetStudyPeriod godoc
// @Summary Presence for one study period
// @Tags Stats
// @Produce json
// @Param year path int true "Year the academic year starts in"
// @Param period path string true "Period" Enums(lp1, lp2, lp3, lp4, summer)
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/study-period/{year}/{period} [get]
func (h *StatsHandler) GetStudyPeriod(c *fiber.Ctx) error {
	year := intParam(c, "year")
	if year < 0 {
		return badRequest(c, "invalid_date", "year must be an integer")
	}
	period, err := domain.ParseStudyPeriod(c.Params("period"))
	if err != nil {
		return badRequest(c, "invalid_period", err.Error())
	}
	stats, err := h.statsUC.GetStudyPeriod(c.UserContext(), year, period)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(newStatsResponse("study_period", nil, nil, stats))
}

// GetCurrentStudyPeriod godoc
// @Summary Study period containing today
// @Tags Stats
// @Produce json
// @Success 200 {object} StudyPeriodResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/study-period/current [get]
func (h *StatsHandler) GetCurrentStudyPeriod(c *fiber.Ctx) error {
	span, err := h.statsUC.GetCurrentStudyPeriod(c.UserContext())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(StudyPeriodResponse{
		Year:   span.Year,
		Period: span.Period.String(),
		From:   span.Start.String(),
		To:     span.End.String(),
	})
}

// GetLifetime godoc
// @Summary Presence over the whole recorded history
// @Tags Stats
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/lifetime [get]
func (h *StatsHandler) GetLifetime(c *fiber.Ctx) error {
	stats, err := h.statsUC.GetLifetime(c.UserContext())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(newStatsResponse("lifetime", nil, nil, stats))
}

// GetRange godoc
// @Summary Presence over an inclusive date range
// @Tags Stats
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/range [get]
func (h *StatsHandler) GetRange(c *fiber.Ctx) error {
	fromStr, toStr := c.Query("from", ""), c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return badRequest(c, "invalid_range", "from and to are required")
	}
	from, err := domain.ParseDate(fromStr)
	if err != nil {
		return badRequest(c, "invalid_date", "invalid 'from' parameter")
	}
	to, err := domain.ParseDate(toStr)
	if err != nil {
		return badRequest(c, "invalid_date", "invalid 'to' parameter")
	}
	stats, err := h.statsUC.GetRange(c.UserContext(), from, to)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(newStatsResponse("range", &from, &to, stats))
}

// GetUserHours godoc
// @Summary Hour-of-day presence profile of one user
// @Tags Stats
// @Produce json
// @Param user_id path string true "User id (uuid)"
// @Success 200 {object} HourStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/users/{user_id}/hours [get]
func (h *StatsHandler) GetUserHours(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid_user", "user_id must be a uuid")
	}
	hours, err := h.hoursUC.Execute(c.UserContext(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	resp := HourStatsResponse{
		UserID: userID.String(),
		Hours:  make([]HourBucketResponse, 0, len(hours)),
	}
	for hour, ms := range hours {
		resp.Hours = append(resp.Hours, HourBucketResponse{
			Hour:            hour,
			DurationMS:      ms,
			DurationMinutes: ms / 60000,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetUserSessions godoc
// @Summary Most recent and longest sessions of one user
// @Tags Stats
// @Produce json
// @Param user_id path string true "User id (uuid)"
// @Success 200 {object} UserSessionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats/users/{user_id}/sessions [get]
func (h *StatsHandler) GetUserSessions(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid_user", "user_id must be a uuid")
	}
	sessions, err := h.sessionsUC.Execute(c.UserContext(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	resp := UserSessionsResponse{
		UserID: userID.String(),
		Recent: make([]SessionResponse, 0, len(sessions.Recent)),
	}
	for _, s := range sessions.Recent {
		resp.Recent = append(resp.Recent, newSessionResponse(s))
	}
	if sessions.Longest != nil {
		longest := newSessionResponse(*sessions.Longest)
		resp.Longest = &longest
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func (h *StatsHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate):
		return badRequest(c, "invalid_date", err.Error())
	case errors.Is(err, usecase.ErrInvalidRange):
		return badRequest(c, "invalid_range", err.Error())
	case errors.Is(err, usecase.ErrInvalidPeriod):
		return badRequest(c, "invalid_period", err.Error())
	case errors.Is(err, usecase.ErrInvalidUser):
		return badRequest(c, "invalid_user", err.Error())
	case errors.Is(err, ports.ErrStudyPeriodNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		h.log.Error(c.UserContext(), "session store unavailable",
			slog.F("path", c.Path()),
			slog.Error(err),
		)
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "upstream_unavailable",
		})
	default:
		h.log.Error(c.UserContext(), "stats request failed",
			slog.F("path", c.Path()),
			slog.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// intParam returns -1 when the path parameter is not a non-negative integer.
func intParam(c *fiber.Ctx, key string) int {
	v, err := c.ParamsInt(key, -1)
	if err != nil || v < 0 {
		return -1
	}
	return v
}
