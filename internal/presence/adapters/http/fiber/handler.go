package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cdr.dev/slog/v3"
	"github.com/gofiber/fiber/v2"

	"presence-stats-service/internal/presence/core/domain"
	"presence-stats-service/internal/presence/core/usecase"
)

type RecordPresenceUseCase interface {
	Execute(ctx context.Context, in usecase.RecordPresenceInput) (usecase.RecordPresenceResult, error)
}

type ListActiveSessionsUseCase interface {
	Execute(ctx context.Context) ([]domain.Session, error)
}

type PresenceHandler struct {
	recordUC RecordPresenceUseCase
	activeUC ListActiveSessionsUseCase
	log      slog.Logger
}

func NewPresenceHandler(recordUC RecordPresenceUseCase, activeUC ListActiveSessionsUseCase, log slog.Logger) *PresenceHandler {
	return &PresenceHandler{recordUC: recordUC, activeUC: activeUC, log: log}
}

// RecordPresence godoc
// @Summary Report the users currently present
// @Description Extends the open session of every listed user, or starts one
// @Tags Presence
// @Accept json
// @Produce json
// @Param request body RecordPresenceRequest true "Presence payload"
// @Success 200 {object} RecordPresenceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /presence [post]
func (h *PresenceHandler) RecordPresence(c *fiber.Ctx) error {
	var req RecordPresenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	res, err := h.recordUC.Execute(c.UserContext(), usecase.RecordPresenceInput{UserIDs: req.UserIDs})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPresence) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_presence",
				Message: err.Error(),
			})
		}
		h.log.Error(c.UserContext(), "record presence", slog.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(RecordPresenceResponse{
		Extended: res.Extended,
		Started:  res.Started,
	})
}

// ListActiveSessions godoc
// @Summary List sessions that are still open
// @Tags Presence
// @Produce json
// @Success 200 {object} ActiveSessionsResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/active [get]
func (h *PresenceHandler) ListActiveSessions(c *fiber.Ctx) error {
	sessions, err := h.activeUC.Execute(c.UserContext())
	if err != nil {
		h.log.Error(c.UserContext(), "list active sessions", slog.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	resp := ActiveSessionsResponse{Sessions: make([]ActiveSessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, ActiveSessionResponse{
			ID:        s.ID,
			UserID:    s.UserID.String(),
			StartTime: s.Start.UTC().Format(time.RFC3339),
			EndTime:   s.End.UTC().Format(time.RFC3339),
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}
