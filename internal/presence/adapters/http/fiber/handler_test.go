package fiber_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpadapter "presence-stats-service/internal/presence/adapters/http/fiber"
	"presence-stats-service/internal/presence/core/domain"
	"presence-stats-service/internal/presence/core/usecase"
)

// Fake usecases implementing the interfaces that handler depends on.
type fakeRecordPresenceUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.RecordPresenceInput) (usecase.RecordPresenceResult, error)
	lastInput usecase.RecordPresenceInput
	called    bool
}

func (f *fakeRecordPresenceUseCase) Execute(ctx context.Context, in usecase.RecordPresenceInput) (usecase.RecordPresenceResult, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return usecase.RecordPresenceResult{}, nil
}

type fakeListActiveUseCase struct {
	ExecuteFn func(ctx context.Context) ([]domain.Session, error)
}

func (f *fakeListActiveUseCase) Execute(ctx context.Context) ([]domain.Session, error) {
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx)
	}
	return nil, nil
}

func setupApp(t *testing.T, record httpadapter.RecordPresenceUseCase, active httpadapter.ListActiveSessionsUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := httpadapter.NewPresenceHandler(record, active, slogtest.Make(t, &slogtest.Options{IgnoreErrors: true}))
	app.Post("/presence", h.RecordPresence)
	app.Get("/sessions/active", h.ListActiveSessions)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/presence", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	return resp
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestRecordPresence_Success(t *testing.T) {
	uc := &fakeRecordPresenceUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.RecordPresenceInput) (usecase.RecordPresenceResult, error) {
			return usecase.RecordPresenceResult{Extended: 1, Started: 1}, nil
		},
	}
	app := setupApp(t, uc, &fakeListActiveUseCase{})

	body, _ := json.Marshal(httpadapter.RecordPresenceRequest{UserIDs: []string{"a", "b"}})
	resp := postJSON(t, app, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if len(uc.lastInput.UserIDs) != 2 {
		t.Fatalf("expected 2 user ids, got %v", uc.lastInput.UserIDs)
	}

	var out httpadapter.RecordPresenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Extended != 1 || out.Started != 1 {
		t.Fatalf("unexpected response: %+v", out)
	}
}

// ------------------------------------------------------------
// INVALID JSON
// ------------------------------------------------------------

func TestRecordPresence_InvalidJSON(t *testing.T) {
	uc := &fakeRecordPresenceUseCase{}
	app := setupApp(t, uc, &fakeListActiveUseCase{})

	resp := postJSON(t, app, []byte(`{"user_ids": [`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
	if uc.called {
		t.Fatalf("usecase should not be called on invalid json")
	}
}

// ------------------------------------------------------------
// USECASE ERRORS
// ------------------------------------------------------------

func TestRecordPresence_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", usecase.ErrInvalidPresence, http.StatusBadRequest},
		{"db", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeRecordPresenceUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.RecordPresenceInput) (usecase.RecordPresenceResult, error) {
					return usecase.RecordPresenceResult{}, tt.err
				},
			}
			app := setupApp(t, uc, &fakeListActiveUseCase{})

			resp := postJSON(t, app, []byte(`{"user_ids":["x"]}`))
			if resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

// ------------------------------------------------------------
// ACTIVE SESSIONS
// ------------------------------------------------------------

func TestListActiveSessions(t *testing.T) {
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	user := uuid.MustParse("6f1c2a8e-7d2b-4c55-9a1e-0b4f3c2d1e00")
	active := &fakeListActiveUseCase{
		ExecuteFn: func(ctx context.Context) ([]domain.Session, error) {
			return []domain.Session{{ID: 3, UserID: user, Start: start, End: start.Add(3 * time.Hour)}}, nil
		},
	}
	app := setupApp(t, &fakeRecordPresenceUseCase{}, active)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/active", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out httpadapter.ActiveSessionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Sessions) != 1 || out.Sessions[0].UserID != user.String() || out.Sessions[0].StartTime != "2026-10-19T09:00:00Z" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestListActiveSessions_Error(t *testing.T) {
	active := &fakeListActiveUseCase{
		ExecuteFn: func(ctx context.Context) ([]domain.Session, error) {
			return nil, errors.New("db error")
		},
	}
	app := setupApp(t, &fakeRecordPresenceUseCase{}, active)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/active", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}
