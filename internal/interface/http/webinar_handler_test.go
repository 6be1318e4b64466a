package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	webinarapp "github.com/webinarhq/webinar-platform/internal/application"
	"github.com/webinarhq/webinar-platform/internal/clock"
	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	"github.com/webinarhq/webinar-platform/internal/idgen"
	"github.com/webinarhq/webinar-platform/internal/infrastructure/memory"
)

// newTestRouter wires the webinar routes with an in-memory store, a pinned
// clock and a stub identity middleware acting as the given user.
func newTestRouter(t *testing.T, actingUser string, seed ...entity.Webinar) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewWebinarRepository(seed...)
	svc := webinarapp.NewWebinarService(
		repo,
		clock.NewFixed(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		idgen.NewSequence("webinar"),
		nil,
	)
	h := NewWebinarHandler(svc, nil, nil)

	r := gin.New()
	identity := func(c *gin.Context) {
		c.Set("userID", actingUser)
		c.Next()
	}
	r.POST("/api/webinars", identity, h.Organize)
	r.POST("/api/webinars/:id/seats", identity, h.ChangeSeats)
	r.GET("/api/webinars/:id", h.Get)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return envelope
}

func sampleWebinar() entity.Webinar {
	return entity.Webinar{
		ID:          "webinar-123",
		OrganizerID: "alice",
		Title:       "Sample Webinar",
		StartDate:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		Seats:       100,
	}
}

func TestWebinarHandler_ChangeSeats(t *testing.T) {
	t.Run("organizer gets 200 and the acknowledgment", func(t *testing.T) {
		r := newTestRouter(t, "alice", sampleWebinar())

		rec := doJSON(t, r, http.MethodPost, "/api/webinars/webinar-123/seats", `{"seats": 150}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		envelope := decodeEnvelope(t, rec)
		data, _ := envelope["data"].(map[string]any)
		if data["message"] != "Seats updated" {
			t.Fatalf("expected Seats updated acknowledgment, got %v", envelope)
		}
	})

	t.Run("unknown webinar is 404", func(t *testing.T) {
		r := newTestRouter(t, "alice", sampleWebinar())

		rec := doJSON(t, r, http.MethodPost, "/api/webinars/missing-id/seats", `{"seats": 150}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("foreign webinar is 401", func(t *testing.T) {
		r := newTestRouter(t, "bob", sampleWebinar())

		rec := doJSON(t, r, http.MethodPost, "/api/webinars/webinar-123/seats", `{"seats": 150}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("seat reduction is 400", func(t *testing.T) {
		r := newTestRouter(t, "alice", sampleWebinar())

		rec := doJSON(t, r, http.MethodPost, "/api/webinars/webinar-123/seats", `{"seats": 50}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("over the ceiling is 400", func(t *testing.T) {
		r := newTestRouter(t, "alice", sampleWebinar())

		rec := doJSON(t, r, http.MethodPost, "/api/webinars/webinar-123/seats", `{"seats": 2000}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed payload is 400", func(t *testing.T) {
		r := newTestRouter(t, "alice", sampleWebinar())

		rec := doJSON(t, r, http.MethodPost, "/api/webinars/webinar-123/seats", `{"seats": "many"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestWebinarHandler_Organize(t *testing.T) {
	t.Run("valid command is 201 with the allocated id", func(t *testing.T) {
		r := newTestRouter(t, "u1")

		rec := doJSON(t, r, http.MethodPost, "/api/webinars", `{
			"title": "E2E Webinar",
			"seats": 10,
			"start_date": "2024-01-10T10:00:00Z",
			"end_date": "2024-01-10T11:00:00Z"
		}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		envelope := decodeEnvelope(t, rec)
		data, _ := envelope["data"].(map[string]any)
		if data["id"] != "webinar-1" {
			t.Fatalf("expected allocated id in response, got %v", envelope)
		}
	})

	t.Run("too soon is 400", func(t *testing.T) {
		r := newTestRouter(t, "u1")

		rec := doJSON(t, r, http.MethodPost, "/api/webinars", `{
			"title": "Too Soon",
			"seats": 10,
			"start_date": "2024-01-02T00:00:00Z",
			"end_date": "2024-01-02T01:00:00Z"
		}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing title is 400", func(t *testing.T) {
		r := newTestRouter(t, "u1")

		rec := doJSON(t, r, http.MethodPost, "/api/webinars", `{
			"seats": 10,
			"start_date": "2024-01-10T10:00:00Z",
			"end_date": "2024-01-10T11:00:00Z"
		}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestWebinarHandler_Get(t *testing.T) {
	t.Run("existing webinar is returned", func(t *testing.T) {
		r := newTestRouter(t, "alice", sampleWebinar())

		rec := doJSON(t, r, http.MethodGet, "/api/webinars/webinar-123", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		data, _ := envelope["data"].(map[string]any)
		if data["id"] != "webinar-123" || data["seats"] != float64(100) {
			t.Fatalf("unexpected webinar payload: %v", envelope)
		}
	})

	t.Run("missing webinar is 404", func(t *testing.T) {
		r := newTestRouter(t, "alice")

		rec := doJSON(t, r, http.MethodGet, "/api/webinars/none", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
