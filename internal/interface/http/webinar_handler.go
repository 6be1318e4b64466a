package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	webinarapp "github.com/webinarhq/webinar-platform/internal/application"
	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	"github.com/webinarhq/webinar-platform/pkg/helpers"
	"github.com/webinarhq/webinar-platform/pkg/response"
	"github.com/webinarhq/webinar-platform/pkg/validation"
)

const webinarCacheTTL = time.Minute

type WebinarHandler struct {
	Svc    *webinarapp.WebinarService
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewWebinarHandler(svc *webinarapp.WebinarService, rdb *redis.Client, logger *logrus.Logger) *WebinarHandler {
	return &WebinarHandler{Svc: svc, Redis: rdb, Logger: logger}
}

type organizeRequest struct {
	Title     string    `json:"title" binding:"required"`
	Seats     int       `json:"seats" binding:"required,gt=0"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type changeSeatsRequest struct {
	Seats int `json:"seats" binding:"required,gt=0"`
}

type webinarView struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Seats       int       `json:"seats"`
	CoverURL    string    `json:"cover_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewFrom(w *entity.Webinar) webinarView {
	return webinarView{
		ID:          w.ID,
		OrganizerID: w.OrganizerID,
		Title:       w.Title,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Seats:       w.Seats,
		CoverURL:    w.CoverURL,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func webinarCacheKey(id string) string {
	return "webinar:" + id
}

// Organize handles POST /webinars.
func (h *WebinarHandler) Organize(c *gin.Context) {
	var req organizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.OrganizeWebinar(c.Request.Context(), webinarapp.OrganizeWebinarCommand{
		UserID:    c.GetString("userID"),
		Title:     req.Title,
		Seats:     req.Seats,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "webinar organized", nil)
}

// ChangeSeats handles POST /webinars/:id/seats.
func (h *WebinarHandler) ChangeSeats(c *gin.Context) {
	var req changeSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	id := c.Param("id")
	err := h.Svc.ChangeSeats(c.Request.Context(), webinarapp.ChangeSeatsCommand{
		User:      entity.User{ID: c.GetString("userID"), Email: c.GetString("userEmail")},
		WebinarID: id,
		Seats:     req.Seats,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidate(c, id)
	response.Success(c, http.StatusOK, gin.H{"message": "Seats updated"}, "seats updated", nil)
}

// Get handles GET /webinars/:id with a short read-through cache.
func (h *WebinarHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.Redis != nil {
		var cached webinarView
		if ok, err := helpers.RedisGetJSON(ctx, h.Redis, webinarCacheKey(id), &cached); err == nil && ok {
			response.Success(c, http.StatusOK, cached, "webinar", gin.H{"cached": true})
			return
		}
	}

	w, err := h.Svc.GetWebinar(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	view := viewFrom(w)
	if h.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, h.Redis, webinarCacheKey(id), view, webinarCacheTTL); err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("webinar_id", id).Warn("cache write failed")
		}
	}
	response.Success(c, http.StatusOK, view, "webinar", nil)
}

// Search handles GET /webinars/search?q=&size=.
func (h *WebinarHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	hits, err := h.Svc.SearchWebinars(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// UploadCover handles POST /webinars/:id/cover (multipart form, field "cover").
func (h *WebinarHandler) UploadCover(c *gin.Context) {
	fh, err := c.FormFile("cover")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing cover file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable cover file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	id := c.Param("id")
	user := entity.User{ID: c.GetString("userID"), Email: c.GetString("userEmail")}
	url, err := h.Svc.UploadCover(c.Request.Context(), user, id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidate(c, id)
	response.Success(c, http.StatusOK, gin.H{"cover_url": url}, "cover updated", nil)
}

func (h *WebinarHandler) invalidate(c *gin.Context, id string) {
	if h.Redis == nil {
		return
	}
	if err := helpers.RedisDel(c.Request.Context(), h.Redis, webinarCacheKey(id)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("webinar_id", id).Warn("cache invalidation failed")
	}
}

// fail maps domain failures onto HTTP statuses: absence is 404, a foreign
// webinar is 401, every validation failure is 400.
func (h *WebinarHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, webinarapp.ErrWebinarNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, webinarapp.ErrNotOrganizer):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, webinarapp.ErrReduceSeatsNotAllowed),
		errors.Is(err, webinarapp.ErrTooManySeats),
		errors.Is(err, webinarapp.ErrTooSoon),
		errors.Is(err, webinarapp.ErrInvalidWebinar):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("webinar request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "an error occurred", nil)
	}
}
