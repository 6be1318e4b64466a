package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webinarhq/webinar-platform/internal/container"
	handlers "github.com/webinarhq/webinar-platform/internal/interface/http"
	"github.com/webinarhq/webinar-platform/internal/interface/middleware"
	"github.com/webinarhq/webinar-platform/pkg/helpers"
)

// WebinarModule wires the scheduling routes.
// Public: GET /api/webinars/:id, GET /api/webinars/search
// Protected: POST /api/webinars, POST /api/webinars/:id/seats,
// POST /api/webinars/:id/cover

type WebinarModule struct {
	Handler *handlers.WebinarHandler
	JWT     *helpers.JWTManager
}

func NewWebinarModule(h *handlers.WebinarHandler, jwt *helpers.JWTManager) *WebinarModule {
	return &WebinarModule{Handler: h, JWT: jwt}
}

func (m *WebinarModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/webinars/search", readLimiter, m.Handler.Search)
	rg.GET("/webinars/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/webinars", m.Handler.Organize)
		auth.POST("/webinars/:id/seats", m.Handler.ChangeSeats)
		auth.POST("/webinars/:id/cover", m.Handler.UploadCover)
	}
}
