package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webinarhq/webinar-platform/internal/container"
	handlers "github.com/webinarhq/webinar-platform/internal/interface/http"
	"github.com/webinarhq/webinar-platform/internal/interface/middleware"
	"github.com/webinarhq/webinar-platform/pkg/helpers"
)

// AuthModule wires the upstream identity routes.
// Public: POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/profile

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}
