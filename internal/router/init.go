package router

import (
	webinarapp "github.com/webinarhq/webinar-platform/internal/application"
	"github.com/webinarhq/webinar-platform/internal/clock"
	"github.com/webinarhq/webinar-platform/internal/container"
	"github.com/webinarhq/webinar-platform/internal/idgen"
	pginfra "github.com/webinarhq/webinar-platform/internal/infrastructure/postgres"
	handlers "github.com/webinarhq/webinar-platform/internal/interface/http"
	"github.com/webinarhq/webinar-platform/internal/router/modules"
)

func buildWebinarModule() *modules.WebinarModule {
	cfg := container.GetConfig()

	repo := pginfra.NewWebinarRepository(container.GetPGPool())
	svc := webinarapp.NewWebinarService(
		repo,
		clock.NewSystem(),
		idgen.NewUUID(),
		container.GetLogger(),
		webinarapp.WithSeatCeiling(cfg.SeatCeiling),
		webinarapp.WithMinLeadTime(cfg.MinLeadTime),
		webinarapp.WithIndexing(queueOrNil(), container.GetES(), cfg.ESWebinarsIndex),
		webinarapp.WithCoverStorage(container.GetGCS(), cfg.GCSBucket),
	)
	handler := handlers.NewWebinarHandler(svc, container.GetRedis(), container.GetLogger())
	return modules.NewWebinarModule(handler, container.GetJWT())
}

// queueOrNil keeps the IndexQueue interface nil when no publisher is wired,
// so the service falls back to inline indexing.
func queueOrNil() webinarapp.IndexQueue {
	if p := container.GetIndexQueue(); p != nil {
		return p
	}
	return nil
}

func buildAuthModule() *modules.AuthModule {
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(container.GetPGPool())
	svc := webinarapp.NewAuthService(users, container.GetJWT(), container.GetRedis(), container.GetLogger())
	handler := handlers.NewAuthHandler(svc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	return modules.NewAuthModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildWebinarModule())
	r.Add(modules.NewDebugModule())
}
