package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homestay/rental-service/internal/api/http/handlers"
	"github.com/homestay/rental-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	LoginLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
		app.Get("/health/metrics", cfg.Health.Metrics)
	}

	limiter := cfg.LoginLimiter
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", limiter, cfg.Auth.Login)
	authGroup.Get("/profile", auth.RequireBearer(), cfg.Auth.Profile)
	authGroup.Put("/profile", auth.RequireBearer(), cfg.Auth.UpdateProfile)
}
