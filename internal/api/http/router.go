package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/bidworks/internal/api/http/handlers"
	"github.com/spec-kit/bidworks/internal/auth"
	"github.com/spec-kit/bidworks/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	WS             *handlers.WSHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	users := v1.Group("/users", cfg.AuthMiddleware.Handle)
	users.Patch("/me", cfg.Users.UpdateMe)
	users.Get("", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.Users.Get)
	users.Delete("/:id", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	ws := v1.Group("/ws", handlers.RequireUpgrade)
	ws.Get("/assistant", cfg.WS.Assistant())
}
