package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/api/http/handlers"
	"github.com/spec-kit/interview-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Interviews     *handlers.InterviewsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Query routes use optional auth so an
// unauthenticated caller degrades to empty results; mutations require a
// principal up front.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/sync", cfg.Users.Sync)
	users.Post("/onboard", cfg.Users.Onboard)
	users.Get("/", cfg.Users.List)
	users.Get("/:externalId", cfg.Users.GetByExternalID)

	interviews := app.Group("/interviews", cfg.AuthMiddleware.Optional)
	interviews.Get("/", cfg.Interviews.List)
	interviews.Get("/mine", cfg.Interviews.ListMine)
	interviews.Get("/grouped", cfg.Interviews.ListGrouped)
	interviews.Get("/session/:token", cfg.Interviews.GetBySessionToken)

	mutations := interviews.Group("", auth.RequireAuthenticated())
	mutations.Post("/", cfg.Interviews.Create)
	mutations.Post("/:id/start", cfg.Interviews.Start)
	mutations.Patch("/:id/status", cfg.Interviews.UpdateStatus)
	mutations.Delete("/:id", cfg.Interviews.Delete)
}
