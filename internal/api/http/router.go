package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/placement-portal/experience-service/internal/api/http/handlers"
	"github.com/placement-portal/experience-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Experiences    *handlers.ExperiencesHandler
	Discussions    *handlers.DiscussionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	requireUser := cfg.AuthMiddleware.Handle
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/profile", requireUser, cfg.Users.Profile)

	users := api.Group("/users")
	users.Get("/me", requireUser, cfg.Users.Me)
	users.Get("/:id", cfg.Users.GetByID)

	experiences := api.Group("/experiences")
	experiences.Get("/", cfg.Experiences.List)
	experiences.Get("/mine", requireUser, cfg.Experiences.Mine)
	experiences.Get("/:id", cfg.Experiences.Get)
	experiences.Post("/", requireUser, cfg.Experiences.Create)
	experiences.Put("/:id", requireUser, cfg.Experiences.Update)
	experiences.Delete("/:id", requireUser, cfg.Experiences.Delete)

	discussions := api.Group("/discussions")
	discussions.Get("/:company", cfg.Discussions.List)
	discussions.Post("/:company", requireUser, cfg.Discussions.Post)
	discussions.Put("/:id", requireUser, cfg.Discussions.Update)
	discussions.Delete("/:id", requireUser, cfg.Discussions.Delete)
}
