package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/config"
	"github.com/noah-isme/elitebuilders-client/internal/handler"
	"github.com/noah-isme/elitebuilders-client/internal/observability"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	ChallengeHandler    *handler.ChallengeHandler
	SubmissionHandler   *handler.SubmissionHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(observability.ScrapeHandler()))

	authMiddleware := deps.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = handler.RequireBearer()
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"), authMiddleware)
	}

	// The catalogue is public.
	if deps.ChallengeHandler != nil {
		deps.ChallengeHandler.Register(api.Group("/challenges"))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", authMiddleware))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", authMiddleware))
	}
}

// NewFixtureApp serves the given collaborators over the backend REST contract.
func NewFixtureApp(cfg config.Config, collaborators service.Collaborators, validate *validator.Validate, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ServerHeader:          cfg.AppName,
		DisableStartupMessage: true,
	})

	Register(app, cfg, Dependencies{
		AuthHandler:         handler.NewAuthHandler(collaborators.Auth, validate, logger),
		ChallengeHandler:    handler.NewChallengeHandler(collaborators.Challenges, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(collaborators.Submissions, validate, logger),
		NotificationHandler: handler.NewNotificationHandler(collaborators.Notifications, logger),
	})

	return app
}
