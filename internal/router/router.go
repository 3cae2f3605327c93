package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tesuto-go-api/internal/config"
	"github.com/noah-isme/tesuto-go-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler       *handler.UserHandler
	SubjectHandler    *handler.SubjectHandler
	AssignmentHandler *handler.AssignmentHandler
	GeneratorHandler  *handler.GeneratorHandler
	SeedHandler       *handler.SeedHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", handler.Info(cfg))
	app.Get("/health", handler.HealthCheck())

	if deps.UserHandler != nil {
		deps.UserHandler.Register(app.Group("/users"))
	}

	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(app.Group("/subjects"))
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(app.Group("/assignments"))
	}

	if deps.GeneratorHandler != nil {
		deps.GeneratorHandler.Register(app.Group("/generate"))
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(app.Group("/seed"))
	}
}
