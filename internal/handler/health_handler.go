package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tesuto-go-api/internal/config"
	"github.com/noah-isme/tesuto-go-api/internal/utils"
)

// InfoResponse is the payload returned on the service root.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse is the payload returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Info returns a handler reporting service metadata.
func Info(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, InfoResponse{
			Name:    cfg.AppName,
			Version: cfg.AppVersion,
			Status:  "running",
		})
	}
}

// HealthCheck returns a handler that reports application health.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
		})
	}
}
