package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tesuto-go-api/internal/service"
	"github.com/noah-isme/tesuto-go-api/internal/utils"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

// GeneratorHandler wires the homework generation route.
type GeneratorHandler struct {
	service service.GeneratorService
	logger  zerolog.Logger
}

// NewGeneratorHandler constructs the handler.
func NewGeneratorHandler(service service.GeneratorService, logger zerolog.Logger) *GeneratorHandler {
	return &GeneratorHandler{
		service: service,
		logger:  logger.With().Str("component", "generator_handler").Logger(),
	}
}

// Register attaches the generation endpoint to the router group.
func (h *GeneratorHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
}

func (h *GeneratorHandler) generate(c *fiber.Ctx) error {
	var payload dto.GenerateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Generate(c.Context(), payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrors):
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		case errors.Is(err, service.ErrGenerationTimeout):
			return utils.SendError(c, fiber.StatusGatewayTimeout, "generation timed out")
		case errors.Is(err, service.ErrGenerationFailed):
			return utils.SendError(c, fiber.StatusBadGateway, "generation failed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendJSON(c, result)
}
