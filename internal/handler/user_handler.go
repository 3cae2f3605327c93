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

// UserHandler wires user HTTP routes.
type UserHandler struct {
	service  service.UserService
	overview service.OverviewService
	activity service.ActivityService
	logger   zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, overview service.OverviewService, activity service.ActivityService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		overview: overview,
		activity: activity,
		logger:   logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Post("/auth", h.auth)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/overview", h.getOverview)
	router.Get("/:id/activity", h.listActivity)
}

func (h *UserHandler) auth(c *fiber.Ctx) error {
	var payload dto.AuthRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Auth(c.Context(), payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		}
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, user)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "User not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, user)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, users)
}

func (h *UserHandler) getOverview(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	overview, err := h.overview.GetOverview(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "User not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, overview)
}

func (h *UserHandler) listActivity(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	limit := c.QueryInt("limit")
	entries, err := h.activity.ListForUser(c.Context(), id, limit)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, entries)
}

func (h *UserHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
