package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/internal/service"
	"github.com/noah-isme/tesuto-go-api/internal/utils"
	"github.com/noah-isme/tesuto-go-api/pkg/dto"
)

// SubjectHandler wires subject and topic HTTP routes.
type SubjectHandler struct {
	service service.SubjectService
	logger  zerolog.Logger
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(service service.SubjectService, logger zerolog.Logger) *SubjectHandler {
	return &SubjectHandler{
		service: service,
		logger:  logger.With().Str("component", "subject_handler").Logger(),
	}
}

// Register attaches subject endpoints to the router group.
func (h *SubjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/topics", h.addTopic)
	router.Delete("/:id/topics/:topicId", h.deleteTopic)
}

func (h *SubjectHandler) list(c *fiber.Ctx) error {
	filter := repository.SubjectFilter{TutorID: c.Query("tutorId")}

	subjects, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, subjects)
}

func (h *SubjectHandler) get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	subject, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Subject not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, subject)
}

func (h *SubjectHandler) create(c *fiber.Ctx) error {
	var payload dto.SubjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subject, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendJSON(c, subject)
}

func (h *SubjectHandler) update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subject, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendJSON(c, subject)
}

func (h *SubjectHandler) delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Subject not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, dto.DeleteResponse{Success: true})
}

func (h *SubjectHandler) addTopic(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TopicCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	topic, err := h.service.AddTopic(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendJSON(c, topic)
}

func (h *SubjectHandler) deleteTopic(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	topicID, err := requireParam(c, "topicId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteTopic(c.Context(), id, topicID); err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Topic not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendJSON(c, dto.DeleteResponse{Success: true})
}

func (h *SubjectHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Subject not found")
	case errors.Is(err, service.ErrTopicNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Topic not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *SubjectHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
