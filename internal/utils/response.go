package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the structure returned on any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSON sends the payload as-is with a 200 status. Successful responses
// carry the entity directly, without an envelope.
func SendJSON(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
