package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the error body shape the EliteBuilders backend uses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SendJSON writes data as the bare JSON body.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(data)
}

// SendNoContent answers with 204 and no body.
func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError sends a detail error body with the given status code.
func SendError(c *fiber.Ctx, status int, detail string) error {
	if detail == "" {
		detail = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Detail: detail})
}
