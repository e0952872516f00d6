package handlers

import (
	"log"

	"katalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func sendResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorHandler translates errors escaping a handler into the envelope:
// BadRequestError to 400, NotFoundError to 404, anything else to 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperrors.IsBadRequest(err):
		status = fiber.StatusBadRequest
	case apperrors.IsNotFound(err):
		status = fiber.StatusNotFound
	default:
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		}
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return sendResponse(c, status, err.Error(), nil)
}
