package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request. Status mirrors the HTTP
// status code.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Status: status, Message: message})
}

// ErrorHandler renders any error that reaches it. *fiber.Error keeps its code
// and message; everything else becomes a 500 carrying the underlying detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeError(c, fe.Code, fe.Message)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal Server Error",
		Error:   err.Error(),
	})
}

func badRequest(err error) error {
	log.Printf("Error parsing request body: %v", err)
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
}
