package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler answers liveness probes. It never touches the database.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Operations implements OperationSet.
func (h *HealthHandler) Operations() map[string]Operation {
	return map[string]Operation{
		"test": {Name: "health-check", Method: fiber.MethodGet, Handle: ignoreSecondary(h.HandleHealth)},
	}
}

// HandleHealth returns a static liveness payload.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "The server is running perfectly!",
	})
}
