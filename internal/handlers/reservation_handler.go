package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	service *services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		service: service,
	}
}

// Operations implements OperationSet.
func (h *ReservationHandler) Operations() map[string]Operation {
	return map[string]Operation{
		"reserve-item": {Name: "reserve-item", Method: fiber.MethodPost, Handle: ignoreSecondary(h.HandleReserveItem)},
		"reservations": {Name: "list-reservations", Method: fiber.MethodGet, Handle: ignoreSecondary(h.HandleGetReservations)},
	}
}

// HandleReserveItem records a new reservation. It answers 200, not 201.
func (h *ReservationHandler) HandleReserveItem(c *fiber.Ctx) error {
	var reservation models.Reservation
	if err := c.BodyParser(&reservation); err != nil {
		return badRequest(err)
	}

	if err := h.service.Reserve(c.UserContext(), &reservation); err != nil {
		log.Printf("Error creating reservation for %s: %v", reservation.ReservedBy, err)
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    reservation,
		"status":  "success",
		"message": "new reservation made successfully.",
	})
}

// HandleGetReservations lists every reservation.
func (h *ReservationHandler) HandleGetReservations(c *fiber.Ctx) error {
	reservations, err := h.service.ListReservations(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reservations)
}
