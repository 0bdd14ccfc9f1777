package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/repositories"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error
}

// ReservationCreatedEvent is published after a reservation row is committed.
type ReservationCreatedEvent struct {
	ID         uint   `json:"id"`
	RsvNo      string `json:"rsv_no"`
	ReservedBy string `json:"reserved_by"`
	Email      string `json:"email"`
	StoreNo    string `json:"store_no"`
	Quantity   int    `json:"quantity"`
	Date       string `json:"date"`
}

// ReservationService handles business logic related to reservations.
type ReservationService struct {
	repo      repositories.ReservationRepository
	publisher EventPublisher
	newRsvNo  func() string
}

// NewReservationService creates a new ReservationService. publisher may be nil.
func NewReservationService(repo repositories.ReservationRepository, publisher EventPublisher) *ReservationService {
	return &ReservationService{
		repo:      repo,
		publisher: publisher,
		newRsvNo:  NewReservationNumber,
	}
}

// Reserve assigns a fresh rsv_no, stores the reservation and announces it.
// Publishing is best-effort: a broker failure is logged and does not undo the
// stored reservation.
func (s *ReservationService) Reserve(ctx context.Context, reservation *models.Reservation) error {
	reservation.ID = 0
	reservation.RsvNo = s.newRsvNo()

	if err := s.repo.Create(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.publisher == nil {
		return nil
	}
	event := ReservationCreatedEvent{
		ID:         reservation.ID,
		RsvNo:      reservation.RsvNo,
		ReservedBy: reservation.ReservedBy,
		Email:      reservation.Email,
		StoreNo:    reservation.StoreNo,
		Quantity:   reservation.Quantity,
		Date:       reservation.Date,
	}
	if err := s.publisher.PublishReservationCreated(ctx, event); err != nil {
		log.Printf("Warning: Failed to publish reservation created event for %s: %v", reservation.RsvNo, err)
	}
	return nil
}

// ListReservations retrieves all reservations.
func (s *ReservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return s.repo.GetAll(ctx)
}
