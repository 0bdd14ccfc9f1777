package repositories

import (
	"context"
	"fmt"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/database"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
)

// GORMReservationRepository is a GORM implementation of ReservationRepository.
type GORMReservationRepository struct {
	pool *database.Pool
}

// NewGORMReservationRepository creates a new instance of GORMReservationRepository.
func NewGORMReservationRepository(pool *database.Pool) *GORMReservationRepository {
	return &GORMReservationRepository{
		pool: pool,
	}
}

// GetAll retrieves all reservations.
func (r *GORMReservationRepository) GetAll(ctx context.Context) ([]models.Reservation, error) {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	reservations := []models.Reservation{}
	if err := db.Order("id").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to get all reservations: %w", err)
	}
	return reservations, nil
}

// Create inserts a new reservation. RsvNo must already be set.
func (r *GORMReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := db.Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}
