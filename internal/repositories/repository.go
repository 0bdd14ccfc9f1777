package repositories

import (
	"context"
	"errors"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
)

// ErrNotFound is returned when a lookup or keyed update matches no row.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByStoreNo(ctx context.Context, storeNo string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	// Update overwrites every mutable column of the item keyed by item.ID and
	// reloads it. Returns ErrNotFound when no row has that id.
	Update(ctx context.Context, item *models.Item) error
	// Delete removes the item with the given id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id uint) error
}

// ReservationRepository defines the interface for reservation data access.
type ReservationRepository interface {
	GetAll(ctx context.Context) ([]models.Reservation, error)
	Create(ctx context.Context, reservation *models.Reservation) error
}
