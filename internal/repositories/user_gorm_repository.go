package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/database"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	pool *database.Pool
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(pool *database.Pool) *GORMUserRepository {
	return &GORMUserRepository{
		pool: pool,
	}
}

// Create inserts a new user. A duplicate username surfaces as the driver's
// unique-constraint error.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var user models.User
	if err := db.Where("username = ?", username).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// List returns every user.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	users := []models.User{}
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
