package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/database"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	pool *database.Pool
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(pool *database.Pool) *GORMItemRepository {
	return &GORMItemRepository{
		pool: pool,
	}
}

// GetAll retrieves all items.
func (r *GORMItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	items := []models.Item{}
	if err := db.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByStoreNo retrieves the first item carrying the given store number.
func (r *GORMItemRepository) GetByStoreNo(ctx context.Context, storeNo string) (*models.Item, error) {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var item models.Item
	if err := db.Where("store_no = ?", storeNo).Order("id").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with store_no %s: %w", storeNo, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by store_no %s: %w", storeNo, err)
	}
	return &item, nil
}

// Create inserts a new item.
func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) error {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update sets every mutable column, including zero values.
func (r *GORMItemRepository) Update(ctx context.Context, item *models.Item) error {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	res := db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":        item.Name,
		"description": item.Description,
		"quantity":    item.Quantity,
		"category":    item.Category,
		"gallery":     item.Gallery,
		"views":       item.Views,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %d: %w", item.ID, ErrNotFound)
	}

	if err := db.First(item, item.ID).Error; err != nil {
		return fmt.Errorf("failed to reload item %d: %w", item.ID, err)
	}
	return nil
}

// Delete deletes an item by its ID.
func (r *GORMItemRepository) Delete(ctx context.Context, id uint) error {
	db, release, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := db.Delete(&models.Item{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
