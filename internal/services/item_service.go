package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/repositories"
)

// ErrItemNotFound is returned when no item matches the given key.
var ErrItemNotFound = errors.New("item not found")

// ItemService handles business logic related to store items.
type ItemService struct {
	repo       repositories.ItemRepository
	batchLimit int
}

// NewItemService creates a new ItemService.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{
		repo: repo,
	}
}

// WithBatchLimit caps how many inserts of one CreateItems call run at once.
// A limit below 1 leaves the batch unbounded.
func (s *ItemService) WithBatchLimit(n int) *ItemService {
	s.batchLimit = n
	return s
}

// ListItems retrieves all items.
func (s *ItemService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.repo.GetAll(ctx)
}

// GetByStoreNo retrieves the item registered under storeNo.
func (s *ItemService) GetByStoreNo(ctx context.Context, storeNo string) (*models.Item, error) {
	item, err := s.repo.GetByStoreNo(ctx, storeNo)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("store_no %s: %w", storeNo, ErrItemNotFound)
	}
	return item, err
}

// CreateItem stores a single item.
func (s *ItemService) CreateItem(ctx context.Context, item *models.Item) error {
	item.ID = 0
	return s.repo.Create(ctx, item)
}

// CreateItems inserts every item concurrently and waits for all of them.
//
// The batch is not a transaction. If any insert fails the whole call fails,
// but inserts that already completed stay committed. On success the created
// items are returned in input order. At most batchLimit inserts are in flight.
func (s *ItemService) CreateItems(ctx context.Context, items []models.Item) ([]models.Item, error) {
	created := make([]models.Item, len(items))
	g, gctx := errgroup.WithContext(ctx)
	if s.batchLimit > 0 {
		g.SetLimit(s.batchLimit)
	}

	for i := range items {
		i := i
		item := items[i]
		item.ID = 0
		g.Go(func() error {
			if err := s.repo.Create(gctx, &item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			created[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to create items: %w", err)
	}
	return created, nil
}

// UpdateItem overwrites every mutable field of the item keyed by item.ID.
func (s *ItemService) UpdateItem(ctx context.Context, item *models.Item) error {
	err := s.repo.Update(ctx, item)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("id %d: %w", item.ID, ErrItemNotFound)
	}
	return err
}

// DeleteItem deletes the item with the given id. Missing ids are not an error.
func (s *ItemService) DeleteItem(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
