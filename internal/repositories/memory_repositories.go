package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users  map[uint]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

// Create adds a new user, rejecting duplicate usernames like the unique index does.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("failed to create user: duplicate username %q", user.Username)
		}
	}
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns the user with the given username.
func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
}

// List returns all users ordered by id.
func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// MemoryItemRepository is an in-memory implementation of ItemRepository.
type MemoryItemRepository struct {
	items  map[uint]models.Item
	nextID uint
	mu     sync.RWMutex
}

// NewMemoryItemRepository creates a new instance of MemoryItemRepository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items:  make(map[uint]models.Item),
		nextID: 1,
	}
}

// GetAll returns all items ordered by id.
func (r *MemoryItemRepository) GetAll(_ context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

// GetByStoreNo returns the lowest-id item with the given store number.
func (r *MemoryItemRepository) GetByStoreNo(_ context.Context, storeNo string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.sorted() {
		if item.StoreNo == storeNo {
			found := item
			return &found, nil
		}
	}
	return nil, fmt.Errorf("item with store_no %s: %w", storeNo, ErrNotFound)
}

// Create adds a new item and assigns its id.
func (r *MemoryItemRepository) Create(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.items[item.ID] = *item
	return nil
}

// Update overwrites the mutable fields of an existing item.
func (r *MemoryItemRepository) Update(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %d: %w", item.ID, ErrNotFound)
	}
	existing.Name = item.Name
	existing.Description = item.Description
	existing.Quantity = item.Quantity
	existing.Category = item.Category
	existing.Gallery = item.Gallery
	existing.Views = item.Views
	r.items[item.ID] = existing
	*item = existing
	return nil
}

// Delete removes an item by its id if present.
func (r *MemoryItemRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *MemoryItemRepository) sorted() []models.Item {
	items := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// MemoryReservationRepository is an in-memory implementation of ReservationRepository.
type MemoryReservationRepository struct {
	reservations []models.Reservation
	mu           sync.RWMutex
}

// NewMemoryReservationRepository creates a new instance of MemoryReservationRepository.
func NewMemoryReservationRepository() *MemoryReservationRepository {
	return &MemoryReservationRepository{}
}

// GetAll returns all reservations in insertion order.
func (r *MemoryReservationRepository) GetAll(_ context.Context) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Reservation, len(r.reservations))
	copy(out, r.reservations)
	return out, nil
}

// Create appends a reservation, enforcing rsv_no uniqueness.
func (r *MemoryReservationRepository) Create(_ context.Context, reservation *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reservations {
		if existing.RsvNo == reservation.RsvNo {
			return fmt.Errorf("failed to create reservation: duplicate rsv_no %q", reservation.RsvNo)
		}
	}
	reservation.ID = uint(len(r.reservations) + 1)
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now()
	}
	r.reservations = append(r.reservations, *reservation)
	return nil
}
