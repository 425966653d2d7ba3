package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nestjs-store-microservices/auth-ms/internal/common"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs
// without a database. It mirrors the storage-layer guarantees of the
// postgres implementation: atomic email uniqueness on Create and
// common.ErrNotFound on misses.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateUser
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()

	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *user
	return &out, nil
}

// Len reports the number of stored users; handy in tests asserting that a
// failed registration did not mutate the store.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
