package storage

import (
	"context"
	"sync"

	"foodie-storefront/menu-svc/internal/domain"
)

// MemoryRepository keeps the menu in process memory. Contents are lost on
// restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.MenuItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.MenuItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		item := r.items[i]
		return &item, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *MemoryRepository) Upsert(ctx context.Context, item *domain.MenuItem) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(item.ID); i >= 0 {
		r.items[i] = *item
		return false, nil
	}
	r.items = append(r.items, *item)
	return true, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return 1, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *MemoryRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
