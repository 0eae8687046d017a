package investment

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu          sync.RWMutex
	investments map[string]Investment
	order       []string
}

// NewMemoryRepository builds an in-memory investment store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{investments: make(map[string]Investment)}
}

func (r *memoryRepository) Create(_ context.Context, inv Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.investments[inv.ID] = inv
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.investments[id]
	if !ok {
		return Investment{}, ErrNotFound
	}
	return inv, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Investment
	for _, id := range r.order {
		if inv := r.investments[id]; inv.UserID == userID {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) ListByBatch(_ context.Context, batchID string) ([]Investment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Investment
	for _, id := range r.order {
		if inv := r.investments[id]; inv.BatchID == batchID {
			out = append(out, inv)
		}
	}
	return out, nil
}
