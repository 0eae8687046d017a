package farm

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	farms   map[string]Farm
	batches map[string]Batch
}

// NewMemoryRepository builds an in-memory farm store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		farms:   make(map[string]Farm),
		batches: make(map[string]Batch),
	}
}

func (r *memoryRepository) CreateFarm(_ context.Context, farm Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.farms[farm.ID] = farm
	return nil
}

func (r *memoryRepository) GetFarm(_ context.Context, id string) (Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.farms[id]
	if !ok {
		return Farm{}, ErrFarmNotFound
	}
	return f, nil
}

func (r *memoryRepository) ListFarms(_ context.Context) ([]Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Farm, 0, len(r.farms))
	for _, f := range r.farms {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) CreateBatch(_ context.Context, batch Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.farms[batch.FarmID]; !ok {
		return ErrFarmNotFound
	}
	r.batches[batch.ID] = batch
	return nil
}

func (r *memoryRepository) GetBatch(_ context.Context, id string) (Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.batches[id]
	if !ok {
		return Batch{}, ErrBatchNotFound
	}
	return b, nil
}

func (r *memoryRepository) ListBatches(_ context.Context) ([]Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(nil), nil
}

func (r *memoryRepository) ListBatchesByStatus(_ context.Context, statuses ...string) ([]Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	return r.collect(allowed), nil
}

func (r *memoryRepository) collect(allowed map[string]bool) []Batch {
	out := make([]Batch, 0, len(r.batches))
	for _, b := range r.batches {
		if allowed != nil && !allowed[b.Status] {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryRepository) UpdateBatchStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}
	b.Status = status
	r.batches[id] = b
	return nil
}

func (r *memoryRepository) AddUnitsPlaced(_ context.Context, id string, units int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}
	b.UnitsPlaced += units
	r.batches[id] = b
	return nil
}

func (r *memoryRepository) CountBatchesByType(_ context.Context, productType string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, b := range r.batches {
		if b.ProductType == productType {
			count++
		}
	}
	return count, nil
}
