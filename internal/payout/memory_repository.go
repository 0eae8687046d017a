package payout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records []Payout
}

// NewMemoryRepository builds an in-memory payout store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) CreateAll(_ context.Context, payouts []Payout) ([]Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]Payout, 0, len(payouts))
	now := time.Now().UTC()
	for _, p := range payouts {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		created = append(created, p)
	}
	r.records = append(r.records, created...)
	return created, nil
}

func (r *memoryRepository) ListByInvestment(_ context.Context, investmentID string) ([]Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Payout
	for _, p := range r.records {
		if p.InvestmentID == investmentID {
			out = append(out, p)
		}
	}
	return out, nil
}
