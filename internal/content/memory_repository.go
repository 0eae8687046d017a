package content

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	faqs  []FAQ
	pages map[string]Page
}

// NewMemoryRepository builds an in-memory content store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{pages: make(map[string]Page)}
}

func (r *memoryRepository) ListFAQs(_ context.Context) ([]FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FAQ, len(r.faqs))
	copy(out, r.faqs)
	return out, nil
}

func (r *memoryRepository) CreateFAQ(_ context.Context, faq FAQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faqs = append(r.faqs, faq)
	return nil
}

func (r *memoryRepository) CountFAQs(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.faqs)), nil
}

func (r *memoryRepository) GetPage(_ context.Context, slug string) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[slug]
	if !ok {
		return Page{}, ErrPageNotFound
	}
	return p, nil
}

func (r *memoryRepository) CreatePage(_ context.Context, page Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[page.Slug] = page
	return nil
}

func (r *memoryRepository) CountPages(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.pages)), nil
}
