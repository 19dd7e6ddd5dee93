package repository

import (
	"sync"

	"sentinel-backend/internal/domain"
)

// InMemoryResultRepository keeps the latest scan cycle's decisions for the
// HTTP and websocket delivery layers.
type InMemoryResultRepository struct {
	results []domain.DecisionContext
	mu      sync.RWMutex
}

func NewInMemoryResultRepository() *InMemoryResultRepository {
	return &InMemoryResultRepository{}
}

// SaveResults replaces the whole list; each cycle scans everything at once.
func (r *InMemoryResultRepository) SaveResults(results []domain.DecisionContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = results
}

func (r *InMemoryResultRepository) GetResults() []domain.DecisionContext {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DecisionContext, len(r.results))
	copy(out, r.results)
	return out
}
