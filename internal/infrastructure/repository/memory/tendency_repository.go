package memory

import (
	"context"
	"sync"

	"github.com/birdielabs/caddie-api/internal/domain/insight"
)

type TendencyRepository struct {
	mu    sync.RWMutex
	items map[string][]insight.Tendency
}

func NewTendencyRepository() *TendencyRepository {
	return &TendencyRepository{items: make(map[string][]insight.Tendency)}
}

func (r *TendencyRepository) ListByUser(_ context.Context, userID string) ([]insight.Tendency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]insight.Tendency(nil), r.items[userID]...), nil
}

func (r *TendencyRepository) ReplaceForUser(_ context.Context, userID string, items []insight.Tendency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[userID] = append([]insight.Tendency(nil), items...)
	return nil
}
