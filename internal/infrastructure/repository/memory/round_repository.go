package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/round"
)

type RoundRepository struct {
	mu    sync.RWMutex
	items map[string]round.Round
}

func NewRoundRepository() *RoundRepository {
	return &RoundRepository{items: make(map[string]round.Round)}
}

func (r *RoundRepository) Create(_ context.Context, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneRound(item)
	return nil
}

func (r *RoundRepository) GetByID(_ context.Context, id string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return round.Round{}, false, nil
	}
	return cloneRound(item), true, nil
}

func (r *RoundRepository) UpsertHoleScore(_ context.Context, roundID string, score round.HoleScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[roundID]
	if !ok {
		return nil
	}

	replaced := false
	for i, existing := range item.Holes {
		if existing.Hole == score.Hole {
			item.Holes[i] = score
			replaced = true
			break
		}
	}
	if !replaced {
		item.Holes = append(item.Holes, score)
		sort.Slice(item.Holes, func(i, j int) bool {
			return item.Holes[i].Hole < item.Holes[j].Hole
		})
	}

	r.items[roundID] = item
	return nil
}

func (r *RoundRepository) MarkCompleted(_ context.Context, roundID string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[roundID]
	if !ok {
		return nil
	}
	item.CompletedAt = &completedAt
	r.items[roundID] = item
	return nil
}

func (r *RoundRepository) ListCompletedByUser(_ context.Context, userID string) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0)
	for _, item := range r.items {
		if item.UserID == userID && item.CompletedAt != nil {
			out = append(out, cloneRound(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

func cloneRound(item round.Round) round.Round {
	copied := item
	copied.Holes = make([]round.HoleScore, len(item.Holes))
	for i, hole := range item.Holes {
		copied.Holes[i] = hole
		if hole.GIR != nil {
			gir := *hole.GIR
			copied.Holes[i].GIR = &gir
		}
	}
	if item.CompletedAt != nil {
		completedAt := *item.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return copied
}
