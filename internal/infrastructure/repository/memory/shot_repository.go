package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
)

type ShotRepository struct {
	mu    sync.RWMutex
	items []shot.Shot
}

func NewShotRepository() *ShotRepository {
	return &ShotRepository{}
}

func (r *ShotRepository) Append(_ context.Context, item shot.Shot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, cloneShot(item))
	return nil
}

func (r *ShotRepository) ListByRound(_ context.Context, roundID string) ([]shot.Shot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shot.Shot, 0)
	for _, item := range r.items {
		if item.RoundID == roundID {
			out = append(out, cloneShot(item))
		}
	}
	sortShotsChronological(out)
	return out, nil
}

func (r *ShotRepository) ListByUserAndClub(_ context.Context, userID string, c club.Club) ([]shot.Shot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shot.Shot, 0)
	for _, item := range r.items {
		if item.UserID == userID && item.Club == c {
			out = append(out, cloneShot(item))
		}
	}
	sortShotsChronological(out)
	return out, nil
}

func sortShotsChronological(items []shot.Shot) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ShotNumber < items[j].ShotNumber
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func cloneShot(item shot.Shot) shot.Shot {
	copied := item
	copied.AvoidZones = append([]shot.HazardZone(nil), item.AvoidZones...)
	copied.Warnings = append([]string(nil), item.Warnings...)
	if item.SafeZone != nil {
		safe := *item.SafeZone
		copied.SafeZone = &safe
	}
	copied.EffectiveDistance = cloneFloat(item.EffectiveDistance)
	copied.DistanceActual = cloneFloat(item.DistanceActual)
	copied.DistanceOffline = cloneFloat(item.DistanceOffline)
	copied.DistanceToTarget = cloneFloat(item.DistanceToTarget)
	return copied
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
