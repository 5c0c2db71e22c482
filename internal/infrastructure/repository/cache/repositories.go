package cache

import (
	"context"

	"github.com/birdielabs/caddie-api/internal/domain/insight"
	basecache "github.com/birdielabs/caddie-api/internal/platform/cache"
)

// TendencyRepository caches the per-user tendency list. Tendencies are
// recomputed offline, so a short TTL is enough to keep reads cheap.
type TendencyRepository struct {
	next  insight.TendencyRepository
	cache *basecache.Store
}

func NewTendencyRepository(next insight.TendencyRepository, cache *basecache.Store) *TendencyRepository {
	return &TendencyRepository{next: next, cache: cache}
}

func (r *TendencyRepository) ListByUser(ctx context.Context, userID string) ([]insight.Tendency, error) {
	key := "tendency:list:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]insight.Tendency(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]insight.Tendency)
	return append([]insight.Tendency(nil), items...), nil
}
