package insight

import "context"

// TendencyRepository reads precomputed behavioral notes from the
// player-insights store.
type TendencyRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Tendency, error)
}
