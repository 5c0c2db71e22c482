package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/insight"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
	"github.com/birdielabs/caddie-api/internal/domain/stats"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
)

// ClubStatsView pairs the aggregated numbers with the optional bias note
// surfaced next to them.
type ClubStatsView struct {
	Stats        stats.ClubStats
	TendencyNote string
	HasTendency  bool
}

type ClubStatsService struct {
	shotRepo     shot.Repository
	tendencyRepo insight.TendencyRepository
	statsCache   *cache.Store
}

func NewClubStatsService(
	shotRepo shot.Repository,
	tendencyRepo insight.TendencyRepository,
	statsCache *cache.Store,
) *ClubStatsService {
	return &ClubStatsService{
		shotRepo:     shotRepo,
		tendencyRepo: tendencyRepo,
		statsCache:   statsCache,
	}
}

// GetClubStats recomputes the per-club analytics view from the user's shot
// history. Results are cached briefly; the cache is invalidated by key when
// a shot lands for the club.
func (s *ClubStatsService) GetClubStats(ctx context.Context, userID, rawClub string) (ClubStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "ClubStatsService.GetClubStats")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ClubStatsView{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	c, ok := club.Parse(rawClub)
	if !ok {
		return ClubStatsView{}, fmt.Errorf("%w: unknown club %q", ErrInvalidInput, rawClub)
	}

	key := clubStatsCacheKey(userID, c)
	value, err := s.statsCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeView(ctx, userID, c)
	})
	if err != nil {
		return ClubStatsView{}, err
	}

	view, ok := value.(ClubStatsView)
	if !ok {
		return ClubStatsView{}, fmt.Errorf("unexpected stats cache value %T", value)
	}
	return view, nil
}

// InvalidateClubStats drops the cached view after a new shot for the club.
func (s *ClubStatsService) InvalidateClubStats(ctx context.Context, userID string, c club.Club) {
	s.statsCache.Delete(ctx, clubStatsCacheKey(userID, c))
}

func (s *ClubStatsService) computeView(ctx context.Context, userID string, c club.Club) (ClubStatsView, error) {
	history, err := s.shotRepo.ListByUserAndClub(ctx, userID, c)
	if err != nil {
		return ClubStatsView{}, fmt.Errorf("list club shots: %w", err)
	}

	view := ClubStatsView{Stats: stats.Aggregate(c, history)}
	if view.Stats.Locked {
		return view, nil
	}

	tendencies, err := s.tendencyRepo.ListByUser(ctx, userID)
	if err != nil {
		return ClubStatsView{}, fmt.Errorf("list tendencies: %w", err)
	}
	view.TendencyNote, view.HasTendency = insight.SelectClubTendency(tendencies, c)
	return view, nil
}

func clubStatsCacheKey(userID string, c club.Club) string {
	return "clubstats:" + userID + ":" + string(c)
}
