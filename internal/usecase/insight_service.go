package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/birdielabs/caddie-api/internal/domain/insight"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
)

const (
	defaultBackfillWorkers = 4
	maxBackfillWorkers     = 32
)

type BackfillRecapsInput struct {
	UserIDs    []string
	MaxWorkers int
}

type BackfillRecapsResult struct {
	RoundCount  int   `json:"round_count"`
	WarmedCount int   `json:"warmed_count"`
	FailedCount int   `json:"failed_count"`
	WorkerCount int   `json:"worker_count"`
	DurationMs  int64 `json:"duration_ms"`
}

type InsightService struct {
	roundRepo  round.Repository
	shotRepo   shot.Repository
	recapCache *cache.Store
	now        func() time.Time
}

func NewInsightService(roundRepo round.Repository, shotRepo shot.Repository, recapCache *cache.Store) *InsightService {
	return &InsightService{
		roundRepo:  roundRepo,
		shotRepo:   shotRepo,
		recapCache: recapCache,
		now:        time.Now,
	}
}

// GetRoundInsights recomputes the recap for a completed round. Nothing is
// persisted; the cache only smooths repeated reads.
func (s *InsightService) GetRoundInsights(ctx context.Context, roundID, userID string) ([]insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "InsightService.GetRoundInsights")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	userID = strings.TrimSpace(userID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: round %s", ErrNotFound, roundID)
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("%w: round belongs to another user", ErrUnauthorized)
	}
	if !item.Completed() {
		return nil, fmt.Errorf("%w: round is not completed yet", ErrInvalidInput)
	}

	value, err := s.recapCache.GetOrLoad(ctx, recapCacheKey(roundID), func(ctx context.Context) (any, error) {
		return s.computeRecap(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]insight.Insight)
	if !ok {
		return nil, fmt.Errorf("unexpected recap cache value %T", value)
	}
	return items, nil
}

// BackfillRecaps recomputes recaps for every completed round of the given
// users and warms the recap cache. Used by the internal maintenance job.
func (s *InsightService) BackfillRecaps(ctx context.Context, input BackfillRecapsInput) (BackfillRecapsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "InsightService.BackfillRecaps")
	defer span.End()

	if len(input.UserIDs) == 0 {
		return BackfillRecapsResult{}, fmt.Errorf("%w: user_ids are required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount < 1 {
		workerCount = defaultBackfillWorkers
	}
	if workerCount > maxBackfillWorkers {
		workerCount = maxBackfillWorkers
	}

	rounds := make([]round.Round, 0)
	for _, userID := range input.UserIDs {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		items, err := s.roundRepo.ListCompletedByUser(ctx, userID)
		if err != nil {
			return BackfillRecapsResult{}, fmt.Errorf("list completed rounds for %s: %w", userID, err)
		}
		rounds = append(rounds, items...)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillRecapsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	start := s.now()
	result := BackfillRecapsResult{RoundCount: len(rounds), WorkerCount: workerCount}

	var mu sync.Mutex
	var workers sync.WaitGroup
	for _, item := range rounds {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			recap, recapErr := s.computeRecap(ctx, item)
			mu.Lock()
			defer mu.Unlock()
			if recapErr != nil {
				result.FailedCount++
				return
			}
			s.recapCache.Set(ctx, recapCacheKey(item.ID), recap)
			result.WarmedCount++
		}); err != nil {
			workers.Done()
			mu.Lock()
			result.FailedCount++
			mu.Unlock()
		}
	}
	workers.Wait()

	result.DurationMs = s.now().Sub(start).Milliseconds()
	return result, nil
}

func (s *InsightService) computeRecap(ctx context.Context, item round.Round) ([]insight.Insight, error) {
	shots, err := s.shotRepo.ListByRound(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list round shots: %w", err)
	}
	return insight.GenerateRound(item.Holes, shots), nil
}

func recapCacheKey(roundID string) string {
	return "recap:" + roundID
}
