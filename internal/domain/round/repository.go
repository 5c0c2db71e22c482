package round

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, item Round) error
	GetByID(ctx context.Context, id string) (Round, bool, error)
	UpsertHoleScore(ctx context.Context, roundID string, score HoleScore) error
	MarkCompleted(ctx context.Context, roundID string, completedAt time.Time) error
	ListCompletedByUser(ctx context.Context, userID string) ([]Round, error)
}
