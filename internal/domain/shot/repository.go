package shot

import (
	"context"

	"github.com/birdielabs/caddie-api/internal/domain/club"
)

type Repository interface {
	Append(ctx context.Context, item Shot) error
	ListByRound(ctx context.Context, roundID string) ([]Shot, error)
	// ListByUserAndClub returns the user's full history for one club in
	// chronological order.
	ListByUserAndClub(ctx context.Context, userID string, c club.Club) ([]Shot, error)
}
