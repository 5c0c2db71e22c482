package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
	qb "github.com/birdielabs/caddie-api/internal/platform/querybuilder"
)

type ShotRepository struct {
	db *sqlx.DB
}

func NewShotRepository(db *sqlx.DB) *ShotRepository {
	return &ShotRepository{db: db}
}

func (r *ShotRepository) Append(ctx context.Context, item shot.Shot) error {
	insertModel := shotInsertModel{
		ID:                item.ID,
		RoundID:           item.RoundID,
		UserID:            item.UserID,
		ShotNumber:        item.ShotNumber,
		Club:              string(item.Club),
		Distance:          item.Distance,
		EffectiveDistance: item.EffectiveDistance,
		DistanceActual:    item.DistanceActual,
		DistanceOffline:   item.DistanceOffline,
		DistanceToTarget:  item.DistanceToTarget,
		Result:            item.Result,
		LieType:           item.LieType,
		CreatedAt:         item.CreatedAt,
	}

	query, args, err := qb.InsertModel("shots", insertModel, "")
	if err != nil {
		return fmt.Errorf("build shot insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert shot: %w", err)
	}
	return nil
}

func (r *ShotRepository) ListByRound(ctx context.Context, roundID string) ([]shot.Shot, error) {
	query, args, err := shotBaseSelectBuilder().
		Where(qb.Eq("round_id", roundID)).
		OrderBy("shot_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list shots by round query: %w", err)
	}

	var rows []shotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list shots by round: %w", err)
	}

	out := make([]shot.Shot, 0, len(rows))
	for _, row := range rows {
		out = append(out, shotFromRow(row))
	}
	return out, nil
}

func (r *ShotRepository) ListByUserAndClub(ctx context.Context, userID string, c club.Club) ([]shot.Shot, error) {
	query, args, err := shotBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("club", string(c)),
		).
		OrderBy("created_at", "shot_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list shots by user and club query: %w", err)
	}

	var rows []shotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list shots by user and club: %w", err)
	}

	out := make([]shot.Shot, 0, len(rows))
	for _, row := range rows {
		out = append(out, shotFromRow(row))
	}
	return out, nil
}

func shotBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("shots")
}
