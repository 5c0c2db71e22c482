package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birdielabs/caddie-api/internal/domain/insight"
	qb "github.com/birdielabs/caddie-api/internal/platform/querybuilder"
)

type TendencyRepository struct {
	db *sqlx.DB
}

func NewTendencyRepository(db *sqlx.DB) *TendencyRepository {
	return &TendencyRepository{db: db}
}

func (r *TendencyRepository) ListByUser(ctx context.Context, userID string) ([]insight.Tendency, error) {
	query, args, err := qb.Select("*").
		From("tendencies").
		Where(qb.Eq("user_id", userID)).
		OrderBy("type", "key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tendencies query: %w", err)
	}

	var rows []tendencyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tendencies: %w", err)
	}

	out := make([]insight.Tendency, 0, len(rows))
	for _, row := range rows {
		out = append(out, tendencyFromRow(row))
	}
	return out, nil
}
