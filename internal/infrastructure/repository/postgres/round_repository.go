package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/birdielabs/caddie-api/internal/domain/round"
	qb "github.com/birdielabs/caddie-api/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) error {
	insertModel := roundTableModel{
		ID:          item.ID,
		UserID:      item.UserID,
		CourseID:    item.CourseID,
		CourseName:  item.CourseName,
		TeeName:     item.TeeName,
		StartedAt:   item.StartedAt,
		CompletedAt: item.CompletedAt,
	}

	query, args, err := qb.InsertModel("rounds", insertModel, "")
	if err != nil {
		return fmt.Errorf("build round insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (r *RoundRepository) GetByID(ctx context.Context, id string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round: %w", err)
	}

	holes, err := r.listHoleScores(ctx, []string{id})
	if err != nil {
		return round.Round{}, false, err
	}
	return roundFromRow(row, holes[id]), true, nil
}

func (r *RoundRepository) UpsertHoleScore(ctx context.Context, roundID string, score round.HoleScore) error {
	insertModel := holeScoreInsertModel{
		RoundID:   roundID,
		Hole:      score.Hole,
		Par:       score.Par,
		Score:     score.Score,
		Putts:     score.Putts,
		Fairway:   string(score.Fairway),
		GIR:       score.GIR,
		Penalties: score.Penalties,
	}

	query, args, err := qb.InsertModel("hole_scores", insertModel, `ON CONFLICT (round_id, hole)
DO UPDATE SET
    par = EXCLUDED.par,
    score = EXCLUDED.score,
    putts = EXCLUDED.putts,
    fairway = EXCLUDED.fairway,
    gir = EXCLUDED.gir,
    penalties = EXCLUDED.penalties`)
	if err != nil {
		return fmt.Errorf("build hole score upsert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert hole score: %w", err)
	}
	return nil
}

func (r *RoundRepository) MarkCompleted(ctx context.Context, roundID string, completedAt time.Time) error {
	query, args, err := qb.Update("rounds").
		Set("completed_at", completedAt).
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark round completed query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark round completed: %w", err)
	}
	return nil
}

func (r *RoundRepository) ListCompletedByUser(ctx context.Context, userID string) ([]round.Round, error) {
	query, args, err := qb.Select("*").
		From("rounds").
		Where(
			qb.Eq("user_id", userID),
			qb.NotNull("completed_at"),
		).
		OrderBy("started_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list completed rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list completed rounds: %w", err)
	}
	if len(rows) == 0 {
		return []round.Round{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	holesByRound, err := r.listHoleScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row, holesByRound[row.ID]))
	}
	return out, nil
}

func (r *RoundRepository) listHoleScores(ctx context.Context, roundIDs []string) (map[string][]holeScoreTableModel, error) {
	ids := make([]any, 0, len(roundIDs))
	for _, id := range roundIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From("hole_scores").
		Where(qb.In("round_id", ids)).
		OrderBy("round_id", "hole").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hole scores query: %w", err)
	}

	var rows []holeScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list hole scores: %w", err)
	}

	out := make(map[string][]holeScoreTableModel, len(roundIDs))
	for _, row := range rows {
		out[row.RoundID] = append(out[row.RoundID], row)
	}
	return out, nil
}
