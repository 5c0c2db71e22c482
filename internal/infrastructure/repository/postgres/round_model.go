package postgres

import (
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/round"
)

type roundTableModel struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	CourseID    string     `db:"course_id"`
	CourseName  string     `db:"course_name"`
	TeeName     string     `db:"tee_name"`
	StartedAt   time.Time  `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

type holeScoreTableModel struct {
	RoundID   string `db:"round_id"`
	Hole      int    `db:"hole"`
	Par       int    `db:"par"`
	Score     int    `db:"score"`
	Putts     int    `db:"putts"`
	Fairway   string `db:"fairway"`
	GIR       *bool  `db:"gir"`
	Penalties int    `db:"penalties"`
}

type holeScoreInsertModel struct {
	RoundID   string `db:"round_id"`
	Hole      int    `db:"hole"`
	Par       int    `db:"par"`
	Score     int    `db:"score"`
	Putts     int    `db:"putts"`
	Fairway   string `db:"fairway"`
	GIR       *bool  `db:"gir"`
	Penalties int    `db:"penalties"`
}

func roundFromRow(row roundTableModel, holes []holeScoreTableModel) round.Round {
	item := round.Round{
		ID:          row.ID,
		UserID:      row.UserID,
		CourseID:    row.CourseID,
		CourseName:  row.CourseName,
		TeeName:     row.TeeName,
		StartedAt:   row.StartedAt,
		CompletedAt: row.CompletedAt,
	}
	item.Holes = make([]round.HoleScore, 0, len(holes))
	for _, hole := range holes {
		item.Holes = append(item.Holes, round.HoleScore{
			Hole:      hole.Hole,
			Par:       hole.Par,
			Score:     hole.Score,
			Putts:     hole.Putts,
			Fairway:   round.FairwayResult(hole.Fairway),
			GIR:       hole.GIR,
			Penalties: hole.Penalties,
		})
	}
	return item
}
