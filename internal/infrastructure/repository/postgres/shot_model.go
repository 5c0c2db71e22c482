package postgres

import (
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
)

type shotTableModel struct {
	ID                string    `db:"id"`
	RoundID           string    `db:"round_id"`
	UserID            string    `db:"user_id"`
	ShotNumber        int       `db:"shot_number"`
	Club              string    `db:"club"`
	Distance          float64   `db:"distance"`
	EffectiveDistance *float64  `db:"effective_distance"`
	DistanceActual    *float64  `db:"distance_actual"`
	DistanceOffline   *float64  `db:"distance_offline"`
	DistanceToTarget  *float64  `db:"distance_to_target"`
	Result            string    `db:"result"`
	LieType           string    `db:"lie_type"`
	CreatedAt         time.Time `db:"created_at"`
}

type shotInsertModel struct {
	ID                string    `db:"id"`
	RoundID           string    `db:"round_id"`
	UserID            string    `db:"user_id"`
	ShotNumber        int       `db:"shot_number"`
	Club              string    `db:"club"`
	Distance          float64   `db:"distance"`
	EffectiveDistance *float64  `db:"effective_distance"`
	DistanceActual    *float64  `db:"distance_actual"`
	DistanceOffline   *float64  `db:"distance_offline"`
	DistanceToTarget  *float64  `db:"distance_to_target"`
	Result            string    `db:"result"`
	LieType           string    `db:"lie_type"`
	CreatedAt         time.Time `db:"created_at"`
}

func shotFromRow(row shotTableModel) shot.Shot {
	return shot.Shot{
		ID:                row.ID,
		RoundID:           row.RoundID,
		UserID:            row.UserID,
		ShotNumber:        row.ShotNumber,
		Club:              club.Club(row.Club),
		Distance:          row.Distance,
		EffectiveDistance: row.EffectiveDistance,
		DistanceActual:    row.DistanceActual,
		DistanceOffline:   row.DistanceOffline,
		DistanceToTarget:  row.DistanceToTarget,
		Result:            row.Result,
		LieType:           row.LieType,
		CreatedAt:         row.CreatedAt,
	}
}
