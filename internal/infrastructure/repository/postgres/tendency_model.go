package postgres

import "github.com/birdielabs/caddie-api/internal/domain/insight"

type tendencyTableModel struct {
	UserID      string  `db:"user_id"`
	Type        string  `db:"type"`
	Key         string  `db:"key"`
	Confidence  float64 `db:"confidence"`
	Description string  `db:"description"`
}

func tendencyFromRow(row tendencyTableModel) insight.Tendency {
	return insight.Tendency{
		Type:       row.Type,
		Key:        row.Key,
		Confidence: row.Confidence,
		Data:       insight.TendencyData{Description: row.Description},
	}
}
