package memory

import (
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/insight"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
)

const (
	SeedUserID  = "demo-user"
	SeedRoundID = "demo-round-pebble"
)

func SeedRounds() []round.Round {
	startedAt := time.Date(2026, 8, 22, 7, 30, 0, 0, time.UTC)
	completedAt := startedAt.Add(4*time.Hour + 20*time.Minute)

	return []round.Round{
		{
			ID:          SeedRoundID,
			UserID:      SeedUserID,
			CourseID:    "course-pebble-creek",
			CourseName:  "Pebble Creek Golf Club",
			TeeName:     "Blue",
			StartedAt:   startedAt,
			CompletedAt: &completedAt,
			Holes: []round.HoleScore{
				{Hole: 1, Par: 4, Score: 5, Putts: 2, Fairway: round.FairwayMissRight, Penalties: 0},
				{Hole: 2, Par: 3, Score: 3, Putts: 2, Fairway: round.FairwayNA},
				{Hole: 3, Par: 5, Score: 5, Putts: 1, Fairway: round.FairwayHit},
				{Hole: 4, Par: 4, Score: 4, Putts: 2, Fairway: round.FairwayHit},
				{Hole: 5, Par: 4, Score: 6, Putts: 2, Fairway: round.FairwayMissRight, Penalties: 1},
				{Hole: 6, Par: 3, Score: 4, Putts: 2, Fairway: round.FairwayNA},
				{Hole: 7, Par: 5, Score: 6, Putts: 2, Fairway: round.FairwayMissLeft},
				{Hole: 8, Par: 4, Score: 4, Putts: 1, Fairway: round.FairwayHit},
				{Hole: 9, Par: 4, Score: 5, Putts: 2, Fairway: round.FairwayMissRight},
			},
		},
	}
}

func SeedShots() []shot.Shot {
	base := time.Date(2026, 8, 22, 7, 45, 0, 0, time.UTC)

	distances := []float64{262, 248, 271, 255, 266, 259}
	offlines := []float64{14, 22, 8, 18, 25, 12}

	shots := make([]shot.Shot, 0, len(distances))
	for i := range distances {
		shots = append(shots, shot.Shot{
			ID:              "demo-shot-drv-" + string(rune('a'+i)),
			RoundID:         SeedRoundID,
			UserID:          SeedUserID,
			ShotNumber:      i + 1,
			Club:            club.Driver,
			Distance:        265,
			DistanceActual:  ptrFloat(distances[i]),
			DistanceOffline: ptrFloat(offlines[i]),
			Result:          "fairway",
			LieType:         "tee",
			CreatedAt:       base.Add(time.Duration(i) * 12 * time.Minute),
		})
	}
	return shots
}

func SeedTendencies() map[string][]insight.Tendency {
	return map[string][]insight.Tendency{
		SeedUserID: {
			{
				Type:       insight.TendencyTypeClubBias,
				Key:        "driver_miss",
				Confidence: 0.72,
				Data:       insight.TendencyData{Description: "You tend to miss right with the driver under pressure"},
			},
			{
				Type:       insight.TendencyTypeClubBias,
				Key:        "7_iron_miss",
				Confidence: 0.2,
				Data:       insight.TendencyData{Description: "Slight short miss with the 7 iron"},
			},
		},
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}
