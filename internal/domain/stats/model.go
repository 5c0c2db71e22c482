package stats

import "github.com/birdielabs/caddie-api/internal/domain/club"

// ClubStats is a derived view over one club's shot history. It is never
// persisted; callers recompute it per request.
//
// When Locked is true no numeric field is populated and callers must show
// only the progress message implied by ShotsNeeded.
type ClubStats struct {
	Club       club.Club
	TotalShots int
	Locked     bool
	ShotsNeeded int

	AvgDistance    *float64
	MedianDistance *float64
	MinDistance    *float64
	MaxDistance    *float64
	Last10Avg      *float64

	MissLeftPct  float64
	MissRightPct float64
	MissShortPct float64
	MissLongPct  float64

	AvgOffline *float64
	MissBias   string

	DispersionRadius    *float64
	LateralDispersion   *float64
	DistanceDispersion  *float64
	AvgDistanceToTarget *float64
}
