package shot

import (
	"fmt"
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/club"
)

type HazardType string

const (
	HazardWater       HazardType = "water"
	HazardOutOfBounds HazardType = "ob"
	HazardPenalty     HazardType = "penalty"
	HazardBunker      HazardType = "bunker"
	HazardWasteArea   HazardType = "waste_area"
)

// HazardZone is one area the player should avoid on the current shot.
type HazardZone struct {
	Name           string
	Type           HazardType
	DistanceToEdge float64
	Direction      string
}

// SafeZone is the suggested bail-out area for the current shot.
type SafeZone struct {
	Direction   string
	Description string
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// WindDetail carries the wind contribution to effective distance plus the
// aim correction the wind calls for.
type WindDetail struct {
	DistanceEffect float64
	WindEffect     string
	AimOffsetYards float64
	AimDirection   string
}

type TemperatureDetail struct {
	DistanceEffect float64
	Description    string
}

// ElevationDetail carries both the hole's slope contribution and the
// course-altitude contribution. AltitudeEffect is the carry gained from
// thinner air, so it shortens the effective distance.
type ElevationDetail struct {
	SlopeEffect    float64
	ElevationDelta float64
	AltitudeEffect float64
}

type Adjustments struct {
	Wind        *WindDetail
	Temperature *TemperatureDetail
	Elevation   *ElevationDetail
}

// Shot is one recorded or previewed stroke. Ground-truth fields
// (DistanceActual, DistanceOffline, DistanceToTarget, Result, LieType) are
// filled in after the shot is played; nil means not measured.
type Shot struct {
	ID                string
	RoundID           string
	UserID            string
	ShotNumber        int
	Club              club.Club
	Distance          float64
	EffectiveDistance *float64
	Adjustments       Adjustments
	AvoidZones        []HazardZone
	SafeZone          *SafeZone
	Warnings          []string
	Confidence        Confidence
	DistanceActual    *float64
	DistanceOffline   *float64
	DistanceToTarget  *float64
	Result            string
	LieType           string
	CreatedAt         time.Time
}

// PlaysLike returns the effective distance, defaulting to the nominal
// distance when no adjustment was computed.
func (s Shot) PlaysLike() float64 {
	if s.EffectiveDistance != nil {
		return *s.EffectiveDistance
	}
	return s.Distance
}

func (s Shot) ValidateBasic() error {
	if s.RoundID == "" {
		return fmt.Errorf("round id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.ShotNumber < 1 {
		return fmt.Errorf("shot number must be greater than zero")
	}
	if !s.Club.IsValid() {
		return fmt.Errorf("unknown club %q", s.Club)
	}
	if s.Distance < 0 {
		return fmt.Errorf("distance cannot be negative")
	}
	return nil
}
