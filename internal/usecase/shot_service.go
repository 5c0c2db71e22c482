package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
	"github.com/birdielabs/caddie-api/internal/domain/weather"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
	"github.com/birdielabs/caddie-api/internal/platform/id"
)

const (
	baselineTempF        = 70.0
	tempYardsPerDegree   = 0.2
	headwindPctPerMPH    = 0.010
	tailwindPctPerMPH    = 0.005
	crosswindAimPctPerMPH = 0.002
	slopeFeetPerYard     = 3.0
	altitudePctPer1000Ft = 0.02
	gustyWindRatio       = 1.5

	// Elevation lookups cluster per course, so cache keys round to about
	// a hundred meters.
	elevationKeyPrecision = 3
)

// WeatherProvider supplies current conditions and terrain altitude for a
// coordinate. Both calls go over the network.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (weather.Snapshot, error)
	Elevation(ctx context.Context, lat, lon float64) (float64, error)
}

type PreviewShotInput struct {
	Club               string
	Distance           float64
	TargetBearing      float64
	Latitude           float64
	Longitude          float64
	ElevationDeltaFeet float64
	AvoidZones         []shot.HazardZone
	SafeZone           *shot.SafeZone
	Warnings           []string
}

// ShotPreview is the rendering-ready advice for a shot the player is about
// to hit. Nothing in it is persisted.
type ShotPreview struct {
	Club              club.Club
	Distance          float64
	EffectiveDistance float64
	Breakdown         shot.Breakdown
	Adjustments       shot.Adjustments
	Hazards           shot.HazardSummary
	Confidence        shot.Confidence
	WeatherNotes      []string
}

type RecordShotInput struct {
	RoundID          string
	UserID           string
	Club             string
	Distance         float64
	DistanceActual   *float64
	DistanceOffline  *float64
	DistanceToTarget *float64
	Result           string
	LieType          string
}

type ShotService struct {
	shotRepo       shot.Repository
	roundRepo      round.Repository
	weather        WeatherProvider
	elevationCache *cache.Store
	idGen          id.Generator
	now            func() time.Time
}

func NewShotService(
	shotRepo shot.Repository,
	roundRepo round.Repository,
	weatherProvider WeatherProvider,
	elevationCache *cache.Store,
	idGen id.Generator,
) *ShotService {
	return &ShotService{
		shotRepo:       shotRepo,
		roundRepo:      roundRepo,
		weather:        weatherProvider,
		elevationCache: elevationCache,
		idGen:          idGen,
		now:            time.Now,
	}
}

// PreviewShot builds the plays-like breakdown and hazard summary for one
// prospective shot. Weather and altitude are fetched concurrently; either
// failing degrades the preview instead of failing it.
func (s *ShotService) PreviewShot(ctx context.Context, input PreviewShotInput) (ShotPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "ShotService.PreviewShot")
	defer span.End()

	c, ok := club.Parse(input.Club)
	if !ok {
		return ShotPreview{}, fmt.Errorf("%w: unknown club %q", ErrInvalidInput, input.Club)
	}
	if input.Distance <= 0 {
		return ShotPreview{}, fmt.Errorf("%w: distance must be greater than zero", ErrInvalidInput)
	}

	var (
		snap        weather.Snapshot
		weatherErr  error
		altitudeFt  float64
		altitudeErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		snap, weatherErr = s.weather.Current(ctx, input.Latitude, input.Longitude)
	})
	wg.Go(func() {
		altitudeFt, altitudeErr = s.lookupAltitude(ctx, input.Latitude, input.Longitude)
	})
	wg.Wait()

	adj := shot.Adjustments{}
	confidence := shot.ConfidenceLow
	var notes []string

	if weatherErr == nil {
		adj.Wind = buildWindDetail(snap.Current.Wind, input.TargetBearing, input.Distance)
		adj.Temperature = buildTemperatureDetail(snap.Current.TempF)
		notes = weather.Notes(snap.Current)

		confidence = shot.ConfidenceHigh
		if snap.Current.Wind.GustsMPH > snap.Current.Wind.SpeedMPH*gustyWindRatio {
			confidence = shot.ConfidenceMedium
		}
	}

	elev := &shot.ElevationDetail{
		SlopeEffect:    input.ElevationDeltaFeet / slopeFeetPerYard,
		ElevationDelta: input.ElevationDeltaFeet,
	}
	if altitudeErr == nil {
		elev.AltitudeEffect = input.Distance * (altitudeFt / 1000) * altitudePctPer1000Ft
	}
	adj.Elevation = elev

	breakdown := shot.BuildBreakdown(adj)

	return ShotPreview{
		Club:              c,
		Distance:          input.Distance,
		EffectiveDistance: input.Distance + breakdown.Delta,
		Breakdown:         breakdown,
		Adjustments:       adj,
		Hazards:           shot.AdviseHazards(input.AvoidZones, input.Warnings, input.SafeZone),
		Confidence:        confidence,
		WeatherNotes:      notes,
	}, nil
}

// RecordShot appends one played shot to the round's log.
func (s *ShotService) RecordShot(ctx context.Context, input RecordShotInput) (shot.Shot, error) {
	ctx, span := startUsecaseSpan(ctx, "ShotService.RecordShot")
	defer span.End()

	input.RoundID = strings.TrimSpace(input.RoundID)
	input.UserID = strings.TrimSpace(input.UserID)

	c, ok := club.Parse(input.Club)
	if !ok {
		return shot.Shot{}, fmt.Errorf("%w: unknown club %q", ErrInvalidInput, input.Club)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, input.RoundID)
	if err != nil {
		return shot.Shot{}, fmt.Errorf("get round for shot: %w", err)
	}
	if !exists {
		return shot.Shot{}, fmt.Errorf("%w: round %s", ErrNotFound, input.RoundID)
	}
	if item.UserID != input.UserID {
		return shot.Shot{}, fmt.Errorf("%w: round belongs to another user", ErrUnauthorized)
	}

	existing, err := s.shotRepo.ListByRound(ctx, input.RoundID)
	if err != nil {
		return shot.Shot{}, fmt.Errorf("list round shots: %w", err)
	}

	shotID, err := s.idGen.NewID()
	if err != nil {
		return shot.Shot{}, fmt.Errorf("generate shot id: %w", err)
	}

	newShot := shot.Shot{
		ID:               shotID,
		RoundID:          input.RoundID,
		UserID:           input.UserID,
		ShotNumber:       len(existing) + 1,
		Club:             c,
		Distance:         input.Distance,
		DistanceActual:   input.DistanceActual,
		DistanceOffline:  input.DistanceOffline,
		DistanceToTarget: input.DistanceToTarget,
		Result:           strings.TrimSpace(input.Result),
		LieType:          strings.TrimSpace(input.LieType),
		CreatedAt:        s.now().UTC(),
	}
	if err := newShot.ValidateBasic(); err != nil {
		return shot.Shot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.shotRepo.Append(ctx, newShot); err != nil {
		return shot.Shot{}, fmt.Errorf("append shot: %w", err)
	}
	return newShot, nil
}

func (s *ShotService) ListRoundShots(ctx context.Context, roundID, userID string) ([]shot.Shot, error) {
	ctx, span := startUsecaseSpan(ctx, "ShotService.ListRoundShots")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: round %s", ErrNotFound, roundID)
	}
	if item.UserID != strings.TrimSpace(userID) {
		return nil, fmt.Errorf("%w: round belongs to another user", ErrUnauthorized)
	}

	items, err := s.shotRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list round shots: %w", err)
	}
	return items, nil
}

func (s *ShotService) lookupAltitude(ctx context.Context, lat, lon float64) (float64, error) {
	key := fmt.Sprintf("elevation:%.*f,%.*f", elevationKeyPrecision, lat, elevationKeyPrecision, lon)
	value, err := s.elevationCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.weather.Elevation(ctx, lat, lon)
	})
	if err != nil {
		return 0, err
	}
	altitude, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected elevation cache value %T", value)
	}
	return altitude, nil
}

var compassDegrees = map[string]float64{
	"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
	"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
	"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
	"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
}

// buildWindDetail resolves the wind vector against the shot's target line.
// A headwind makes the shot play longer; a crosswind calls for an aim
// correction into the wind.
func buildWindDetail(w weather.Wind, targetBearing, distance float64) *shot.WindDetail {
	windFrom, ok := compassDegrees[strings.ToUpper(strings.TrimSpace(w.Direction))]
	if !ok || w.SpeedMPH <= 0 {
		return &shot.WindDetail{WindEffect: "Calm"}
	}

	relative := (windFrom - targetBearing) * math.Pi / 180
	head := w.SpeedMPH * math.Cos(relative)
	cross := w.SpeedMPH * math.Sin(relative)

	detail := &shot.WindDetail{}
	switch {
	case head > 0:
		detail.DistanceEffect = head * distance * headwindPctPerMPH
		detail.WindEffect = "Into the wind"
	case head < 0:
		detail.DistanceEffect = head * distance * tailwindPctPerMPH
		detail.WindEffect = "Downwind"
	default:
		detail.WindEffect = "Crosswind"
	}
	if math.Abs(cross) > math.Abs(head) {
		detail.WindEffect = "Crosswind"
	}

	detail.AimOffsetYards = math.Abs(cross) * distance * crosswindAimPctPerMPH
	if cross > 0 {
		detail.AimDirection = "right"
	} else if cross < 0 {
		detail.AimDirection = "left"
	}
	return detail
}

func buildTemperatureDetail(tempF float64) *shot.TemperatureDetail {
	return &shot.TemperatureDetail{
		DistanceEffect: (baselineTempF - tempF) * tempYardsPerDegree,
		Description:    weather.DescribeTemperature(tempF),
	}
}
