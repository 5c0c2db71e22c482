package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/weather"
	"github.com/birdielabs/caddie-api/internal/infrastructure/repository/memory"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type fakeWeatherProvider struct {
	snapshot       weather.Snapshot
	snapshotErr    error
	elevationFt    float64
	elevationErr   error
	elevationCalls int
}

func (f *fakeWeatherProvider) Current(context.Context, float64, float64) (weather.Snapshot, error) {
	if f.snapshotErr != nil {
		return weather.Snapshot{}, f.snapshotErr
	}
	return f.snapshot, nil
}

func (f *fakeWeatherProvider) Elevation(context.Context, float64, float64) (float64, error) {
	f.elevationCalls++
	if f.elevationErr != nil {
		return 0, f.elevationErr
	}
	return f.elevationFt, nil
}

func newShotServiceForTest(provider WeatherProvider) *ShotService {
	return NewShotService(
		memory.NewShotRepository(),
		memory.NewRoundRepository(),
		provider,
		cache.NewStore(time.Minute),
		staticIDGenerator{id: "shot-001"},
	)
}

func TestShotService_PreviewShot_Headwind(t *testing.T) {
	provider := &fakeWeatherProvider{
		snapshot: weather.Snapshot{
			Current: weather.Current{
				TempF: 70,
				Wind:  weather.Wind{SpeedMPH: 10, Direction: "N"},
			},
		},
	}
	service := newShotServiceForTest(provider)

	preview, err := service.PreviewShot(t.Context(), PreviewShotInput{
		Club:          "7_iron",
		Distance:      150,
		TargetBearing: 0,
	})
	if err != nil {
		t.Fatalf("preview shot: %v", err)
	}

	if math.Abs(preview.Breakdown.Delta-15) > 1e-9 {
		t.Fatalf("unexpected delta: %f", preview.Breakdown.Delta)
	}
	if math.Abs(preview.EffectiveDistance-165) > 1e-9 {
		t.Fatalf("unexpected effective distance: %f", preview.EffectiveDistance)
	}
	if preview.Confidence != "high" {
		t.Fatalf("unexpected confidence: %s", preview.Confidence)
	}

	foundWind := false
	for _, row := range preview.Breakdown.Rows {
		if row.Label == "Wind" {
			foundWind = true
			if row.Detail != "Into the wind" {
				t.Fatalf("unexpected wind detail: %q", row.Detail)
			}
		}
	}
	if !foundWind {
		t.Fatalf("expected a wind row, got %+v", preview.Breakdown.Rows)
	}
}

func TestShotService_PreviewShot_CrosswindAimNote(t *testing.T) {
	provider := &fakeWeatherProvider{
		snapshot: weather.Snapshot{
			Current: weather.Current{
				TempF: 70,
				Wind:  weather.Wind{SpeedMPH: 20, Direction: "E"},
			},
		},
	}
	service := newShotServiceForTest(provider)

	preview, err := service.PreviewShot(t.Context(), PreviewShotInput{
		Club:          "driver",
		Distance:      200,
		TargetBearing: 0,
	})
	if err != nil {
		t.Fatalf("preview shot: %v", err)
	}

	want := "Aim 8 yards right for wind"
	if preview.Breakdown.AimNote != want {
		t.Fatalf("unexpected aim note: %q want %q", preview.Breakdown.AimNote, want)
	}
	if preview.Adjustments.Wind.AimDirection != "right" {
		t.Fatalf("unexpected aim direction: %q", preview.Adjustments.Wind.AimDirection)
	}
}

func TestShotService_PreviewShot_GustyWindLowersConfidence(t *testing.T) {
	provider := &fakeWeatherProvider{
		snapshot: weather.Snapshot{
			Current: weather.Current{
				TempF: 70,
				Wind:  weather.Wind{SpeedMPH: 10, Direction: "N", GustsMPH: 20},
			},
		},
	}
	service := newShotServiceForTest(provider)

	preview, err := service.PreviewShot(t.Context(), PreviewShotInput{
		Club:     "driver",
		Distance: 250,
	})
	if err != nil {
		t.Fatalf("preview shot: %v", err)
	}
	if preview.Confidence != "medium" {
		t.Fatalf("unexpected confidence: %s", preview.Confidence)
	}
}

func TestShotService_PreviewShot_DegradesWhenProvidersFail(t *testing.T) {
	provider := &fakeWeatherProvider{
		snapshotErr:  errors.New("weather offline"),
		elevationErr: errors.New("elevation offline"),
	}
	service := newShotServiceForTest(provider)

	preview, err := service.PreviewShot(t.Context(), PreviewShotInput{
		Club:               "7_iron",
		Distance:           150,
		ElevationDeltaFeet: 30,
	})
	if err != nil {
		t.Fatalf("expected degraded preview, got error: %v", err)
	}

	if preview.Confidence != "low" {
		t.Fatalf("unexpected confidence: %s", preview.Confidence)
	}
	if preview.Adjustments.Wind != nil || preview.Adjustments.Temperature != nil {
		t.Fatalf("expected no weather adjustments, got %+v", preview.Adjustments)
	}
	if math.Abs(preview.Breakdown.Delta-10) > 1e-9 {
		t.Fatalf("unexpected slope-only delta: %f", preview.Breakdown.Delta)
	}
}

func TestShotService_PreviewShot_CachesElevationPerCoordinate(t *testing.T) {
	provider := &fakeWeatherProvider{elevationFt: 5000}
	service := newShotServiceForTest(provider)

	for i := 0; i < 2; i++ {
		if _, err := service.PreviewShot(t.Context(), PreviewShotInput{
			Club:      "driver",
			Distance:  250,
			Latitude:  39.6,
			Longitude: -106.5,
		}); err != nil {
			t.Fatalf("preview shot: %v", err)
		}
	}

	if provider.elevationCalls != 1 {
		t.Fatalf("expected one elevation lookup, got %d", provider.elevationCalls)
	}
}

func TestShotService_PreviewShot_RejectsUnknownClub(t *testing.T) {
	service := newShotServiceForTest(&fakeWeatherProvider{})

	_, err := service.PreviewShot(t.Context(), PreviewShotInput{Club: "11_iron", Distance: 150})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestShotService_RecordShot(t *testing.T) {
	shotRepo := memory.NewShotRepository()
	roundRepo := memory.NewRoundRepository()
	service := NewShotService(shotRepo, roundRepo, &fakeWeatherProvider{}, cache.NewStore(time.Minute), staticIDGenerator{id: "shot-001"})

	now := time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	if err := roundRepo.Create(t.Context(), round.Round{
		ID:        "round-1",
		UserID:    "user-1",
		StartedAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("create round: %v", err)
	}

	created, err := service.RecordShot(t.Context(), RecordShotInput{
		RoundID:  "round-1",
		UserID:   "user-1",
		Club:     "driver",
		Distance: 250,
		Result:   "fairway",
		LieType:  "tee",
	})
	if err != nil {
		t.Fatalf("record shot: %v", err)
	}
	if created.ID != "shot-001" {
		t.Fatalf("unexpected shot id: %q", created.ID)
	}
	if created.ShotNumber != 1 {
		t.Fatalf("unexpected shot number: %d", created.ShotNumber)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created at: %s", created.CreatedAt)
	}

	second, err := service.RecordShot(t.Context(), RecordShotInput{
		RoundID:  "round-1",
		UserID:   "user-1",
		Club:     "7_iron",
		Distance: 150,
	})
	if err != nil {
		t.Fatalf("record second shot: %v", err)
	}
	if second.ShotNumber != 2 {
		t.Fatalf("unexpected second shot number: %d", second.ShotNumber)
	}
}

func TestShotService_RecordShot_RejectsForeignRound(t *testing.T) {
	roundRepo := memory.NewRoundRepository()
	service := NewShotService(memory.NewShotRepository(), roundRepo, &fakeWeatherProvider{}, cache.NewStore(time.Minute), staticIDGenerator{id: "shot-001"})

	if err := roundRepo.Create(t.Context(), round.Round{ID: "round-1", UserID: "owner"}); err != nil {
		t.Fatalf("create round: %v", err)
	}

	_, err := service.RecordShot(t.Context(), RecordShotInput{
		RoundID:  "round-1",
		UserID:   "intruder",
		Club:     "driver",
		Distance: 250,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestShotService_ListRoundShots_UnknownRound(t *testing.T) {
	service := newShotServiceForTest(&fakeWeatherProvider{})

	_, err := service.ListRoundShots(t.Context(), "missing", "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
