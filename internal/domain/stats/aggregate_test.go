package stats

import (
	"testing"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
)

func fv(v float64) *float64 {
	return &v
}

func actualShot(c club.Club, actual float64) shot.Shot {
	return shot.Shot{Club: c, Distance: actual, DistanceActual: fv(actual)}
}

func TestAggregate_LockedBelowThreshold(t *testing.T) {
	shots := []shot.Shot{
		actualShot(club.Iron7, 150),
		actualShot(club.Iron7, 152),
		actualShot(club.Iron7, 148),
		actualShot(club.Iron7, 151),
	}

	got := Aggregate(club.Iron7, shots)
	if !got.Locked {
		t.Fatalf("expected locked stats with %d shots", len(shots))
	}
	if got.ShotsNeeded != 1 {
		t.Fatalf("unexpected shots needed: got=%d want=1", got.ShotsNeeded)
	}
	if got.AvgDistance != nil {
		t.Fatalf("locked stats must not expose numbers: %+v", got)
	}

	// The fifth shot flips the gate.
	got = Aggregate(club.Iron7, append(shots, actualShot(club.Iron7, 149)))
	if got.Locked {
		t.Fatalf("expected unlocked stats with five shots")
	}
}

func TestAggregate_DistanceStats(t *testing.T) {
	shots := []shot.Shot{
		actualShot(club.Iron7, 140),
		actualShot(club.Iron7, 150),
		actualShot(club.Iron7, 160),
		actualShot(club.Iron7, 145),
		actualShot(club.Iron7, 155),
	}

	got := Aggregate(club.Iron7, shots)
	if got.AvgDistance == nil || *got.AvgDistance != 150 {
		t.Fatalf("unexpected avg: %+v", got.AvgDistance)
	}
	if got.MedianDistance == nil || *got.MedianDistance != 150 {
		t.Fatalf("unexpected median: %+v", got.MedianDistance)
	}
	if got.MinDistance == nil || *got.MinDistance != 140 {
		t.Fatalf("unexpected min: %+v", got.MinDistance)
	}
	if got.MaxDistance == nil || *got.MaxDistance != 160 {
		t.Fatalf("unexpected max: %+v", got.MaxDistance)
	}
}

func TestAggregate_Last10UsesMostRecent(t *testing.T) {
	shots := make([]shot.Shot, 0, 12)
	// Two old outliers followed by ten consistent swings.
	shots = append(shots, actualShot(club.Driver, 100), actualShot(club.Driver, 120))
	for i := 0; i < 10; i++ {
		shots = append(shots, actualShot(club.Driver, 250))
	}

	got := Aggregate(club.Driver, shots)
	if got.Last10Avg == nil || *got.Last10Avg != 250 {
		t.Fatalf("unexpected last-10 avg: %+v", got.Last10Avg)
	}
}

func TestAggregate_MissDenominatorsUsePresentMeasurements(t *testing.T) {
	shots := make([]shot.Shot, 0, 10)
	// Three shots with offline data out of ten total.
	shots = append(shots,
		shot.Shot{Club: club.Iron8, DistanceOffline: fv(5)},
		shot.Shot{Club: club.Iron8, DistanceOffline: fv(4)},
		shot.Shot{Club: club.Iron8, DistanceOffline: fv(-6)},
	)
	for i := 0; i < 7; i++ {
		shots = append(shots, shot.Shot{Club: club.Iron8})
	}

	got := Aggregate(club.Iron8, shots)
	if got.Locked {
		t.Fatalf("expected unlocked stats with %d shots", len(shots))
	}

	wantRight := 2.0 / 3.0 * 100
	if got.MissRightPct < wantRight-0.001 || got.MissRightPct > wantRight+0.001 {
		t.Fatalf("unexpected right pct: got=%v want=%v", got.MissRightPct, wantRight)
	}
	wantLeft := 1.0 / 3.0 * 100
	if got.MissLeftPct < wantLeft-0.001 || got.MissLeftPct > wantLeft+0.001 {
		t.Fatalf("unexpected left pct: got=%v want=%v", got.MissLeftPct, wantLeft)
	}
}

func TestAggregate_MissBiasDeadband(t *testing.T) {
	build := func(offline float64) []shot.Shot {
		out := make([]shot.Shot, 5)
		for i := range out {
			out[i] = shot.Shot{Club: club.Iron6, DistanceOffline: fv(offline)}
		}
		return out
	}

	t.Run("right of deadband", func(t *testing.T) {
		got := Aggregate(club.Iron6, build(3.2))
		if got.MissBias != "Right" {
			t.Fatalf("unexpected bias: got=%q want=Right", got.MissBias)
		}
	})

	t.Run("inside deadband", func(t *testing.T) {
		got := Aggregate(club.Iron6, build(-1.0))
		if got.MissBias != "Center" {
			t.Fatalf("unexpected bias: got=%q want=Center", got.MissBias)
		}
	})

	t.Run("left of deadband", func(t *testing.T) {
		got := Aggregate(club.Iron6, build(-4.5))
		if got.MissBias != "Left" {
			t.Fatalf("unexpected bias: got=%q want=Left", got.MissBias)
		}
	})
}

func TestAggregate_ShortLongBuckets(t *testing.T) {
	target := func(nominal, actual float64) shot.Shot {
		return shot.Shot{Club: club.Iron5, Distance: nominal, DistanceActual: fv(actual)}
	}
	shots := []shot.Shot{
		target(180, 170), // short
		target(180, 172), // short
		target(180, 186), // long
		target(180, 181), // inside deadband
		target(180, 179), // inside deadband
	}

	got := Aggregate(club.Iron5, shots)
	if got.MissShortPct != 40 {
		t.Fatalf("unexpected short pct: got=%v want=40", got.MissShortPct)
	}
	if got.MissLongPct != 20 {
		t.Fatalf("unexpected long pct: got=%v want=20", got.MissLongPct)
	}
}

func TestAggregate_NonPositiveDistancesExcluded(t *testing.T) {
	shots := []shot.Shot{
		actualShot(club.PW, 110),
		actualShot(club.PW, 112),
		{Club: club.PW, DistanceActual: fv(0)},
		{Club: club.PW, DistanceActual: fv(-3)},
		{Club: club.PW},
	}

	got := Aggregate(club.PW, shots)
	if got.Locked {
		t.Fatalf("five total shots should unlock")
	}
	if got.AvgDistance == nil || *got.AvgDistance != 111 {
		t.Fatalf("unexpected avg over positive distances: %+v", got.AvgDistance)
	}
}
