package weather

import (
	"strings"
	"testing"
)

func TestDescribeTemperature(t *testing.T) {
	if got := DescribeTemperature(68); !strings.Contains(got, "Ideal") {
		t.Fatalf("68F should be ideal, got=%q", got)
	}
	if got := DescribeTemperature(42); got != "Cold (42°F), the ball flies shorter, club up" {
		t.Fatalf("42F should be cold, got=%q", got)
	}
	if got := DescribeTemperature(92); !strings.Contains(got, "Hot") {
		t.Fatalf("92F should be hot, got=%q", got)
	}
}

func TestDescribeWind(t *testing.T) {
	if got := DescribeWind(Wind{SpeedMPH: 6}); !strings.Contains(got, "Light") {
		t.Fatalf("6 mph should be light, got=%q", got)
	}
	if got := DescribeWind(Wind{SpeedMPH: 14, Direction: "NW"}); !strings.Contains(got, "Breezy") {
		t.Fatalf("14 mph should be breezy, got=%q", got)
	}
	if got := DescribeWind(Wind{SpeedMPH: 24, Direction: "W"}); !strings.Contains(got, "Strong") {
		t.Fatalf("24 mph should be strong, got=%q", got)
	}
}

func TestNotesIncludesWetConditions(t *testing.T) {
	notes := Notes(Current{TempF: 70, Wind: Wind{SpeedMPH: 5}, Precipitation: 0.2})
	if len(notes) != 3 {
		t.Fatalf("unexpected note count: got=%d want=3", len(notes))
	}
	if !strings.Contains(notes[2], "Wet") {
		t.Fatalf("expected wet-conditions note, got=%q", notes[2])
	}
}
