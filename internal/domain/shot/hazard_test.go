package shot

import "testing"

func TestAdviseHazards_NoHazardsIsExplicit(t *testing.T) {
	got := AdviseHazards(nil, nil, nil)
	if !got.NoHazards {
		t.Fatalf("expected explicit no-hazards state, got %+v", got)
	}

	// A free-text warning alone keeps the summary in play.
	got = AdviseHazards(nil, []string{"blind tee shot"}, nil)
	if got.NoHazards {
		t.Fatalf("expected hazards in play with warnings present")
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("unexpected warnings: %+v", got.Warnings)
	}
}

func TestAdviseHazards_SeverityClasses(t *testing.T) {
	zones := []HazardZone{
		{Name: "lake", Type: HazardWater, DistanceToEdge: 215, Direction: "left"},
		{Name: "stakes", Type: HazardOutOfBounds, Direction: "right"},
		{Name: "creek", Type: HazardPenalty, Direction: "short"},
		{Name: "pot bunker", Type: HazardBunker, Direction: "right"},
		{Name: "desert", Type: HazardWasteArea, Direction: "long"},
		{Name: "cart path", Type: HazardType("cart_path"), Direction: "right"},
	}

	got := AdviseHazards(zones, nil, nil)
	if len(got.Rows) != len(zones) {
		t.Fatalf("unexpected row count: got=%d want=%d", len(got.Rows), len(zones))
	}

	wantSeverity := []SeverityClass{SeverityRed, SeverityRed, SeverityRed, SeverityAmber, SeverityAmber, SeverityAmber}
	for i, row := range got.Rows {
		if row.Severity != wantSeverity[i] {
			t.Fatalf("row %d severity: got=%s want=%s", i, row.Severity, wantSeverity[i])
		}
	}

	// Unknown type falls back to its raw identifier.
	if got.Rows[5].Label != "cart_path" {
		t.Fatalf("unexpected fallback label: got=%q", got.Rows[5].Label)
	}
	if got.Rows[0].Label != "Water" {
		t.Fatalf("unexpected label: got=%q", got.Rows[0].Label)
	}
}

func TestAdviseHazards_SafeZoneFavorSide(t *testing.T) {
	zones := []HazardZone{{Name: "pond", Type: HazardWater, Direction: "right"}}

	t.Run("with direction", func(t *testing.T) {
		got := AdviseHazards(zones, nil, &SafeZone{Direction: "left", Description: "bail out left of the green"})
		if got.FavorSide != "left" {
			t.Fatalf("unexpected favor side: got=%q", got.FavorSide)
		}
	})

	t.Run("direction missing", func(t *testing.T) {
		got := AdviseHazards(zones, nil, &SafeZone{Description: "wide fairway"})
		if got.FavorSide != "" {
			t.Fatalf("expected no favor side, got=%q", got.FavorSide)
		}
	})
}
