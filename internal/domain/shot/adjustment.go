package shot

import (
	"fmt"
	"math"
)

const (
	// Effects under one yard are hidden from the breakdown but still count
	// toward the effective distance.
	displayEffectMinYards = 1.0
	// Aim corrections under three yards are treated as noise.
	aimGuidanceMinYards = 3.0
)

// AdjustmentRow is one displayed line of the plays-like breakdown.
type AdjustmentRow struct {
	Label       string
	Icon        string
	EffectYards float64
	Detail      string
}

// Breakdown is the rendering-ready plays-like summary for one shot.
// Delta always equals the exact signed sum of every present effect,
// independent of which rows passed the display filter.
type Breakdown struct {
	Rows    []AdjustmentRow
	AimNote string
	Delta   float64
}

// BuildBreakdown computes the adjustment rows and total delta for a shot.
// Absent detail records contribute no rows and no delta; the function is
// total over its inputs.
func BuildBreakdown(adj Adjustments) Breakdown {
	out := Breakdown{Rows: make([]AdjustmentRow, 0, 4)}

	if wind := adj.Wind; wind != nil {
		out.Delta += wind.DistanceEffect
		if math.Abs(wind.DistanceEffect) >= displayEffectMinYards {
			out.Rows = append(out.Rows, AdjustmentRow{
				Label:       "Wind",
				Icon:        "wind",
				EffectYards: wind.DistanceEffect,
				Detail:      wind.WindEffect,
			})
		}
		if wind.AimOffsetYards >= aimGuidanceMinYards && wind.AimDirection != "" {
			out.AimNote = fmt.Sprintf("Aim %.0f yards %s for wind", wind.AimOffsetYards, wind.AimDirection)
		}
	}

	if temp := adj.Temperature; temp != nil {
		out.Delta += temp.DistanceEffect
		if math.Abs(temp.DistanceEffect) >= displayEffectMinYards {
			out.Rows = append(out.Rows, AdjustmentRow{
				Label:       "Temperature",
				Icon:        "thermometer",
				EffectYards: temp.DistanceEffect,
				Detail:      temp.Description,
			})
		}
	}

	if elev := adj.Elevation; elev != nil {
		out.Delta += elev.SlopeEffect
		if math.Abs(elev.SlopeEffect) >= displayEffectMinYards {
			label, icon := "Downhill", "arrow-down"
			if elev.ElevationDelta > 0 {
				label, icon = "Uphill", "arrow-up"
			}
			out.Rows = append(out.Rows, AdjustmentRow{
				Label:       label,
				Icon:        icon,
				EffectYards: elev.SlopeEffect,
				Detail:      fmt.Sprintf("%.0f ft elevation change", elev.ElevationDelta),
			})
		}

		// Thinner air carries farther, so altitude shortens what the shot
		// plays like.
		out.Delta += -elev.AltitudeEffect
		if math.Abs(elev.AltitudeEffect) >= displayEffectMinYards {
			out.Rows = append(out.Rows, AdjustmentRow{
				Label:       "Altitude",
				Icon:        "mountain",
				EffectYards: -elev.AltitudeEffect,
				Detail:      "thin air carries the ball",
			})
		}
	}

	return out
}

// EffectiveDistance applies the full adjustment delta to a nominal distance.
func EffectiveDistance(distance float64, adj Adjustments) float64 {
	return distance + BuildBreakdown(adj).Delta
}
