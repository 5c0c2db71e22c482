package stats

import (
	"math"
	"sort"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
)

const (
	// MinShotsForStats gates the whole analytics view; below it only a
	// progress message may be shown.
	MinShotsForStats = 5

	last10Window = 10

	// Average offline inside this band counts as a neutral club.
	missBiasDeadbandYards = 2.0
)

// Aggregate computes ClubStats from one club's full shot history, expected
// in chronological order. Shots missing a measurement are excluded from
// that measurement's denominator rather than counted as zero.
func Aggregate(c club.Club, shots []shot.Shot) ClubStats {
	out := ClubStats{
		Club:       c,
		TotalShots: len(shots),
	}
	if out.TotalShots < MinShotsForStats {
		out.Locked = true
		out.ShotsNeeded = MinShotsForStats - out.TotalShots
		return out
	}

	distances := make([]float64, 0, len(shots))
	for _, item := range shots {
		if item.DistanceActual != nil && *item.DistanceActual > 0 {
			distances = append(distances, *item.DistanceActual)
		}
	}
	if len(distances) > 0 {
		out.AvgDistance = ptr(mean(distances))
		out.MedianDistance = ptr(median(distances))
		out.MinDistance = ptr(minOf(distances))
		out.MaxDistance = ptr(maxOf(distances))
		out.DistanceDispersion = ptr(stddev(distances))

		recent := distances
		if len(recent) > last10Window {
			recent = recent[len(recent)-last10Window:]
		}
		out.Last10Avg = ptr(mean(recent))
	}

	offlines := make([]float64, 0, len(shots))
	for _, item := range shots {
		if item.DistanceOffline != nil {
			offlines = append(offlines, *item.DistanceOffline)
		}
	}
	if len(offlines) > 0 {
		left, right := 0, 0
		for _, v := range offlines {
			switch {
			case v < 0:
				left++
			case v > 0:
				right++
			}
		}
		out.MissLeftPct = pct(left, len(offlines))
		out.MissRightPct = pct(right, len(offlines))

		avgOffline := mean(offlines)
		out.AvgOffline = ptr(avgOffline)
		out.LateralDispersion = ptr(stddev(offlines))
		switch {
		case avgOffline > missBiasDeadbandYards:
			out.MissBias = "Right"
		case avgOffline < -missBiasDeadbandYards:
			out.MissBias = "Left"
		default:
			out.MissBias = "Center"
		}
	}

	// Short/long buckets compare actual carry against the shot's target
	// distance, using the same deadband as the lateral bias call.
	short, long, measured := 0, 0, 0
	for _, item := range shots {
		if item.DistanceActual == nil || *item.DistanceActual <= 0 || item.Distance <= 0 {
			continue
		}
		measured++
		diff := *item.DistanceActual - item.Distance
		switch {
		case diff < -missBiasDeadbandYards:
			short++
		case diff > missBiasDeadbandYards:
			long++
		}
	}
	if measured > 0 {
		out.MissShortPct = pct(short, measured)
		out.MissLongPct = pct(long, measured)
	}

	targets := make([]float64, 0, len(shots))
	for _, item := range shots {
		if item.DistanceToTarget != nil && *item.DistanceToTarget > 0 {
			targets = append(targets, *item.DistanceToTarget)
		}
	}
	if len(targets) > 0 {
		out.AvgDistanceToTarget = ptr(mean(targets))
	}

	if out.LateralDispersion != nil && out.DistanceDispersion != nil {
		radius := math.Hypot(*out.LateralDispersion, *out.DistanceDispersion)
		out.DispersionRadius = ptr(radius)
	}

	return out
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

func maxOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	total := 0.0
	for _, v := range values {
		diff := v - avg
		total += diff * diff
	}
	return math.Sqrt(total / float64(len(values)))
}

func pct(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

func ptr(v float64) *float64 {
	return &v
}
