package shot

type SeverityClass string

const (
	SeverityRed   SeverityClass = "red"
	SeverityAmber SeverityClass = "amber"
)

var hazardLabels = map[HazardType]string{
	HazardWater:       "Water",
	HazardOutOfBounds: "Out of Bounds",
	HazardPenalty:     "Penalty Area",
	HazardBunker:      "Bunker",
	HazardWasteArea:   "Waste Area",
}

var hazardSeverities = map[HazardType]SeverityClass{
	HazardWater:       SeverityRed,
	HazardOutOfBounds: SeverityRed,
	HazardPenalty:     SeverityRed,
	HazardBunker:      SeverityAmber,
	HazardWasteArea:   SeverityAmber,
}

// HazardRow is one rendering-ready hazard line.
type HazardRow struct {
	Label          string
	Name           string
	Direction      string
	DistanceToEdge float64
	Severity       SeverityClass
}

// HazardSummary is the advisor output for one shot. NoHazards is an
// explicit terminal state, not the absence of data.
type HazardSummary struct {
	NoHazards bool
	Rows      []HazardRow
	Warnings  []string
	FavorSide string
	FavorNote string
}

// HazardLabel maps a hazard type to its display label, falling back to the
// raw identifier for unknown types.
func HazardLabel(t HazardType) string {
	if label, ok := hazardLabels[t]; ok {
		return label
	}
	return string(t)
}

func hazardSeverity(t HazardType) SeverityClass {
	if severity, ok := hazardSeverities[t]; ok {
		return severity
	}
	return SeverityAmber
}

// AdviseHazards builds the hazard summary for one shot: one row per avoid
// zone, then the free-text warnings, then the safe-zone recommendation when
// a direction is present.
func AdviseHazards(zones []HazardZone, warnings []string, safe *SafeZone) HazardSummary {
	if len(zones) == 0 && len(warnings) == 0 {
		return HazardSummary{NoHazards: true}
	}

	out := HazardSummary{
		Rows:     make([]HazardRow, 0, len(zones)),
		Warnings: append([]string(nil), warnings...),
	}
	for _, zone := range zones {
		out.Rows = append(out.Rows, HazardRow{
			Label:          HazardLabel(zone.Type),
			Name:           zone.Name,
			Direction:      zone.Direction,
			DistanceToEdge: zone.DistanceToEdge,
			Severity:       hazardSeverity(zone.Type),
		})
	}

	if safe != nil && safe.Direction != "" {
		out.FavorSide = safe.Direction
		out.FavorNote = safe.Description
	}

	return out
}
