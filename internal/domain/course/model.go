package course

type Hole struct {
	Number int
	Par    int
	Yards  int
}

type Tee struct {
	Name       string
	Color      string
	TotalYards int
	Rating     float64
	Slope      int
}

// Course is a catalog entry from the external course service.
type Course struct {
	ID        string
	Name      string
	City      string
	State     string
	Latitude  float64
	Longitude float64
	Tees      []Tee
	Holes     []Hole
}

var teeColorHex = map[string]string{
	"black":  "#111111",
	"blue":   "#1e5aa8",
	"white":  "#f5f5f5",
	"gold":   "#c9a227",
	"yellow": "#e3c219",
	"green":  "#2e7d32",
	"red":    "#c0392b",
	"silver": "#a8a8a8",
}

const teeColorFallbackHex = "#9e9e9e"

// TeeColorHex maps a tee color name to its display hex, with an explicit
// fallback for colors outside the table.
func TeeColorHex(color string) string {
	if hex, ok := teeColorHex[color]; ok {
		return hex
	}
	return teeColorFallbackHex
}
