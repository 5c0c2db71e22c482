package club

import "strings"

// Club identifies one club in a standard bag.
type Club string

const (
	Driver  Club = "driver"
	Wood3   Club = "3_wood"
	Wood5   Club = "5_wood"
	Hybrid4 Club = "4_hybrid"
	Hybrid5 Club = "5_hybrid"
	Iron3   Club = "3_iron"
	Iron4   Club = "4_iron"
	Iron5   Club = "5_iron"
	Iron6   Club = "6_iron"
	Iron7   Club = "7_iron"
	Iron8   Club = "8_iron"
	Iron9   Club = "9_iron"
	PW      Club = "pw"
	GW      Club = "gw"
	SW      Club = "sw"
	LW      Club = "lw"
	Putter  Club = "putter"
)

var All = map[Club]struct{}{
	Driver:  {},
	Wood3:   {},
	Wood5:   {},
	Hybrid4: {},
	Hybrid5: {},
	Iron3:   {},
	Iron4:   {},
	Iron5:   {},
	Iron6:   {},
	Iron7:   {},
	Iron8:   {},
	Iron9:   {},
	PW:      {},
	GW:      {},
	SW:      {},
	LW:      {},
	Putter:  {},
}

var displayNames = map[Club]string{
	Driver:  "Driver",
	Wood3:   "3 Wood",
	Wood5:   "5 Wood",
	Hybrid4: "4 Hybrid",
	Hybrid5: "5 Hybrid",
	Iron3:   "3 Iron",
	Iron4:   "4 Iron",
	Iron5:   "5 Iron",
	Iron6:   "6 Iron",
	Iron7:   "7 Iron",
	Iron8:   "8 Iron",
	Iron9:   "9 Iron",
	PW:      "Pitching Wedge",
	GW:      "Gap Wedge",
	SW:      "Sand Wedge",
	LW:      "Lob Wedge",
	Putter:  "Putter",
}

var aliases = map[string]Club{
	"d":              Driver,
	"1w":             Driver,
	"3w":             Wood3,
	"3 wood":         Wood3,
	"5w":             Wood5,
	"5 wood":         Wood5,
	"4h":             Hybrid4,
	"4 hybrid":       Hybrid4,
	"5h":             Hybrid5,
	"5 hybrid":       Hybrid5,
	"3i":             Iron3,
	"4i":             Iron4,
	"5i":             Iron5,
	"6i":             Iron6,
	"7i":             Iron7,
	"8i":             Iron8,
	"9i":             Iron9,
	"3 iron":         Iron3,
	"4 iron":         Iron4,
	"5 iron":         Iron5,
	"6 iron":         Iron6,
	"7 iron":         Iron7,
	"8 iron":         Iron8,
	"9 iron":         Iron9,
	"pitching wedge": PW,
	"gap wedge":      GW,
	"sand wedge":     SW,
	"lob wedge":      LW,
	"p":              Putter,
}

func (c Club) IsValid() bool {
	_, ok := All[c]
	return ok
}

// DisplayName returns the human label for the club, falling back to the raw
// identifier for anything outside the enumeration.
func (c Club) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Parse normalizes free-form club input into the canonical enumeration.
func Parse(raw string) (Club, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if c := Club(normalized); c.IsValid() {
		return c, true
	}
	if c, ok := aliases[strings.ReplaceAll(normalized, "_", " ")]; ok {
		return c, true
	}
	return "", false
}
