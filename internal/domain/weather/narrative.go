package weather

import "fmt"

const (
	idealTempMinF = 60
	idealTempMaxF = 75
	coldTempMaxF  = 50
	hotTempMinF   = 85

	lightWindMaxMPH  = 10
	strongWindMinMPH = 20
)

// DescribeTemperature maps the current temperature onto a fixed narrative
// band for display alongside the conditions panel.
func DescribeTemperature(tempF float64) string {
	switch {
	case tempF >= idealTempMinF && tempF <= idealTempMaxF:
		return "Ideal scoring temperature"
	case tempF < coldTempMaxF:
		return fmt.Sprintf("Cold (%.0f°F), the ball flies shorter, club up", tempF)
	case tempF > hotTempMinF:
		return fmt.Sprintf("Hot (%.0f°F), expect a little extra carry", tempF)
	default:
		return fmt.Sprintf("Comfortable at %.0f°F", tempF)
	}
}

func DescribeWind(w Wind) string {
	switch {
	case w.SpeedMPH < lightWindMaxMPH:
		return "Light wind, play your normal game"
	case w.SpeedMPH >= strongWindMinMPH:
		return fmt.Sprintf("Strong %s wind at %.0f mph, keep the ball low", w.Direction, w.SpeedMPH)
	default:
		return fmt.Sprintf("Breezy %s wind at %.0f mph, factor it on longer shots", w.Direction, w.SpeedMPH)
	}
}

// Notes builds the conditions narrative shown above the shot panel.
func Notes(current Current) []string {
	out := []string{
		DescribeTemperature(current.TempF),
		DescribeWind(current.Wind),
	}
	if current.Precipitation > 0 {
		out = append(out, "Wet conditions, expect less roll")
	}
	return out
}
