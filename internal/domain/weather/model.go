package weather

import "time"

type Wind struct {
	SpeedMPH  float64
	Direction string
	GustsMPH  float64
}

type Current struct {
	TempF         float64
	FeelsLikeF    float64
	Condition     string
	Wind          Wind
	Humidity      float64
	Precipitation float64
}

type ForecastEntry struct {
	Time      time.Time
	Icon      string
	TempF     float64
	WindMPH   float64
	PrecipPct float64
}

// Snapshot is the weather view consumed by shot preview; it is produced by
// the weather provider, never computed here.
type Snapshot struct {
	Current  Current
	Forecast []ForecastEntry
}
