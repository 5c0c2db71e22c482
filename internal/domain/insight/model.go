package insight

// Tendency is a precomputed behavioral note from the player-insights
// store. The engine only selects from these; it never computes them.
type Tendency struct {
	Type       string
	Key        string
	Confidence float64
	Data       TendencyData
}

type TendencyData struct {
	Description string
}

// Insight is one ephemeral, rendering-ready recap line.
type Insight struct {
	Icon string
	Text string
}
