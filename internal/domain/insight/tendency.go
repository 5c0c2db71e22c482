package insight

import (
	"github.com/birdielabs/caddie-api/internal/domain/club"
)

const (
	TendencyTypeClubBias = "club_bias"

	// Notes below this confidence are too weak to surface.
	tendencyConfidenceMin = 0.3
)

// SelectClubTendency picks the single relevant bias note for a club, or
// nothing. At most one note is ever surfaced per club.
func SelectClubTendency(items []Tendency, c club.Club) (string, bool) {
	key := string(c) + "_miss"
	for _, item := range items {
		if item.Type != TendencyTypeClubBias || item.Key != key {
			continue
		}
		if item.Confidence < tendencyConfidenceMin {
			continue
		}
		return item.Data.Description, true
	}
	return "", false
}
