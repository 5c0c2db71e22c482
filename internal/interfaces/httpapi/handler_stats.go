package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/birdielabs/caddie-api/internal/usecase"
)

type clubStatsDTO struct {
	Club        string `json:"club"`
	ClubName    string `json:"club_name"`
	TotalShots  int    `json:"total_shots"`
	Locked      bool   `json:"locked"`
	ShotsNeeded int    `json:"shots_needed,omitempty"`

	AvgDistance    *float64 `json:"avg_distance,omitempty"`
	MedianDistance *float64 `json:"median_distance,omitempty"`
	MinDistance    *float64 `json:"min_distance,omitempty"`
	MaxDistance    *float64 `json:"max_distance,omitempty"`
	Last10Avg      *float64 `json:"last_10_avg,omitempty"`

	MissLeftPct  *float64 `json:"miss_left_pct,omitempty"`
	MissRightPct *float64 `json:"miss_right_pct,omitempty"`
	MissShortPct *float64 `json:"miss_short_pct,omitempty"`
	MissLongPct  *float64 `json:"miss_long_pct,omitempty"`

	AvgOffline *float64 `json:"avg_offline,omitempty"`
	MissBias   string   `json:"miss_bias,omitempty"`

	DispersionRadius    *float64 `json:"dispersion_radius,omitempty"`
	LateralDispersion   *float64 `json:"lateral_dispersion,omitempty"`
	DistanceDispersion  *float64 `json:"distance_dispersion,omitempty"`
	AvgDistanceToTarget *float64 `json:"avg_distance_to_target,omitempty"`

	TendencyNote string `json:"tendency_note,omitempty"`
}

// GetClubStats returns the analytics view for one club. A locked view is a
// normal 200 response carrying only the progress counter.
func (h *Handler) GetClubStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubStats")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	rawClub := strings.TrimSpace(r.PathValue("club"))
	view, err := h.clubStatsService.GetClubStats(ctx, principal.UserID, rawClub)
	if err != nil {
		h.logger.WarnContext(ctx, "get club stats failed", "club", rawClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubStatsToDTO(view))
}

func clubStatsToDTO(view usecase.ClubStatsView) clubStatsDTO {
	item := view.Stats
	out := clubStatsDTO{
		Club:        string(item.Club),
		ClubName:    item.Club.DisplayName(),
		TotalShots:  item.TotalShots,
		Locked:      item.Locked,
		ShotsNeeded: item.ShotsNeeded,
	}
	if item.Locked {
		return out
	}

	out.AvgDistance = item.AvgDistance
	out.MedianDistance = item.MedianDistance
	out.MinDistance = item.MinDistance
	out.MaxDistance = item.MaxDistance
	out.Last10Avg = item.Last10Avg
	out.MissLeftPct = &item.MissLeftPct
	out.MissRightPct = &item.MissRightPct
	out.MissShortPct = &item.MissShortPct
	out.MissLongPct = &item.MissLongPct
	out.AvgOffline = item.AvgOffline
	out.MissBias = item.MissBias
	out.DispersionRadius = item.DispersionRadius
	out.LateralDispersion = item.LateralDispersion
	out.DistanceDispersion = item.DistanceDispersion
	out.AvgDistanceToTarget = item.AvgDistanceToTarget
	if view.HasTendency {
		out.TendencyNote = view.TendencyNote
	}
	return out
}
