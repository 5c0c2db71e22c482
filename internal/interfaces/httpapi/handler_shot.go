package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/birdielabs/caddie-api/internal/domain/shot"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

type previewShotRequest struct {
	Club               string             `json:"club" validate:"required"`
	Distance           float64            `json:"distance" validate:"required,gt=0"`
	TargetBearing      float64            `json:"target_bearing" validate:"gte=0,lt=360"`
	Latitude           float64            `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude          float64            `json:"longitude" validate:"gte=-180,lte=180"`
	ElevationDeltaFeet float64            `json:"elevation_delta_feet"`
	AvoidZones         []avoidZoneRequest `json:"avoid_zones" validate:"dive"`
	SafeZone           *safeZoneRequest   `json:"safe_zone"`
	Warnings           []string           `json:"warnings"`
}

type avoidZoneRequest struct {
	Name           string  `json:"name"`
	Type           string  `json:"type" validate:"required"`
	DistanceToEdge float64 `json:"distance_to_edge"`
	Direction      string  `json:"direction"`
}

type safeZoneRequest struct {
	Direction   string `json:"direction"`
	Description string `json:"description"`
}

type recordShotRequest struct {
	Club             string   `json:"club" validate:"required"`
	Distance         float64  `json:"distance" validate:"required,gt=0"`
	DistanceActual   *float64 `json:"distance_actual"`
	DistanceOffline  *float64 `json:"distance_offline"`
	DistanceToTarget *float64 `json:"distance_to_target"`
	Result           string   `json:"result"`
	LieType          string   `json:"lie_type"`
}

type adjustmentRowDTO struct {
	Label       string  `json:"label"`
	Icon        string  `json:"icon"`
	EffectYards float64 `json:"effect_yards"`
	Detail      string  `json:"detail,omitempty"`
}

type hazardRowDTO struct {
	Label          string  `json:"label"`
	Name           string  `json:"name,omitempty"`
	Direction      string  `json:"direction,omitempty"`
	DistanceToEdge float64 `json:"distance_to_edge"`
	Severity       string  `json:"severity"`
}

type hazardSummaryDTO struct {
	NoHazards bool           `json:"no_hazards"`
	Rows      []hazardRowDTO `json:"rows,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
	FavorSide string         `json:"favor_side,omitempty"`
	FavorNote string         `json:"favor_note,omitempty"`
}

type shotPreviewDTO struct {
	Club              string             `json:"club"`
	ClubName          string             `json:"club_name"`
	Distance          float64            `json:"distance"`
	EffectiveDistance float64            `json:"effective_distance"`
	Delta             float64            `json:"delta"`
	Adjustments       []adjustmentRowDTO `json:"adjustments"`
	AimNote           string             `json:"aim_note,omitempty"`
	Hazards           hazardSummaryDTO   `json:"hazards"`
	Confidence        string             `json:"confidence"`
	WeatherNotes      []string           `json:"weather_notes,omitempty"`
}

type shotDTO struct {
	ID               string   `json:"id"`
	RoundID          string   `json:"round_id"`
	ShotNumber       int      `json:"shot_number"`
	Club             string   `json:"club"`
	Distance         float64  `json:"distance"`
	DistanceActual   *float64 `json:"distance_actual,omitempty"`
	DistanceOffline  *float64 `json:"distance_offline,omitempty"`
	DistanceToTarget *float64 `json:"distance_to_target,omitempty"`
	Result           string   `json:"result,omitempty"`
	LieType          string   `json:"lie_type,omitempty"`
}

func (h *Handler) PreviewShot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewShot")
	defer span.End()

	var req previewShotRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.PreviewShotInput{
		Club:               req.Club,
		Distance:           req.Distance,
		TargetBearing:      req.TargetBearing,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		ElevationDeltaFeet: req.ElevationDeltaFeet,
		Warnings:           req.Warnings,
	}
	for _, zone := range req.AvoidZones {
		input.AvoidZones = append(input.AvoidZones, shot.HazardZone{
			Name:           zone.Name,
			Type:           shot.HazardType(strings.TrimSpace(zone.Type)),
			DistanceToEdge: zone.DistanceToEdge,
			Direction:      zone.Direction,
		})
	}
	if req.SafeZone != nil {
		input.SafeZone = &shot.SafeZone{
			Direction:   req.SafeZone.Direction,
			Description: req.SafeZone.Description,
		}
	}

	preview, err := h.shotService.PreviewShot(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "preview shot failed", "club", req.Club, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, previewToDTO(preview))
}

func (h *Handler) RecordShot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordShot")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req recordShotRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.shotService.RecordShot(ctx, usecase.RecordShotInput{
		RoundID:          roundID,
		UserID:           principal.UserID,
		Club:             req.Club,
		Distance:         req.Distance,
		DistanceActual:   req.DistanceActual,
		DistanceOffline:  req.DistanceOffline,
		DistanceToTarget: req.DistanceToTarget,
		Result:           req.Result,
		LieType:          req.LieType,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record shot failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// The club's cached analytics view is stale as soon as the shot lands.
	h.clubStatsService.InvalidateClubStats(ctx, principal.UserID, item.Club)

	writeSuccess(ctx, w, http.StatusCreated, shotToDTO(item))
}

func (h *Handler) ListRoundShots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundShots")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	items, err := h.shotService.ListRoundShots(ctx, roundID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list round shots failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]shotDTO, 0, len(items))
	for _, item := range items {
		out = append(out, shotToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func previewToDTO(preview usecase.ShotPreview) shotPreviewDTO {
	out := shotPreviewDTO{
		Club:              string(preview.Club),
		ClubName:          preview.Club.DisplayName(),
		Distance:          preview.Distance,
		EffectiveDistance: preview.EffectiveDistance,
		Delta:             preview.Breakdown.Delta,
		AimNote:           preview.Breakdown.AimNote,
		Hazards:           hazardSummaryToDTO(preview.Hazards),
		Confidence:        string(preview.Confidence),
		WeatherNotes:      preview.WeatherNotes,
	}
	out.Adjustments = make([]adjustmentRowDTO, 0, len(preview.Breakdown.Rows))
	for _, row := range preview.Breakdown.Rows {
		out.Adjustments = append(out.Adjustments, adjustmentRowDTO{
			Label:       row.Label,
			Icon:        row.Icon,
			EffectYards: row.EffectYards,
			Detail:      row.Detail,
		})
	}
	return out
}

func hazardSummaryToDTO(summary shot.HazardSummary) hazardSummaryDTO {
	out := hazardSummaryDTO{
		NoHazards: summary.NoHazards,
		Warnings:  summary.Warnings,
		FavorSide: summary.FavorSide,
		FavorNote: summary.FavorNote,
	}
	for _, row := range summary.Rows {
		out.Rows = append(out.Rows, hazardRowDTO{
			Label:          row.Label,
			Name:           row.Name,
			Direction:      row.Direction,
			DistanceToEdge: row.DistanceToEdge,
			Severity:       string(row.Severity),
		})
	}
	return out
}

func shotToDTO(item shot.Shot) shotDTO {
	return shotDTO{
		ID:               item.ID,
		RoundID:          item.RoundID,
		ShotNumber:       item.ShotNumber,
		Club:             string(item.Club),
		Distance:         item.Distance,
		DistanceActual:   item.DistanceActual,
		DistanceOffline:  item.DistanceOffline,
		DistanceToTarget: item.DistanceToTarget,
		Result:           item.Result,
		LieType:          item.LieType,
	}
}
