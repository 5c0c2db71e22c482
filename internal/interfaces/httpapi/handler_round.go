package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/insight"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

type startRoundRequest struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name" validate:"required,max=200"`
	TeeName    string `json:"tee_name" validate:"max=50"`
}

type recordHoleScoreRequest struct {
	Hole      int    `json:"hole" validate:"required,min=1,max=18"`
	Par       int    `json:"par" validate:"required,min=3,max=6"`
	Score     int    `json:"score" validate:"required,min=1"`
	Putts     int    `json:"putts" validate:"min=0"`
	Fairway   string `json:"fairway" validate:"omitempty,oneof=hit miss_left miss_right na"`
	GIR       *bool  `json:"gir"`
	Penalties int    `json:"penalties" validate:"min=0"`
}

type holeScoreDTO struct {
	Hole      int    `json:"hole"`
	Par       int    `json:"par"`
	Score     int    `json:"score"`
	OverUnder int    `json:"over_under"`
	Putts     int    `json:"putts"`
	Fairway   string `json:"fairway,omitempty"`
	GIR       *bool  `json:"gir,omitempty"`
	Penalties int    `json:"penalties"`
}

type roundDTO struct {
	ID          string         `json:"id"`
	CourseID    string         `json:"course_id,omitempty"`
	CourseName  string         `json:"course_name"`
	TeeName     string         `json:"tee_name,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Holes       []holeScoreDTO `json:"holes"`
}

type insightDTO struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type completeRoundDTO struct {
	Round    roundDTO     `json:"round"`
	Insights []insightDTO `json:"insights"`
}

func (h *Handler) StartRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartRound")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req startRoundRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.StartRound(ctx, usecase.StartRoundInput{
		UserID:     principal.UserID,
		CourseID:   req.CourseID,
		CourseName: req.CourseName,
		TeeName:    req.TeeName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start round failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(item))
}

func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRound")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	item, err := h.roundService.GetRound(ctx, roundID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) RecordHoleScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordHoleScore")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req recordHoleScoreRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.RecordHoleScore(ctx, roundID, principal.UserID, round.HoleScore{
		Hole:      req.Hole,
		Par:       req.Par,
		Score:     req.Score,
		Putts:     req.Putts,
		Fairway:   round.FairwayResult(req.Fairway),
		GIR:       req.GIR,
		Penalties: req.Penalties,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record hole score failed", "round_id", roundID, "hole", req.Hole, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) CompleteRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteRound")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	item, insights, err := h.roundService.CompleteRound(ctx, roundID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, completeRoundDTO{
		Round:    roundToDTO(item),
		Insights: insightsToDTO(insights),
	})
}

func (h *Handler) GetRoundInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoundInsights")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	items, err := h.insightService.GetRoundInsights(ctx, roundID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round insights failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, insightsToDTO(items))
}

func roundToDTO(item round.Round) roundDTO {
	out := roundDTO{
		ID:          item.ID,
		CourseID:    item.CourseID,
		CourseName:  item.CourseName,
		TeeName:     item.TeeName,
		StartedAt:   item.StartedAt,
		CompletedAt: item.CompletedAt,
		Holes:       make([]holeScoreDTO, 0, len(item.Holes)),
	}
	for _, hole := range item.Holes {
		out.Holes = append(out.Holes, holeScoreDTO{
			Hole:      hole.Hole,
			Par:       hole.Par,
			Score:     hole.Score,
			OverUnder: hole.OverUnder(),
			Putts:     hole.Putts,
			Fairway:   string(hole.Fairway),
			GIR:       hole.GIR,
			Penalties: hole.Penalties,
		})
	}
	return out
}

func insightsToDTO(items []insight.Insight) []insightDTO {
	out := make([]insightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, insightDTO{Icon: item.Icon, Text: item.Text})
	}
	return out
}
