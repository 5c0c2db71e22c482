package httpapi

import (
	"net/http"

	"github.com/birdielabs/caddie-api/internal/usecase"
)

type recapBackfillRequest struct {
	UserIDs    []string `json:"user_ids" validate:"required,min=1,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"min=0,max=32"`
}

func (h *Handler) RunRecapBackfillJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecapBackfillJob")
	defer span.End()

	var req recapBackfillRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.insightService.BackfillRecaps(ctx, usecase.BackfillRecapsInput{
		UserIDs:    req.UserIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recap backfill failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
