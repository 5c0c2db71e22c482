package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/birdielabs/caddie-api/internal/usecase"
)

type Handler struct {
	shotService      *usecase.ShotService
	clubStatsService *usecase.ClubStatsService
	roundService     *usecase.RoundService
	insightService   *usecase.InsightService
	courseService    *usecase.CourseService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	shotService *usecase.ShotService,
	clubStatsService *usecase.ClubStatsService,
	roundService *usecase.RoundService,
	insightService *usecase.InsightService,
	courseService *usecase.CourseService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		shotService:      shotService,
		clubStatsService: clubStatsService,
		roundService:     roundService,
		insightService:   insightService,
		courseService:    courseService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
