package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/insight"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
	"github.com/birdielabs/caddie-api/internal/platform/id"
)

type StartRoundInput struct {
	UserID     string
	CourseID   string
	CourseName string
	TeeName    string
}

type RoundService struct {
	roundRepo round.Repository
	shotRepo  shot.Repository
	idGen     id.Generator
	now       func() time.Time
}

func NewRoundService(roundRepo round.Repository, shotRepo shot.Repository, idGen id.Generator) *RoundService {
	return &RoundService{
		roundRepo: roundRepo,
		shotRepo:  shotRepo,
		idGen:     idGen,
		now:       time.Now,
	}
}

func (s *RoundService) StartRound(ctx context.Context, input StartRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.StartRound")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.CourseName = strings.TrimSpace(input.CourseName)
	if input.UserID == "" {
		return round.Round{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.CourseName == "" {
		return round.Round{}, fmt.Errorf("%w: course_name is required", ErrInvalidInput)
	}

	roundID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate round id: %w", err)
	}

	item := round.Round{
		ID:         roundID,
		UserID:     input.UserID,
		CourseID:   strings.TrimSpace(input.CourseID),
		CourseName: input.CourseName,
		TeeName:    strings.TrimSpace(input.TeeName),
		StartedAt:  s.now().UTC(),
	}
	if err := s.roundRepo.Create(ctx, item); err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}
	return item, nil
}

func (s *RoundService) GetRound(ctx context.Context, roundID, userID string) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.GetRound")
	defer span.End()

	return s.ownedRound(ctx, roundID, userID)
}

// RecordHoleScore upserts one hole's score line. Completed rounds are
// immutable.
func (s *RoundService) RecordHoleScore(ctx context.Context, roundID, userID string, score round.HoleScore) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.RecordHoleScore")
	defer span.End()

	item, err := s.ownedRound(ctx, roundID, userID)
	if err != nil {
		return round.Round{}, err
	}
	if item.Completed() {
		return round.Round{}, fmt.Errorf("%w: round is already completed", ErrInvalidInput)
	}
	if err := score.ValidateBasic(); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.roundRepo.UpsertHoleScore(ctx, item.ID, score); err != nil {
		return round.Round{}, fmt.Errorf("upsert hole score: %w", err)
	}

	item, _, err = s.roundRepo.GetByID(ctx, item.ID)
	if err != nil {
		return round.Round{}, fmt.Errorf("reload round: %w", err)
	}
	return item, nil
}

// CompleteRound marks the round finished and returns its recap insights.
// The recap is recomputed from the logs, never stored.
func (s *RoundService) CompleteRound(ctx context.Context, roundID, userID string) (round.Round, []insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.CompleteRound")
	defer span.End()

	item, err := s.ownedRound(ctx, roundID, userID)
	if err != nil {
		return round.Round{}, nil, err
	}
	if item.Completed() {
		return round.Round{}, nil, fmt.Errorf("%w: round is already completed", ErrInvalidInput)
	}
	if len(item.Holes) == 0 {
		return round.Round{}, nil, fmt.Errorf("%w: round has no hole scores", ErrInvalidInput)
	}

	completedAt := s.now().UTC()
	if err := s.roundRepo.MarkCompleted(ctx, item.ID, completedAt); err != nil {
		return round.Round{}, nil, fmt.Errorf("mark round completed: %w", err)
	}
	item.CompletedAt = &completedAt

	shots, err := s.shotRepo.ListByRound(ctx, item.ID)
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("list round shots: %w", err)
	}

	return item, insight.GenerateRound(item.Holes, shots), nil
}

func (s *RoundService) ownedRound(ctx context.Context, roundID, userID string) (round.Round, error) {
	roundID = strings.TrimSpace(roundID)
	userID = strings.TrimSpace(userID)
	if roundID == "" {
		return round.Round{}, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}
	if userID == "" {
		return round.Round{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round %s", ErrNotFound, roundID)
	}
	if item.UserID != userID {
		return round.Round{}, fmt.Errorf("%w: round belongs to another user", ErrUnauthorized)
	}
	return item, nil
}
