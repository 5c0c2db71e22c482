package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/infrastructure/repository/memory"
)

func TestRoundService_StartRound(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	startedAt := time.Date(2026, 8, 22, 7, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return startedAt }

	created, err := service.StartRound(t.Context(), StartRoundInput{
		UserID:     "user-1",
		CourseID:   "course-1",
		CourseName: "Pebble Creek Golf Club",
		TeeName:    "Blue",
	})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}

	if created.ID != "round-001" {
		t.Fatalf("unexpected round id: %q", created.ID)
	}
	if !created.StartedAt.Equal(startedAt) {
		t.Fatalf("unexpected started at: %s", created.StartedAt)
	}
	if created.Completed() {
		t.Fatalf("new round must not be completed")
	}
}

func TestRoundService_StartRound_RequiresCourseName(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	_, err := service.StartRound(t.Context(), StartRoundInput{UserID: "user-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoundService_RecordHoleScore_UpsertsByHole(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	created, err := service.StartRound(t.Context(), StartRoundInput{UserID: "user-1", CourseName: "Pebble Creek"})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}

	updated, err := service.RecordHoleScore(t.Context(), created.ID, "user-1", round.HoleScore{
		Hole: 1, Par: 4, Score: 5, Putts: 2, Fairway: round.FairwayMissRight,
	})
	if err != nil {
		t.Fatalf("record hole score: %v", err)
	}
	if len(updated.Holes) != 1 {
		t.Fatalf("unexpected hole count: %d", len(updated.Holes))
	}

	updated, err = service.RecordHoleScore(t.Context(), created.ID, "user-1", round.HoleScore{
		Hole: 1, Par: 4, Score: 4, Putts: 1, Fairway: round.FairwayHit,
	})
	if err != nil {
		t.Fatalf("re-record hole score: %v", err)
	}
	if len(updated.Holes) != 1 {
		t.Fatalf("upsert must replace the hole, got %d entries", len(updated.Holes))
	}
	if updated.Holes[0].Score != 4 {
		t.Fatalf("unexpected score after upsert: %d", updated.Holes[0].Score)
	}
}

func TestRoundService_RecordHoleScore_RejectsCompletedRound(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	created, err := service.StartRound(t.Context(), StartRoundInput{UserID: "user-1", CourseName: "Pebble Creek"})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	if _, err := service.RecordHoleScore(t.Context(), created.ID, "user-1", round.HoleScore{Hole: 1, Par: 4, Score: 4}); err != nil {
		t.Fatalf("record hole score: %v", err)
	}
	if _, _, err := service.CompleteRound(t.Context(), created.ID, "user-1"); err != nil {
		t.Fatalf("complete round: %v", err)
	}

	_, err = service.RecordHoleScore(t.Context(), created.ID, "user-1", round.HoleScore{Hole: 2, Par: 3, Score: 3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for completed round, got %v", err)
	}
}

func TestRoundService_CompleteRound(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	completedAt := time.Date(2026, 8, 22, 11, 50, 0, 0, time.UTC)
	service.now = func() time.Time { return completedAt }

	created, err := service.StartRound(t.Context(), StartRoundInput{UserID: "user-1", CourseName: "Pebble Creek"})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	for hole := 1; hole <= 9; hole++ {
		if _, err := service.RecordHoleScore(t.Context(), created.ID, "user-1", round.HoleScore{
			Hole: hole, Par: 4, Score: 5, Putts: 2, Fairway: round.FairwayMissRight,
		}); err != nil {
			t.Fatalf("record hole %d: %v", hole, err)
		}
	}

	completed, insights, err := service.CompleteRound(t.Context(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("complete round: %v", err)
	}
	if !completed.Completed() {
		t.Fatalf("round must be completed")
	}
	if !completed.CompletedAt.Equal(completedAt) {
		t.Fatalf("unexpected completed at: %s", completed.CompletedAt)
	}
	if len(insights) == 0 || len(insights) > 5 {
		t.Fatalf("unexpected insight count: %d", len(insights))
	}

	_, _, err = service.CompleteRound(t.Context(), created.ID, "user-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for double completion, got %v", err)
	}
}

func TestRoundService_CompleteRound_RequiresHoleScores(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	created, err := service.StartRound(t.Context(), StartRoundInput{UserID: "user-1", CourseName: "Pebble Creek"})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}

	_, _, err = service.CompleteRound(t.Context(), created.ID, "user-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty round, got %v", err)
	}
}

func TestRoundService_GetRound_Ownership(t *testing.T) {
	service := NewRoundService(memory.NewRoundRepository(), memory.NewShotRepository(), staticIDGenerator{id: "round-001"})

	created, err := service.StartRound(t.Context(), StartRoundInput{UserID: "owner", CourseName: "Pebble Creek"})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}

	if _, err := service.GetRound(t.Context(), created.ID, "intruder"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := service.GetRound(t.Context(), "missing", "owner"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
