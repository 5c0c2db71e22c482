package round

import (
	"fmt"
	"time"
)

type FairwayResult string

const (
	FairwayHit       FairwayResult = "hit"
	FairwayMissLeft  FairwayResult = "miss_left"
	FairwayMissRight FairwayResult = "miss_right"
	FairwayNA        FairwayResult = "na"
)

// HoleScore is one played hole. A zero-value Fairway means the result was
// not recorded; GIR nil means not recorded.
type HoleScore struct {
	Hole      int
	Par       int
	Score     int
	Putts     int
	Fairway   FairwayResult
	GIR       *bool
	Penalties int
}

func (h HoleScore) OverUnder() int {
	return h.Score - h.Par
}

func (h HoleScore) ValidateBasic() error {
	if h.Hole < 1 {
		return fmt.Errorf("hole number must be greater than zero")
	}
	if h.Par < 3 || h.Par > 6 {
		return fmt.Errorf("par must be between 3 and 6")
	}
	if h.Score < 1 {
		return fmt.Errorf("score must be greater than zero")
	}
	if h.Putts < 0 {
		return fmt.Errorf("putts cannot be negative")
	}
	if h.Penalties < 0 {
		return fmt.Errorf("penalties cannot be negative")
	}
	return nil
}

// Round groups the hole-by-hole score log for one outing.
type Round struct {
	ID          string
	UserID      string
	CourseID    string
	CourseName  string
	TeeName     string
	StartedAt   time.Time
	CompletedAt *time.Time
	Holes       []HoleScore
}

func (r Round) Completed() bool {
	return r.CompletedAt != nil
}

func (r Round) TotalPenalties() int {
	total := 0
	for _, hole := range r.Holes {
		total += hole.Penalties
	}
	return total
}
