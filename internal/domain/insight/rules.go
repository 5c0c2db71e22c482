package insight

import (
	"fmt"
	"math"
	"sort"

	"github.com/birdielabs/caddie-api/internal/domain/club"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
)

const (
	maxRoundInsights = 5

	minDriverShots        = 2
	minMissSamples        = 5
	missOfflineMinYards   = 2.0
	missSkewThreshold     = 0.65
	minParGroupHoles      = 3
	par3BadCumulative     = 3
	penaltyWarnThreshold  = 3
	cleanRoundMinHoles    = 9
	minHolesPerNine       = 9
	fadedNineGap          = 4
	strongFinishNineGap   = -3
	minApproachShots      = 2
	accurateClubMaxYards  = 30.0
)

type roundRule func(holes []round.HoleScore, shots []shot.Shot) (Insight, bool)

// Rule order is the display priority; the cap truncates the tail.
var roundRules = []roundRule{
	driverDistanceRule,
	missDirectionRule,
	par3PerformanceRule,
	par5PerformanceRule,
	penaltyRule,
	nineSplitRule,
	accurateApproachRule,
}

// GenerateRound evaluates every recap rule in priority order over a
// completed round and returns at most five insights. Rules whose
// preconditions fail are silent, never an error.
func GenerateRound(holes []round.HoleScore, shots []shot.Shot) []Insight {
	out := make([]Insight, 0, maxRoundInsights)
	for _, rule := range roundRules {
		item, ok := rule(holes, shots)
		if !ok {
			continue
		}
		out = append(out, item)
	}
	if len(out) > maxRoundInsights {
		out = out[:maxRoundInsights]
	}
	return out
}

func driverDistanceRule(_ []round.HoleScore, shots []shot.Shot) (Insight, bool) {
	total := 0.0
	count := 0
	for _, item := range shots {
		if item.Club != club.Driver {
			continue
		}
		if item.DistanceActual == nil || *item.DistanceActual <= 0 {
			continue
		}
		total += *item.DistanceActual
		count++
	}
	if count < minDriverShots {
		return Insight{}, false
	}

	avg := int(math.Round(total / float64(count)))
	return Insight{
		Icon: "🚀",
		Text: fmt.Sprintf("Driver averaged %d yards today", avg),
	}, true
}

func missDirectionRule(_ []round.HoleScore, shots []shot.Shot) (Insight, bool) {
	left, right := 0, 0
	for _, item := range shots {
		if item.DistanceOffline == nil {
			continue
		}
		offline := *item.DistanceOffline
		if math.Abs(offline) <= missOfflineMinYards {
			continue
		}
		if offline > 0 {
			right++
		} else {
			left++
		}
	}
	total := left + right
	if total < minMissSamples {
		return Insight{}, false
	}

	switch {
	case float64(right)/float64(total) >= missSkewThreshold:
		return Insight{
			Icon: "🎯",
			Text: "Most misses went right, check your alignment at address",
		}, true
	case float64(left)/float64(total) >= missSkewThreshold:
		return Insight{
			Icon: "🎯",
			Text: "Most misses went left, check your alignment at address",
		}, true
	default:
		// A mixed pattern stays silent.
		return Insight{}, false
	}
}

func par3PerformanceRule(holes []round.HoleScore, _ []shot.Shot) (Insight, bool) {
	count, cumulative := parGroupTotals(holes, 3)
	if count < minParGroupHoles {
		return Insight{}, false
	}

	switch {
	case cumulative <= -1:
		return Insight{
			Icon: "⛳",
			Text: fmt.Sprintf("Strong par-3 play: %s across %d holes", formatOverUnder(cumulative), count),
		}, true
	case cumulative >= par3BadCumulative:
		return Insight{
			Icon: "📉",
			Text: fmt.Sprintf("Par 3s cost you %s today, worth some short-iron practice", formatOverUnder(cumulative)),
		}, true
	default:
		return Insight{}, false
	}
}

func par5PerformanceRule(holes []round.HoleScore, _ []shot.Shot) (Insight, bool) {
	count, cumulative := parGroupTotals(holes, 5)
	if count < minParGroupHoles {
		return Insight{}, false
	}
	// There is no bad-par-5 counterpart; only strength is called out.
	if cumulative > -1 {
		return Insight{}, false
	}

	return Insight{
		Icon: "💪",
		Text: fmt.Sprintf("Par 5s were a strength: %s across %d holes", formatOverUnder(cumulative), count),
	}, true
}

func penaltyRule(holes []round.HoleScore, _ []shot.Shot) (Insight, bool) {
	penalties := 0
	for _, hole := range holes {
		penalties += hole.Penalties
	}

	if penalties >= penaltyWarnThreshold {
		return Insight{
			Icon: "⚠️",
			Text: fmt.Sprintf("%d penalty strokes, course management could save you shots", penalties),
		}, true
	}
	if penalties == 0 && len(holes) >= cleanRoundMinHoles {
		return Insight{
			Icon: "✅",
			Text: "Clean round with no penalty strokes",
		}, true
	}
	return Insight{}, false
}

func nineSplitRule(holes []round.HoleScore, _ []shot.Shot) (Insight, bool) {
	frontCount, backCount := 0, 0
	frontOver, backOver := 0, 0
	for _, hole := range holes {
		if hole.Hole <= 9 {
			frontCount++
			frontOver += hole.OverUnder()
		} else {
			backCount++
			backOver += hole.OverUnder()
		}
	}
	if frontCount < minHolesPerNine || backCount < minHolesPerNine {
		return Insight{}, false
	}

	gap := backOver - frontOver
	switch {
	case gap >= fadedNineGap:
		return Insight{
			Icon: "📉",
			Text: fmt.Sprintf("Faded on the back nine (%+d vs the front), watch energy and focus late", gap),
		}, true
	case gap <= strongFinishNineGap:
		return Insight{
			Icon: "🔥",
			Text: fmt.Sprintf("Strong finish: the back nine was %d shots better than the front", -gap),
		}, true
	default:
		return Insight{}, false
	}
}

func accurateApproachRule(_ []round.HoleScore, shots []shot.Shot) (Insight, bool) {
	type clubTotals struct {
		total float64
		count int
	}
	byClub := make(map[club.Club]*clubTotals)
	for _, item := range shots {
		if item.Club == club.Driver || item.Club == club.Putter {
			continue
		}
		if item.DistanceToTarget == nil || *item.DistanceToTarget <= 0 {
			continue
		}
		totals, ok := byClub[item.Club]
		if !ok {
			totals = &clubTotals{}
			byClub[item.Club] = totals
		}
		totals.total += *item.DistanceToTarget
		totals.count++
	}

	type candidate struct {
		club club.Club
		avg  float64
	}
	candidates := make([]candidate, 0, len(byClub))
	for c, totals := range byClub {
		if totals.count < minApproachShots {
			continue
		}
		candidates = append(candidates, candidate{club: c, avg: totals.total / float64(totals.count)})
	}
	if len(candidates) == 0 {
		return Insight{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].avg != candidates[j].avg {
			return candidates[i].avg < candidates[j].avg
		}
		return candidates[i].club < candidates[j].club
	})

	best := candidates[0]
	if best.avg >= accurateClubMaxYards {
		return Insight{}, false
	}

	return Insight{
		Icon: "🏌️",
		Text: fmt.Sprintf("%s was your most accurate club, averaging %.0f yards from the target", best.club.DisplayName(), best.avg),
	}, true
}

func parGroupTotals(holes []round.HoleScore, par int) (int, int) {
	count, cumulative := 0, 0
	for _, hole := range holes {
		if hole.Par != par {
			continue
		}
		count++
		cumulative += hole.OverUnder()
	}
	return count, cumulative
}

func formatOverUnder(v int) string {
	switch {
	case v == 0:
		return "even"
	case v > 0:
		return fmt.Sprintf("+%d", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}
