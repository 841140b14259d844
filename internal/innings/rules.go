package innings

import (
	"slices"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

// DefaultHistoryDepth bounds the undo buffer. A 20-over innings with extras
// and selections stays well under it; older snapshots are discarded first.
const DefaultHistoryDepth = 100

// Rules are the configurable parts of the playing conditions.
type Rules struct {
	// FreeHitDismissals lists the wicket types that still stand on a free hit.
	FreeHitDismissals []models.WicketType
	// MaxOversPerBowler caps each bowler's overs. Zero derives the cap as
	// ceil(maxOvers/5), the usual limited-overs quota (4 in T20, 10 in ODI).
	MaxOversPerBowler int
	// HistoryDepth bounds the undo buffer; zero means DefaultHistoryDepth.
	HistoryDepth int
	// RotateOnExtraRuns also changes ends on odd runs taken off byes, leg
	// byes and wides. Off by default: only runs off the bat rotate, including
	// those hit off a no-ball.
	RotateOnExtraRuns bool
}

// DefaultRules returns run-out-only free hits, derived bowler quotas and the
// default undo depth.
func DefaultRules() Rules {
	return Rules{
		FreeHitDismissals: []models.WicketType{models.WicketRunOut},
		HistoryDepth:      DefaultHistoryDepth,
	}
}

func (r Rules) standsOnFreeHit(w models.WicketType) bool {
	return slices.Contains(r.FreeHitDismissals, w)
}

// BowlerQuota is the number of overs one bowler may bowl in an innings of maxOvers.
func (r Rules) BowlerQuota(maxOvers int) int {
	if r.MaxOversPerBowler > 0 {
		return r.MaxOversPerBowler
	}
	if maxOvers <= 0 {
		return 0
	}
	return (maxOvers + 4) / 5
}

func (r Rules) rotates(ev models.BallEvent) bool {
	if ev.Runs%2 == 0 {
		return false
	}
	switch ev.ExtraType {
	case models.ExtraNone, models.ExtraNoBall:
		return true
	}
	return r.RotateOnExtraRuns
}

func (r Rules) historyDepth() int {
	if r.HistoryDepth > 0 {
		return r.HistoryDepth
	}
	return DefaultHistoryDepth
}
