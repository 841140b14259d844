// Package scorecard derives display figures (overs, economy, strike rate,
// run rates, dismissal text, ball-log tokens) from raw innings counters.
//
// Derived fields are always recomputed from the raw counters rather than
// adjusted ball by ball, so rounding never compounds.
package scorecard

import (
	"fmt"
	"math"
	"strconv"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// Ball-log tokens consumed by the UI.
const (
	TokenDot    = "•"
	TokenWicket = "W"
)

var extraCodes = map[models.ExtraType]string{
	models.ExtraWide:   "wd",
	models.ExtraNoBall: "nb",
	models.ExtraBye:    "b",
	models.ExtraLegBye: "lb",
}

// Overs renders legal balls as "overs.balls", e.g. 112 -> "18.4".
func Overs(balls int) string {
	if balls < 0 {
		balls = 0
	}
	return strconv.Itoa(balls/BallsPerOver) + "." + strconv.Itoa(balls%BallsPerOver)
}

// Economy is runs conceded per six legal balls, rounded to two decimals.
func Economy(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return round(float64(runs)/(float64(balls)/BallsPerOver), 2)
}

// StrikeRate is runs per hundred balls faced, rounded to one decimal.
func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return round(float64(runs)/float64(balls)*100, 1)
}

// RunRate is runs per over for the innings so far.
func RunRate(runs, balls int) float64 {
	return Economy(runs, balls)
}

// RequiredRunRate is the rate needed to reach target from the current score
// with ballsLeft legal deliveries remaining. It is 0 once the target is reached
// and +Inf when runs are needed but no balls remain.
func RequiredRunRate(target, runs, ballsLeft int) float64 {
	need := target - runs
	if need <= 0 {
		return 0
	}
	if ballsLeft <= 0 {
		return math.Inf(1)
	}
	return round(float64(need)/(float64(ballsLeft)/BallsPerOver), 2)
}

// Recompute rewrites every derived field of sc from its raw counters.
func Recompute(sc *models.Scorecard) {
	for name, b := range sc.Batting {
		b.StrikeRate = StrikeRate(b.Runs, b.Balls)
		sc.Batting[name] = b
	}
	for name, b := range sc.Bowling {
		b.Overs = Overs(b.Balls)
		b.Economy = Economy(b.Runs, b.Balls)
		sc.Bowling[name] = b
	}
}

// Dismissal builds the scorecard descriptor for a wicket, e.g. "c Smith b Jones".
func Dismissal(w models.WicketType, bowler, fielder string) string {
	switch w {
	case models.WicketBowled:
		return "b " + bowler
	case models.WicketCaught:
		if fielder == "" || fielder == bowler {
			return "c & b " + bowler
		}
		return fmt.Sprintf("c %s b %s", fielder, bowler)
	case models.WicketLBW:
		return "lbw b " + bowler
	case models.WicketStumped:
		return fmt.Sprintf("st %s b %s", fielder, bowler)
	case models.WicketRunOut:
		if fielder == "" {
			return "run out"
		}
		return fmt.Sprintf("run out (%s)", fielder)
	case models.WicketRetired:
		return "retired"
	default:
		if fielder == "" {
			return "other"
		}
		return fmt.Sprintf("other (%s)", fielder)
	}
}

// BallToken renders one delivery for the current-over ball log. runs is the
// figure the scorer entered: bat runs, byes, or runs taken on a wide/no-ball
// beyond the one-run penalty.
func BallToken(extra models.ExtraType, runs int, wicket bool) string {
	if wicket {
		return TokenWicket
	}
	code, isExtra := extraCodes[extra]
	if !isExtra {
		if runs == 0 {
			return TokenDot
		}
		return strconv.Itoa(runs)
	}
	if runs == 0 {
		return code
	}
	return strconv.Itoa(runs) + code
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
