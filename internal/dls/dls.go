// Package dls computes rain-affected revised targets.
//
// The resource model is a two-parameter exponential approximation of the
// Duckworth-Lewis-Stern tables (Standard Edition shape, 50-over scale). It is
// not the official ICC table and will differ from published targets by a run
// or two in some situations.
package dls

import (
	"math"
)

// FullOvers is the innings length the resource curve is scaled to.
const FullOvers = 50

// MaxWickets is the number of wickets that ends an innings.
const MaxWickets = 10

// decay is the exponential decay constant of the run-scoring curve.
const decay = 0.028

// wicketFactor scales the asymptotic resources left with w wickets down.
var wicketFactor = [MaxWickets]float64{1.0, 0.886, 0.77, 0.65, 0.53, 0.41, 0.295, 0.19, 0.105, 0.04}

// Resources returns the percentage (0-100) of run-scoring resources left to
// a side with oversRemaining overs to face and wicketsLost wickets down.
// Out-of-range inputs are clamped, NaN overs are treated as none left.
func Resources(oversRemaining float64, wicketsLost int) float64 {
	u := oversRemaining
	if math.IsNaN(u) || u < 0 {
		u = 0
	}
	if u > FullOvers {
		u = FullOvers
	}
	if wicketsLost < 0 {
		wicketsLost = 0
	}
	if wicketsLost >= MaxWickets {
		return 0
	}
	f := wicketFactor[wicketsLost]
	full := 1 - math.Exp(-decay*FullOvers)
	r := 100 * f * (1 - math.Exp(-decay*u/f)) / full
	return clampPercent(r)
}

// ResourcesFromBalls is Resources with overs given as legal balls remaining.
func ResourcesFromBalls(ballsRemaining, wicketsLost int) float64 {
	return Resources(float64(ballsRemaining)/6, wicketsLost)
}

// RevisedTarget returns the chasing side's target given the first innings
// score and both sides' resources. The target only moves when the chasing
// side has fewer resources; otherwise it is the usual score plus one.
func RevisedTarget(team1Score int, team1Resources, team2Resources float64) int {
	r1 := clampPercent(team1Resources)
	r2 := clampPercent(team2Resources)
	if team1Score < 0 {
		team1Score = 0
	}
	if r1 == 0 || r2 >= r1 {
		return team1Score + 1
	}
	return int(math.Ceil(float64(team1Score)*r2/r1)) + 1
}

// ChaseResources is the resource picture for a shortened chase.
type ChaseResources struct {
	Team1Resources float64 `json:"team1Resources"`
	Team2Resources float64 `json:"team2Resources"`
	RevisedTarget  int     `json:"revisedTarget"`
}

// Chase computes the revised target when the second innings is cut from
// scheduledOvers to revisedOvers. The first innings is assumed complete and
// uninterrupted.
func Chase(team1Score, scheduledOvers, revisedOvers int) ChaseResources {
	return ChaseFor(team1Score, scheduledOvers, Resources(float64(revisedOvers), 0))
}

// Interrupted computes the revised target when the chase is stopped with
// ballsBowled gone and wicketsLost down, and resumes with only revisedOvers
// in total. Resources lost are those between the overs remaining before and
// after the cut, at the wickets lost so far.
func Interrupted(team1Score, scheduledOvers, revisedOvers, ballsBowled, wicketsLost int) ChaseResources {
	r2 := Revise(Resources(float64(scheduledOvers), 0), scheduledOvers, revisedOvers, ballsBowled, wicketsLost)
	return ChaseFor(team1Score, scheduledOvers, r2)
}

// Revise returns the chasing side's total resources after its innings is
// cut from currentOvers to revisedOvers. team2Resources is what the side had
// before this cut: the full allocation for a first stoppage, or the result of
// the previous Revise for a later one.
func Revise(team2Resources float64, currentOvers, revisedOvers, ballsBowled, wicketsLost int) float64 {
	before := ResourcesFromBalls(currentOvers*6-ballsBowled, wicketsLost)
	after := ResourcesFromBalls(revisedOvers*6-ballsBowled, wicketsLost)
	return clampPercent(team2Resources - (before - after))
}

// ChaseFor builds the resource picture for a chase of a scheduledOvers
// first innings by a side left with team2Resources in total.
func ChaseFor(team1Score, scheduledOvers int, team2Resources float64) ChaseResources {
	r1 := Resources(float64(scheduledOvers), 0)
	return ChaseResources{
		Team1Resources: round2(r1),
		Team2Resources: round2(team2Resources),
		RevisedTarget:  RevisedTarget(team1Score, r1, team2Resources),
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
