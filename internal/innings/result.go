package innings

import (
	"fmt"

	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/scorecard"
)

// Result is the outcome of a match once the chase is over.
type Result struct {
	Decided bool   `json:"decided"`
	Tie     bool   `json:"tie"`
	Winner  string `json:"winner,omitempty"`
	Margin  int    `json:"margin,omitempty"`
	By      string `json:"by,omitempty"` // "runs" or "wickets"
	Summary string `json:"summary"`
}

// Result reports the outcome of the match so far.
func (m *Machine) Result() Result { return ResultOf(m.state) }

// ResultOf derives the outcome from a state. Matches still in progress
// return an undecided result.
func ResultOf(s models.MatchState) Result {
	if s.Innings != 2 || s.PauseReason != models.PauseInningsComplete {
		return Result{Summary: "in progress"}
	}
	target, ok := targetOf(s)
	if !ok {
		return Result{Summary: "in progress"}
	}
	switch {
	case s.TotalRuns >= target:
		margin := s.MaxWickets - s.Wickets
		return Result{
			Decided: true,
			Winner:  s.BattingTeam.Name,
			Margin:  margin,
			By:      "wickets",
			Summary: fmt.Sprintf("%s won by %s", s.BattingTeam.Name, plural(margin, "wicket")),
		}
	case s.TotalRuns == target-1:
		return Result{Decided: true, Tie: true, Summary: "match tied"}
	default:
		margin := target - 1 - s.TotalRuns
		return Result{
			Decided: true,
			Winner:  s.BowlingTeam.Name,
			Margin:  margin,
			By:      "runs",
			Summary: fmt.Sprintf("%s won by %s", s.BowlingTeam.Name, plural(margin, "run")),
		}
	}
}

// Progress is the live chase situation shown under the score.
type Progress struct {
	RunRate         float64 `json:"runRate"`
	Target          int     `json:"target,omitempty"`
	RunsNeeded      int     `json:"runsNeeded,omitempty"`
	BallsLeft       int     `json:"ballsLeft,omitempty"`
	RequiredRunRate float64 `json:"requiredRunRate,omitempty"`
}

// ProgressOf computes run rates for the innings in progress. The required
// rate is capped at 99.99 when no balls remain.
func ProgressOf(s models.MatchState) Progress {
	p := Progress{RunRate: scorecard.RunRate(s.TotalRuns, s.Balls)}
	target, ok := targetOf(s)
	if !ok {
		return p
	}
	p.Target = target
	p.RunsNeeded = max(target-s.TotalRuns, 0)
	p.BallsLeft = max(s.MaxOvers*scorecard.BallsPerOver-s.Balls, 0)
	p.RequiredRunRate = min(scorecard.RequiredRunRate(target, s.TotalRuns, p.BallsLeft), 99.99)
	return p
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
