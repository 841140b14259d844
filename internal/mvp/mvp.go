// Package mvp ranks players by a points model over the match scorecards.
package mvp

import (
	"math"
	"sort"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

// Weights configure the points model. Batting earns RunPoints per run plus
// StrikeRateFactor per run scored above the baseline-rate par for the balls
// faced. Bowling earns per wicket, maiden and dot ball plus EconomyFactor per
// run conceded under the baseline-economy par. Efficiency terms only apply
// once a player has faced or bowled MinBalls.
type Weights struct {
	RunPoints          float64 `yaml:"run_points" json:"runPoints"`
	StrikeRateBaseline float64 `yaml:"strike_rate_baseline" json:"strikeRateBaseline"`
	StrikeRateFactor   float64 `yaml:"strike_rate_factor" json:"strikeRateFactor"`
	WicketPoints       float64 `yaml:"wicket_points" json:"wicketPoints"`
	MaidenPoints       float64 `yaml:"maiden_points" json:"maidenPoints"`
	DotPoints          float64 `yaml:"dot_points" json:"dotPoints"`
	EconomyBaseline    float64 `yaml:"economy_baseline" json:"economyBaseline"`
	EconomyFactor      float64 `yaml:"economy_factor" json:"economyFactor"`
	MinBalls           int     `yaml:"min_balls" json:"minBalls"`
}

// DefaultWeights suit a T20 scorecard.
func DefaultWeights() Weights {
	return Weights{
		RunPoints:          1,
		StrikeRateBaseline: 100,
		StrikeRateFactor:   0.5,
		WicketPoints:       20,
		MaidenPoints:       8,
		DotPoints:          0.5,
		EconomyBaseline:    8,
		EconomyFactor:      1,
		MinBalls:           6,
	}
}

// Batting scores one batting line.
func (w Weights) Batting(b models.BattingEntry) float64 {
	pts := float64(b.Runs) * w.RunPoints
	if b.Balls >= w.MinBalls && b.Balls > 0 {
		par := float64(b.Balls) * w.StrikeRateBaseline / 100
		pts += w.StrikeRateFactor * (float64(b.Runs) - par)
	}
	return pts
}

// Bowling scores one bowling line.
func (w Weights) Bowling(b models.BowlingEntry) float64 {
	pts := float64(b.Wickets)*w.WicketPoints + float64(b.Maidens)*w.MaidenPoints + float64(b.Dots)*w.DotPoints
	if b.Balls >= w.MinBalls && b.Balls > 0 {
		par := float64(b.Balls) / 6 * w.EconomyBaseline
		pts += w.EconomyFactor * (par - float64(b.Runs))
	}
	return pts
}

type key struct{ team, name string }

// Rank scores every player across the given innings and orders them by
// points, highest first, ties broken by name.
func Rank(innings []models.InningsState, w Weights) []models.MVPEntry {
	totals := map[key]*models.MVPEntry{}
	entry := func(team, name string) *models.MVPEntry {
		k := key{team, name}
		e, ok := totals[k]
		if !ok {
			e = &models.MVPEntry{Name: name, Team: team}
			totals[k] = e
		}
		return e
	}
	for _, inn := range innings {
		for name, b := range inn.Scorecard.Batting {
			entry(inn.BattingTeam.Name, name).Batting += w.Batting(b)
		}
		for name, b := range inn.Scorecard.Bowling {
			entry(inn.BowlingTeam.Name, name).Bowling += w.Bowling(b)
		}
	}

	out := make([]models.MVPEntry, 0, len(totals))
	for _, e := range totals {
		e.Batting = round1(e.Batting)
		e.Bowling = round1(e.Bowling)
		e.Points = round1(e.Batting + e.Bowling)
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// RankMatch ranks every innings of the match, the one in progress included.
func RankMatch(state models.MatchState, w Weights) []models.MVPEntry {
	return Rank(state.AllInnings(), w)
}

// PlayerOfTheMatch is the default award: the top-ranked player.
func PlayerOfTheMatch(ranked []models.MVPEntry) (string, bool) {
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Name, true
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
