package scorecard

import (
	"strconv"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

// BattingRow is one ordered line of a batting table.
type BattingRow struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strikeRate"`
	Dismissal  string  `json:"dismissal"`
	NotOut     bool    `json:"notOut"`
}

// BowlingRow is one ordered line of a bowling table.
type BowlingRow struct {
	Name    string  `json:"name"`
	Overs   string  `json:"overs"`
	Maidens int     `json:"maidens"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
	Dots    int     `json:"dots"`
	Wides   int     `json:"wides"`
	NoBalls int     `json:"noBalls"`
}

// InningsCard is the full display scorecard for one innings.
type InningsCard struct {
	Innings       int                   `json:"innings"`
	BattingTeam   string                `json:"battingTeam"`
	BowlingTeam   string                `json:"bowlingTeam"`
	Score         string                `json:"score"`
	TotalRuns     int                   `json:"totalRuns"`
	Wickets       int                   `json:"wickets"`
	Overs         string                `json:"overs"`
	RunRate       float64               `json:"runRate"`
	Extras        models.Extras         `json:"extras"`
	ExtrasTotal   int                   `json:"extrasTotal"`
	Batting       []BattingRow          `json:"batting"`
	Bowling       []BowlingRow          `json:"bowling"`
	FallOfWickets []models.FallOfWicket `json:"fallOfWickets"`
}

// Build derives the ordered display tables for an innings from its raw counters.
func Build(inn models.InningsState) InningsCard {
	card := InningsCard{
		Innings:       inn.Innings,
		BattingTeam:   inn.BattingTeam.Name,
		BowlingTeam:   inn.BowlingTeam.Name,
		Score:         scoreLine(inn.TotalRuns, inn.Wickets),
		TotalRuns:     inn.TotalRuns,
		Wickets:       inn.Wickets,
		Overs:         Overs(inn.Balls),
		RunRate:       RunRate(inn.TotalRuns, inn.Balls),
		Extras:        inn.Extras,
		ExtrasTotal:   inn.Extras.Total(),
		Batting:       make([]BattingRow, 0, len(inn.Scorecard.BattingOrder)),
		Bowling:       make([]BowlingRow, 0, len(inn.Scorecard.BowlingOrder)),
		FallOfWickets: inn.FallOfWickets,
	}

	for _, name := range inn.Scorecard.BattingOrder {
		b, ok := inn.Scorecard.Batting[name]
		if !ok {
			continue
		}
		row := BattingRow{
			Name:       name,
			Runs:       b.Runs,
			Balls:      b.Balls,
			Fours:      b.Fours,
			Sixes:      b.Sixes,
			StrikeRate: StrikeRate(b.Runs, b.Balls),
			NotOut:     !b.IsOut(),
		}
		if b.IsOut() {
			row.Dismissal = *b.Dismissal
		} else {
			row.Dismissal = "not out"
		}
		card.Batting = append(card.Batting, row)
	}

	for _, name := range inn.Scorecard.BowlingOrder {
		b, ok := inn.Scorecard.Bowling[name]
		if !ok {
			continue
		}
		card.Bowling = append(card.Bowling, BowlingRow{
			Name:    name,
			Overs:   Overs(b.Balls),
			Maidens: b.Maidens,
			Runs:    b.Runs,
			Wickets: b.Wickets,
			Economy: Economy(b.Runs, b.Balls),
			Dots:    b.Dots,
			Wides:   b.Wides,
			NoBalls: b.NoBalls,
		})
	}
	return card
}

// BuildAll builds cards for every innings of a match, oldest first.
func BuildAll(state models.MatchState) []InningsCard {
	all := state.AllInnings()
	cards := make([]InningsCard, 0, len(all))
	for _, inn := range all {
		cards = append(cards, Build(inn))
	}
	return cards
}

func scoreLine(runs, wickets int) string {
	return strconv.Itoa(runs) + "/" + strconv.Itoa(wickets)
}
