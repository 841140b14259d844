package match

import (
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/scorecard"
)

// MatchStatus is the lifecycle of the shared match record.
type MatchStatus string

const (
	StatusLive         MatchStatus = "LIVE"
	StatusInningsBreak MatchStatus = "INNINGS_BREAK"
	StatusPaused       MatchStatus = "PAUSED" // chase over, waiting for the scorer to confirm the result
	StatusFinished     MatchStatus = "FINISHED"
	StatusAbandoned    MatchStatus = "ABANDONED"
)

var terminalStatuses = []MatchStatus{StatusFinished, StatusAbandoned}

// Terminal reports whether the match can no longer be scored.
func (s MatchStatus) Terminal() bool {
	return s == StatusFinished || s == StatusAbandoned
}

// StatusFor derives the record status of a match still being scored.
func StatusFor(state models.MatchState) MatchStatus {
	if state.PauseReason != models.PauseInningsComplete {
		return StatusLive
	}
	if state.Innings == 1 {
		return StatusInningsBreak
	}
	return StatusPaused
}

// Match is the shared record for one match. State is the authoritative
// snapshot written by the pinned device; the transfer code lives in its own
// columns so it can be looked up and cleared atomically.
type Match struct {
	gorm.Model
	MatchID           string             `json:"match_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Title             string             `json:"title"`
	TeamA             string             `json:"team_a"`
	TeamB             string             `json:"team_b"`
	Status            MatchStatus        `json:"status" gorm:"type:varchar(20);index;default:'LIVE'"`
	State             models.MatchState  `json:"state" gorm:"type:jsonb"`
	DeviceID          string             `json:"-" gorm:"type:varchar(64);not null"`
	TransferCode      *string            `json:"-" gorm:"type:varchar(6);uniqueIndex:idx_matches_transfer_code,where:transfer_code IS NOT NULL"`
	TransferExpiresAt *time.Time         `json:"-"`
	Seq               uint64             `json:"seq"`
	LastSyncedAt      *time.Time         `json:"last_synced_at,omitempty"`
	ResultSummary     string             `json:"result_summary,omitempty" gorm:"type:text"`
	PlayerOfTheMatch  string             `json:"player_of_the_match,omitempty"`
	MVPRankings       models.MVPRankings `json:"mvp_rankings,omitempty" gorm:"column:mvp_rankings;type:jsonb"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
}

// Completion is what gets written when a match is closed.
type Completion struct {
	Status           MatchStatus
	State            models.MatchState
	ResultSummary    string
	PlayerOfTheMatch string
	MVPRankings      models.MVPRankings
	At               time.Time
}

// MatchSummary is the read-only finished-match view other subsystems consume.
type MatchSummary struct {
	MatchID          string                  `json:"match_id"`
	Title            string                  `json:"title"`
	Status           MatchStatus             `json:"status"`
	Teams            []string                `json:"teams"`
	Scores           []InningsScore          `json:"scores"`
	Result           string                  `json:"result"`
	PlayerOfTheMatch string                  `json:"player_of_the_match,omitempty"`
	MVPRankings      []models.MVPEntry       `json:"mvp_rankings"`
	Scorecards       []scorecard.InningsCard `json:"scorecards"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
}

// InningsScore is one line of the final score, e.g. "A 150/6 (20.0)".
type InningsScore struct {
	Team    string `json:"team"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Overs   string `json:"overs"`
}

// Summary builds the finished-match view from the stored record.
func (m *Match) Summary() MatchSummary {
	all := m.State.AllInnings()
	sum := MatchSummary{
		MatchID:          m.MatchID,
		Title:            m.Title,
		Status:           m.Status,
		Teams:            []string{m.TeamA, m.TeamB},
		Scores:           make([]InningsScore, 0, len(all)),
		Result:           m.ResultSummary,
		PlayerOfTheMatch: m.PlayerOfTheMatch,
		MVPRankings:      []models.MVPEntry(m.MVPRankings),
		Scorecards:       scorecard.BuildAll(m.State),
		CompletedAt:      m.CompletedAt,
	}
	for _, inn := range all {
		sum.Scores = append(sum.Scores, InningsScore{
			Team:    inn.BattingTeam.Name,
			Runs:    inn.TotalRuns,
			Wickets: inn.Wickets,
			Overs:   scorecard.Overs(inn.Balls),
		})
	}
	if sum.MVPRankings == nil {
		sum.MVPRankings = []models.MVPEntry{}
	}
	return sum
}
