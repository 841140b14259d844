package match

import (
	"github.com/DhavalSuthar-24/crease/internal/dls"
	"github.com/DhavalSuthar-24/crease/internal/innings"
	"github.com/DhavalSuthar-24/crease/internal/livesync"
	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/scorecard"
)

// --- DTOs for requests ---

// TeamRequest is one side's roster at match setup
type TeamRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=100"`
	Players      []string `json:"players" binding:"required,min=2,max=30,dive,required,max=100"`
	Captain      *int     `json:"captain,omitempty" binding:"omitempty,min=0"`
	ViceCaptain  *int     `json:"vice_captain,omitempty" binding:"omitempty,min=0"`
	WicketKeeper *int     `json:"wicket_keeper,omitempty" binding:"omitempty,min=0"`
	ImpactPlayer string   `json:"impact_player,omitempty" binding:"max=100"`
}

func (t TeamRequest) toTeam() models.Team {
	return models.Team{
		Name:         t.Name,
		Players:      t.Players,
		Captain:      t.Captain,
		ViceCaptain:  t.ViceCaptain,
		WicketKeeper: t.WicketKeeper,
		ImpactPlayer: t.ImpactPlayer,
	}
}

// CreateMatchRequest defines the request payload for setting up a match
type CreateMatchRequest struct {
	Title        string      `json:"title" binding:"max=200"`
	TeamA        TeamRequest `json:"team_a" binding:"required"`
	TeamB        TeamRequest `json:"team_b" binding:"required"`
	TossWinner   string      `json:"toss_winner" binding:"required"`
	TossDecision string      `json:"toss_decision" binding:"required,oneof=bat bowl"`
	MaxOvers     int         `json:"max_overs" binding:"required,min=1,max=50"`
	MaxWickets   int         `json:"max_wickets" binding:"omitempty,min=1"`
	DeviceID     string      `json:"device_id" binding:"omitempty,max=64"`
}

// BallRequest is one delivery as entered by the scorer
type BallRequest struct {
	Runs         int               `json:"runs" binding:"min=0,max=7"`
	ExtraType    models.ExtraType  `json:"extra_type" binding:"extra_type"`
	IsWicket     bool              `json:"is_wicket"`
	WicketType   models.WicketType `json:"wicket_type" binding:"omitempty,wicket_type"`
	Fielder      string            `json:"fielder" binding:"max=200"`
	IsStrikerOut *bool             `json:"is_striker_out,omitempty"`
}

func (b BallRequest) toEvent() models.BallEvent {
	return models.BallEvent{
		Runs:         b.Runs,
		IsExtra:      b.ExtraType != models.ExtraNone,
		ExtraType:    b.ExtraType,
		IsWicket:     b.IsWicket,
		WicketType:   b.WicketType,
		Fielder:      b.Fielder,
		IsStrikerOut: b.IsStrikerOut,
	}
}

// PlayerRequest names one player
type PlayerRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// NewBatterRequest brings a batter in after a wicket
type NewBatterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	OnStrike bool   `json:"on_strike"`
}

// ReplacementRequest swaps a roster player for a substitute
type ReplacementRequest struct {
	Team string `json:"team" binding:"required"`
	Out  string `json:"out" binding:"required"`
	In   string `json:"in" binding:"required,max=100"`
}

// DLSRequest revises the chase. Without a target one is computed from the
// interruption.
type DLSRequest struct {
	Target       *int `json:"target,omitempty" binding:"omitempty,min=1"`
	RevisedOvers int  `json:"revised_overs" binding:"min=0,max=50"`
}

// FinishRequest confirms the result. An empty player of the match takes
// the top MVP.
type FinishRequest struct {
	PlayerOfTheMatch string `json:"player_of_the_match" binding:"max=100"`
}

// ClaimTransferRequest redeems a handoff code
type ClaimTransferRequest struct {
	Code     string `json:"code" binding:"required,len=6,numeric"`
	DeviceID string `json:"device_id" binding:"omitempty,max=64"`
}

// --- DTOs for responses ---

// MatchView is the scoring screen payload.
type MatchView struct {
	MatchID    string                  `json:"match_id"`
	Title      string                  `json:"title"`
	Status     MatchStatus             `json:"status"`
	State      models.MatchState       `json:"state"`
	Sync       *livesync.SyncStatus    `json:"sync,omitempty"`
	CanUndo    bool                    `json:"can_undo"`
	Progress   innings.Progress        `json:"progress"`
	Result     innings.Result          `json:"result"`
	Scorecards []scorecard.InningsCard `json:"scorecards"`
}

// ScorerGrant is returned to a device that now holds scoring authority.
type ScorerGrant struct {
	DeviceID string    `json:"device_id"`
	Token    string    `json:"token"`
	Match    MatchView `json:"match"`
}

// TransferCodeResponse is a freshly issued handoff code.
type TransferCodeResponse struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

// MVPResponse is the ranking with the suggested player of the match.
type MVPResponse struct {
	Rankings         []models.MVPEntry `json:"rankings"`
	PlayerOfTheMatch string            `json:"player_of_the_match,omitempty"`
}

// DLSResourcesResponse is the resource picture for the chase.
type DLSResourcesResponse struct {
	ResourcesRemaining float64             `json:"resources_remaining"`
	Chase              *dls.ChaseResources `json:"chase,omitempty"`
}
