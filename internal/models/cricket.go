package models

import (
	"maps"
	"slices"
	"time"
)

// PauseReason explains why scoring is halted waiting for the scorer.
type PauseReason string

const (
	PauseNone            PauseReason = ""
	PauseInit            PauseReason = "INIT"
	PauseOver            PauseReason = "OVER"
	PauseWicket          PauseReason = "WICKET"
	PauseInningsComplete PauseReason = "INNINGS_COMPLETE"
)

// WicketType for cricket dismissals
type WicketType string

const (
	WicketBowled  WicketType = "Bowled"
	WicketCaught  WicketType = "Caught"
	WicketLBW     WicketType = "LBW"
	WicketRunOut  WicketType = "RunOut"
	WicketStumped WicketType = "Stumped"
	WicketRetired WicketType = "Retired"
	WicketOther   WicketType = "Other"
)

// Valid reports whether w is one of the known dismissal types.
func (w WicketType) Valid() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketRetired, WicketOther:
		return true
	}
	return false
}

// NeedsFielder reports whether the dismissal must be attributed to a fielder
// before the ball can be committed. Bowled, LBW and Retired resolve on their own.
func (w WicketType) NeedsFielder() bool {
	switch w {
	case WicketCaught, WicketRunOut, WicketStumped, WicketOther:
		return true
	}
	return false
}

// CreditsBowler reports whether the bowler is credited with the wicket.
func (w WicketType) CreditsBowler() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketStumped:
		return true
	}
	return false
}

// ExtraType for runs not scored off the bat
type ExtraType string

const (
	ExtraNone   ExtraType = ""
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "noBall"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "legBye"
)

// Valid reports whether e is a known extra type (ExtraNone included).
func (e ExtraType) Valid() bool {
	switch e {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

// IsLegal reports whether a delivery of this kind counts toward the six-ball over.
func (e ExtraType) IsLegal() bool {
	return e != ExtraWide && e != ExtraNoBall
}

// Extras holds cumulative extras per type.
type Extras struct {
	Wide   int `json:"wide"`
	NoBall int `json:"noBall"`
	Bye    int `json:"bye"`
	LegBye int `json:"legBye"`
}

// Add credits runs to the bucket for t.
func (e *Extras) Add(t ExtraType, runs int) {
	switch t {
	case ExtraWide:
		e.Wide += runs
	case ExtraNoBall:
		e.NoBall += runs
	case ExtraBye:
		e.Bye += runs
	case ExtraLegBye:
		e.LegBye += runs
	}
}

// Total is the sum of all extras.
func (e Extras) Total() int {
	return e.Wide + e.NoBall + e.Bye + e.LegBye
}

// Team is a side's playing roster for one match. Indexes point into Players.
type Team struct {
	Name         string   `json:"name"`
	Players      []string `json:"players"`
	Captain      *int     `json:"captain,omitempty"`
	ViceCaptain  *int     `json:"viceCaptain,omitempty"`
	WicketKeeper *int     `json:"wicketKeeper,omitempty"`
	ImpactPlayer string   `json:"impactPlayer,omitempty"`
}

// HasPlayer reports whether name is on the roster, impact player included.
func (t Team) HasPlayer(name string) bool {
	if name == "" {
		return false
	}
	if name == t.ImpactPlayer {
		return true
	}
	for _, p := range t.Players {
		if p == name {
			return true
		}
	}
	return false
}

// Keeper returns the designated wicketkeeper, or "" if none is set.
func (t Team) Keeper() string {
	if t.WicketKeeper == nil || *t.WicketKeeper < 0 || *t.WicketKeeper >= len(t.Players) {
		return ""
	}
	return t.Players[*t.WicketKeeper]
}

// Squad lists the roster followed by the impact player, if any.
func (t Team) Squad() []string {
	squad := slices.Clone(t.Players)
	if t.ImpactPlayer != "" && !slices.Contains(squad, t.ImpactPlayer) {
		squad = append(squad, t.ImpactPlayer)
	}
	return squad
}

func (t Team) clone() Team {
	c := t
	c.Players = slices.Clone(t.Players)
	c.Captain = cloneIntPtr(t.Captain)
	c.ViceCaptain = cloneIntPtr(t.ViceCaptain)
	c.WicketKeeper = cloneIntPtr(t.WicketKeeper)
	return c
}

// BattingEntry holds a batter's raw counters plus the derived strike rate.
type BattingEntry struct {
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	Dismissal  *string `json:"dismissal"`
	StrikeRate float64 `json:"strikeRate"`
}

// IsOut reports whether the batter has been dismissed.
func (b BattingEntry) IsOut() bool { return b.Dismissal != nil }

// BowlingEntry holds a bowler's raw counters plus derived overs/economy.
type BowlingEntry struct {
	Balls   int     `json:"balls"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Maidens int     `json:"maidens"`
	Dots    int     `json:"dots"`
	Wides   int     `json:"wides"`
	NoBalls int     `json:"noBalls"`
	Overs   string  `json:"overs"`
	Economy float64 `json:"economy"`
}

// Scorecard is the per-player table for one innings. The order slices keep
// the sequence in which players first appeared.
type Scorecard struct {
	Batting      map[string]BattingEntry `json:"batting"`
	Bowling      map[string]BowlingEntry `json:"bowling"`
	BattingOrder []string                `json:"battingOrder"`
	BowlingOrder []string                `json:"bowlingOrder"`
}

// NewScorecard returns an empty scorecard with initialised maps.
func NewScorecard() Scorecard {
	return Scorecard{
		Batting:      map[string]BattingEntry{},
		Bowling:      map[string]BowlingEntry{},
		BattingOrder: []string{},
		BowlingOrder: []string{},
	}
}

// EnsureBatter adds an empty batting row for name if absent.
func (s *Scorecard) EnsureBatter(name string) {
	if _, ok := s.Batting[name]; ok {
		return
	}
	s.Batting[name] = BattingEntry{}
	s.BattingOrder = append(s.BattingOrder, name)
}

// EnsureBowler adds an empty bowling row for name if absent.
func (s *Scorecard) EnsureBowler(name string) {
	if _, ok := s.Bowling[name]; ok {
		return
	}
	s.Bowling[name] = BowlingEntry{}
	s.BowlingOrder = append(s.BowlingOrder, name)
}

// RemoveBowler drops a bowling row entirely.
func (s *Scorecard) RemoveBowler(name string) {
	delete(s.Bowling, name)
	for i, n := range s.BowlingOrder {
		if n == name {
			s.BowlingOrder = append(s.BowlingOrder[:i:i], s.BowlingOrder[i+1:]...)
			return
		}
	}
}

// RemoveBatter drops a batting row entirely.
func (s *Scorecard) RemoveBatter(name string) {
	delete(s.Batting, name)
	if i := slices.Index(s.BattingOrder, name); i >= 0 {
		s.BattingOrder = append(s.BattingOrder[:i:i], s.BattingOrder[i+1:]...)
	}
}

// DropUnused removes name's batting and bowling rows if nothing has been
// recorded against them yet.
func (s *Scorecard) DropUnused(name string) {
	if b, ok := s.Batting[name]; ok && b.Balls == 0 && b.Runs == 0 && !b.IsOut() {
		s.RemoveBatter(name)
	}
	if b, ok := s.Bowling[name]; ok && b.Balls == 0 && b.Runs == 0 && b.Wickets == 0 && b.Wides == 0 && b.NoBalls == 0 {
		s.RemoveBowler(name)
	}
}

func (s Scorecard) clone() Scorecard {
	c := Scorecard{
		Batting:      maps.Clone(s.Batting),
		Bowling:      maps.Clone(s.Bowling),
		BattingOrder: slices.Clone(s.BattingOrder),
		BowlingOrder: slices.Clone(s.BowlingOrder),
	}
	for k, v := range c.Batting {
		if v.Dismissal != nil {
			d := *v.Dismissal
			v.Dismissal = &d
			c.Batting[k] = v
		}
	}
	return c
}

// OverTally accumulates what happened in the over currently being bowled.
// It survives the OVER pause so a misattributed bowler can still be corrected.
type OverTally struct {
	Bowler       string   `json:"bowler"`
	LegalBalls   int      `json:"legalBalls"`
	RunsConceded int      `json:"runsConceded"` // everything, byes included
	BowlerRuns   int      `json:"bowlerRuns"`   // charged to the bowler
	Wickets      int      `json:"wickets"`
	Dots         int      `json:"dots"`
	Wides        int      `json:"wides"`
	NoBalls      int      `json:"noBalls"`
	Maiden       bool     `json:"maiden"`
	Dismissed    []string `json:"dismissed,omitempty"` // batters the bowler took this over
}

// FallOfWicket records when and how a wicket fell.
type FallOfWicket struct {
	Wicket int    `json:"wicket"`
	Batter string `json:"batter"`
	Score  int    `json:"score"`
	Overs  string `json:"overs"`
}

// InningsState is everything that belongs to one team's batting turn.
type InningsState struct {
	Innings          int            `json:"innings"`
	BattingTeam      Team           `json:"battingTeam"`
	BowlingTeam      Team           `json:"bowlingTeam"`
	TotalRuns        int            `json:"totalRuns"`
	Wickets          int            `json:"wickets"`
	Balls            int            `json:"balls"`
	Extras           Extras         `json:"extras"`
	Striker          string         `json:"striker"`
	NonStriker       string         `json:"nonStriker"`
	Bowler           string         `json:"bowler"`
	LastBowler       string         `json:"lastBowler"`
	PrevOverBowler   string         `json:"prevOverBowler,omitempty"`
	IsFreeHit        bool           `json:"isFreeHit"`
	IsPaused         bool           `json:"isPaused"`
	PauseReason      PauseReason    `json:"pauseReason"`
	OverBreakPending bool           `json:"overBreakPending"`
	Scorecard        Scorecard      `json:"scorecard"`
	BallsLog         []string       `json:"ballsLog"`
	CurrentOver      OverTally      `json:"currentOver"`
	FallOfWickets    []FallOfWicket `json:"fallOfWickets"`
}

// InningsSnapshot is a frozen, completed innings.
type InningsSnapshot = InningsState

// Clone returns a deep copy.
func (s InningsState) Clone() InningsState {
	c := s
	c.BattingTeam = s.BattingTeam.clone()
	c.BowlingTeam = s.BowlingTeam.clone()
	c.Scorecard = s.Scorecard.clone()
	c.BallsLog = slices.Clone(s.BallsLog)
	c.FallOfWickets = slices.Clone(s.FallOfWickets)
	c.CurrentOver.Dismissed = slices.Clone(s.CurrentOver.Dismissed)
	return c
}

// TransferCode is a short-lived handoff code for scoring authority.
type TransferCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the code can no longer be redeemed at now.
func (t TransferCode) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// MatchState is the authoritative scoring state for the innings in progress.
type MatchState struct {
	MatchID string `json:"matchId"`

	InningsState

	MaxOvers         int            `json:"maxOvers"`
	MaxWickets       int            `json:"maxWickets"`
	CompletedInnings []InningsState `json:"completedInnings"`
	DLSRevisedTarget *int           `json:"dlsRevisedTarget"`
	TransferCode     *TransferCode  `json:"transferCode,omitempty"`

	// ScheduledOvers is the innings length agreed before play; MaxOvers
	// shrinks with each DLS cut, this does not.
	ScheduledOvers int `json:"scheduledOvers,omitempty"`
	// DLSTeam2Resources is the chasing side's total resources after the
	// latest cut. Nil until the chase has been shortened.
	DLSTeam2Resources *float64 `json:"dlsTeam2Resources,omitempty"`
}

// Clone returns a deep copy suitable for history snapshots.
func (m MatchState) Clone() MatchState {
	c := m
	c.InningsState = m.InningsState.Clone()
	c.CompletedInnings = slices.Clone(m.CompletedInnings)
	for i, inn := range c.CompletedInnings {
		c.CompletedInnings[i] = inn.Clone()
	}
	c.DLSRevisedTarget = cloneIntPtr(m.DLSRevisedTarget)
	if m.DLSTeam2Resources != nil {
		r := *m.DLSTeam2Resources
		c.DLSTeam2Resources = &r
	}
	if m.TransferCode != nil {
		tc := *m.TransferCode
		c.TransferCode = &tc
	}
	return c
}

// AllInnings returns completed innings followed by the one in progress.
func (m MatchState) AllInnings() []InningsState {
	all := make([]InningsState, 0, len(m.CompletedInnings)+1)
	all = append(all, m.CompletedInnings...)
	return append(all, m.InningsState)
}

// BallEvent is one delivery as entered by the scorer.
type BallEvent struct {
	Runs         int        `json:"runs"`
	IsExtra      bool       `json:"isExtra"`
	ExtraType    ExtraType  `json:"extraType"`
	IsWicket     bool       `json:"isWicket"`
	WicketType   WicketType `json:"wicketType"`
	Fielder      string     `json:"fielder"`
	IsStrikerOut *bool      `json:"isStrikerOut,omitempty"`
}

// MVPEntry is one row of the most-valuable-player ranking.
type MVPEntry struct {
	Name    string  `json:"name"`
	Team    string  `json:"team"`
	Points  float64 `json:"points"`
	Batting float64 `json:"batting"`
	Bowling float64 `json:"bowling"`
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
