// Package innings implements the ball-by-ball scoring state machine for a
// limited-overs match.
//
// A Machine is not safe for concurrent use; callers serialise access (the
// match session holds a mutex around every call).
package innings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/DhavalSuthar-24/crease/internal/dls"
	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/scorecard"
)

// MaxRunsPerBall is the largest run figure accepted for one delivery.
const MaxRunsPerBall = 7

// Toss decisions.
const (
	TossBat  = "bat"
	TossBowl = "bowl"
)

// Setup describes a new match before the first ball.
type Setup struct {
	MatchID      string
	TeamA        models.Team
	TeamB        models.Team
	TossWinner   string // team name; empty means TeamA bats first
	TossDecision string // TossBat or TossBowl
	MaxOvers     int
	MaxWickets   int // zero means batting roster size minus one
}

// Observer receives a copy of the state after every committed mutation.
type Observer func(state models.MatchState)

// Machine owns one match's authoritative scoring state.
type Machine struct {
	state     models.MatchState
	rules     Rules
	history   *HistoryStack
	observers []Observer
}

// NewMatch validates setup and returns a machine paused in INIT for the
// first innings.
func NewMatch(setup Setup, rules Rules) (*Machine, error) {
	batting, bowling, err := battingOrder(setup)
	if err != nil {
		return nil, err
	}
	if setup.MaxOvers <= 0 {
		return nil, fmt.Errorf("%w: max overs must be positive", ErrInvalidSetup)
	}
	// Both sides bat, so the smaller roster bounds the wickets.
	players := min(len(batting.Players), len(bowling.Players))
	squadSize := min(len(batting.Squad()), len(bowling.Squad()))
	maxWickets := setup.MaxWickets
	if maxWickets == 0 {
		maxWickets = players - 1
	}
	if maxWickets < 1 || maxWickets > squadSize-1 {
		return nil, fmt.Errorf("%w: max wickets %d does not fit a roster of %d", ErrInvalidSetup, maxWickets, players)
	}

	state := models.MatchState{
		MatchID:        setup.MatchID,
		InningsState:   freshInnings(1, batting, bowling),
		MaxOvers:       setup.MaxOvers,
		ScheduledOvers: setup.MaxOvers,
		MaxWickets:     maxWickets,
	}
	return Restore(state, rules), nil
}

// Restore wraps an existing state, e.g. one loaded from storage. The undo
// history starts empty.
func Restore(state models.MatchState, rules Rules) *Machine {
	if state.Scorecard.Batting == nil {
		state.Scorecard = models.NewScorecard()
	}
	return &Machine{
		state:   state.Clone(),
		rules:   rules,
		history: NewHistoryStack(rules.historyDepth()),
	}
}

func battingOrder(setup Setup) (models.Team, models.Team, error) {
	a, b := setup.TeamA, setup.TeamB
	for _, t := range []models.Team{a, b} {
		if strings.TrimSpace(t.Name) == "" {
			return a, b, fmt.Errorf("%w: team name is required", ErrInvalidSetup)
		}
		if len(t.Players) < 2 {
			return a, b, fmt.Errorf("%w: %s needs at least two players", ErrInvalidSetup, t.Name)
		}
		seen := make(map[string]bool, len(t.Players))
		for _, p := range t.Squad() {
			if strings.TrimSpace(p) == "" || seen[p] {
				return a, b, fmt.Errorf("%w: %s has a blank or duplicate player", ErrInvalidSetup, t.Name)
			}
			seen[p] = true
		}
	}
	if a.Name == b.Name {
		return a, b, fmt.Errorf("%w: teams must have different names", ErrInvalidSetup)
	}

	var aBats bool
	switch setup.TossWinner {
	case "":
		return a, b, nil
	case a.Name:
		aBats = true
	case b.Name:
		aBats = false
	default:
		return a, b, fmt.Errorf("%w: toss winner %q is not playing", ErrInvalidSetup, setup.TossWinner)
	}
	switch setup.TossDecision {
	case TossBat:
	case TossBowl:
		aBats = !aBats
	default:
		return a, b, fmt.Errorf("%w: toss decision must be %q or %q", ErrInvalidSetup, TossBat, TossBowl)
	}
	if aBats {
		return a, b, nil
	}
	return b, a, nil
}

func freshInnings(n int, batting, bowling models.Team) models.InningsState {
	return models.InningsState{
		Innings:     n,
		BattingTeam: batting,
		BowlingTeam: bowling,
		IsPaused:    true,
		PauseReason: models.PauseInit,
		Scorecard:   models.NewScorecard(),
		BallsLog:    []string{},
	}
}

// Subscribe registers fn to be called after every committed mutation.
func (m *Machine) Subscribe(fn Observer) {
	m.observers = append(m.observers, fn)
}

// State returns a deep copy of the current state.
func (m *Machine) State() models.MatchState { return m.state.Clone() }

// Rules returns the playing conditions in force.
func (m *Machine) Rules() Rules { return m.rules }

// CanUndo reports whether a snapshot is available.
func (m *Machine) CanUndo() bool { return m.history.Len() > 0 }

// BowlerQuota is the per-bowler over limit for the current innings.
func (m *Machine) BowlerQuota() int { return m.rules.BowlerQuota(m.state.MaxOvers) }

func (m *Machine) checkpoint() { m.history.Push(m.state) }

func (m *Machine) commit() {
	scorecard.Recompute(&m.state.Scorecard)
	m.notify()
}

func (m *Machine) notify() {
	if len(m.observers) == 0 {
		return
	}
	snap := m.state.Clone()
	for _, fn := range m.observers {
		fn(snap)
	}
}

func (m *Machine) pause(reason models.PauseReason) {
	m.state.IsPaused = true
	m.state.PauseReason = reason
}

func (m *Machine) resume() {
	m.state.IsPaused = false
	m.state.PauseReason = models.PauseNone
}

// AddBall records one delivery. It returns false without touching state when
// scoring is paused or no bowler is set, and an error when the event itself
// is malformed.
func (m *Machine) AddBall(ev models.BallEvent) (bool, error) {
	s := &m.state
	if s.IsPaused || s.Bowler == "" || s.Striker == "" || s.NonStriker == "" {
		return false, nil
	}
	ev, err := m.normalize(ev)
	if err != nil {
		return false, err
	}
	m.checkpoint()
	m.apply(ev)
	m.commit()
	return true, nil
}

func (m *Machine) normalize(ev models.BallEvent) (models.BallEvent, error) {
	if !ev.ExtraType.Valid() {
		return ev, fmt.Errorf("%w: %q", ErrInvalidExtra, ev.ExtraType)
	}
	if ev.IsExtra && ev.ExtraType == models.ExtraNone {
		return ev, fmt.Errorf("%w: extra flagged without a type", ErrInvalidExtra)
	}
	ev.IsExtra = ev.ExtraType != models.ExtraNone

	if ev.Runs < 0 || ev.Runs > MaxRunsPerBall {
		return ev, fmt.Errorf("%w: %d", ErrInvalidRuns, ev.Runs)
	}
	if (ev.ExtraType == models.ExtraBye || ev.ExtraType == models.ExtraLegBye) && ev.Runs == 0 {
		return ev, fmt.Errorf("%w: %s needs at least one run", ErrInvalidRuns, ev.ExtraType)
	}

	if !ev.IsWicket {
		ev.WicketType, ev.Fielder, ev.IsStrikerOut = "", "", nil
		return ev, nil
	}
	if !ev.WicketType.Valid() {
		return ev, fmt.Errorf("%w: %q", ErrInvalidWicket, ev.WicketType)
	}
	switch ev.ExtraType {
	case models.ExtraWide:
		switch ev.WicketType {
		case models.WicketBowled, models.WicketCaught, models.WicketLBW:
			return ev, fmt.Errorf("%w: %s off a wide", ErrInvalidWicket, ev.WicketType)
		}
	case models.ExtraNoBall:
		switch ev.WicketType {
		case models.WicketBowled, models.WicketCaught, models.WicketLBW, models.WicketStumped:
			return ev, fmt.Errorf("%w: %s off a no-ball", ErrInvalidWicket, ev.WicketType)
		}
	}

	ev.Fielder = strings.TrimSpace(ev.Fielder)
	if ev.WicketType == models.WicketStumped && ev.Fielder == "" {
		ev.Fielder = m.state.BowlingTeam.Keeper()
	}
	if ev.WicketType.NeedsFielder() && ev.Fielder == "" {
		return ev, fmt.Errorf("%w: %s", ErrFielderRequired, ev.WicketType)
	}

	switch ev.WicketType {
	case models.WicketRunOut:
		if ev.IsStrikerOut == nil {
			return ev, ErrRunOutBatterRequired
		}
	case models.WicketRetired:
		if ev.IsStrikerOut == nil {
			striker := true
			ev.IsStrikerOut = &striker
		}
	default:
		striker := true
		ev.IsStrikerOut = &striker
	}
	return ev, nil
}

// apply mutates state for a validated delivery.
func (m *Machine) apply(ev models.BallEvent) {
	s := &m.state
	legal := ev.ExtraType.IsLegal()
	striker, nonStriker, bowler := s.Striker, s.NonStriker, s.Bowler

	var batRuns, extraRuns, bowlerRuns int
	switch ev.ExtraType {
	case models.ExtraWide:
		extraRuns = 1 + ev.Runs
		bowlerRuns = extraRuns
	case models.ExtraNoBall:
		batRuns = ev.Runs
		extraRuns = 1
		bowlerRuns = 1 + ev.Runs
	case models.ExtraBye, models.ExtraLegBye:
		extraRuns = ev.Runs
	default:
		batRuns = ev.Runs
		bowlerRuns = ev.Runs
	}
	s.Extras.Add(ev.ExtraType, extraRuns)
	s.TotalRuns += batRuns + extraRuns
	if legal {
		s.Balls++
	}

	s.Scorecard.EnsureBatter(striker)
	s.Scorecard.EnsureBatter(nonStriker)
	bat := s.Scorecard.Batting[striker]
	bat.Runs += batRuns
	if ev.ExtraType != models.ExtraWide {
		bat.Balls++
	}
	switch batRuns {
	case 4:
		bat.Fours++
	case 6:
		bat.Sixes++
	}
	s.Scorecard.Batting[striker] = bat

	over := &s.CurrentOver
	if over.Bowler == "" {
		over.Bowler = bowler
	}
	s.Scorecard.EnsureBowler(bowler)
	bowl := s.Scorecard.Bowling[bowler]
	bowl.Runs += bowlerRuns
	over.RunsConceded += batRuns + extraRuns
	over.BowlerRuns += bowlerRuns
	if legal {
		bowl.Balls++
		over.LegalBalls++
		if bowlerRuns == 0 {
			bowl.Dots++
			over.Dots++
		}
	}
	switch ev.ExtraType {
	case models.ExtraWide:
		bowl.Wides++
		over.Wides++
	case models.ExtraNoBall:
		bowl.NoBalls++
		over.NoBalls++
	}

	wicket := ev.IsWicket && (!s.IsFreeHit || m.rules.standsOnFreeHit(ev.WicketType))
	s.IsFreeHit = ev.ExtraType == models.ExtraNoBall

	s.BallsLog = append(s.BallsLog, scorecard.BallToken(ev.ExtraType, ev.Runs, wicket))

	if m.rules.rotates(ev) {
		s.Striker, s.NonStriker = s.NonStriker, s.Striker
	}

	if wicket {
		out := striker
		if !*ev.IsStrikerOut {
			out = nonStriker
		}
		s.Wickets++
		desc := scorecard.Dismissal(ev.WicketType, bowler, ev.Fielder)
		s.Scorecard.EnsureBatter(out)
		entry := s.Scorecard.Batting[out]
		entry.Dismissal = &desc
		s.Scorecard.Batting[out] = entry
		if ev.WicketType.CreditsBowler() {
			bowl.Wickets++
			over.Wickets++
			over.Dismissed = append(over.Dismissed, out)
		}
		s.FallOfWickets = append(s.FallOfWickets, models.FallOfWicket{
			Wicket: s.Wickets,
			Batter: out,
			Score:  s.TotalRuns,
			Overs:  scorecard.Overs(s.Balls),
		})
		switch out {
		case s.Striker:
			s.Striker = ""
		case s.NonStriker:
			s.NonStriker = ""
		}
	}

	overDone := legal && over.LegalBalls >= scorecard.BallsPerOver
	if overDone {
		if over.RunsConceded == 0 {
			bowl.Maidens++
			over.Maiden = true
		}
		s.Striker, s.NonStriker = s.NonStriker, s.Striker
		s.PrevOverBowler = s.LastBowler
		s.LastBowler = bowler
		s.Bowler = ""
	}
	s.Scorecard.Bowling[bowler] = bowl

	switch {
	case m.inningsOver():
		s.OverBreakPending = false
		m.pause(models.PauseInningsComplete)
	case wicket:
		s.OverBreakPending = overDone
		m.pause(models.PauseWicket)
	case overDone:
		m.pause(models.PauseOver)
	}
}

func (m *Machine) inningsOver() bool {
	s := &m.state
	if s.Wickets >= s.MaxWickets || s.Balls >= s.MaxOvers*scorecard.BallsPerOver {
		return true
	}
	if (s.Striker == "" || s.NonStriker == "") && !m.batterLeft() {
		return true
	}
	if target, ok := m.Target(); ok && s.TotalRuns >= target {
		return true
	}
	return false
}

// Target is the chasing side's winning score, DLS revision included. It is
// only defined during the second innings.
func (m *Machine) Target() (int, bool) { return targetOf(m.state) }

func targetOf(s models.MatchState) (int, bool) {
	if s.Innings != 2 {
		return 0, false
	}
	if s.DLSRevisedTarget != nil {
		return *s.DLSRevisedTarget, true
	}
	if len(s.CompletedInnings) == 0 {
		return 0, false
	}
	return s.CompletedInnings[len(s.CompletedInnings)-1].TotalRuns + 1, true
}

// ResolveWicket brings in newBatter after a dismissal. Scoring resumes, or
// moves to the over break if the wicket fell on the last ball of an over.
func (m *Machine) ResolveWicket(newBatter string, onStrike bool) bool {
	s := &m.state
	if s.PauseReason != models.PauseWicket || !m.canBat(newBatter) {
		return false
	}
	m.checkpoint()
	survivor := s.Striker
	if survivor == "" {
		survivor = s.NonStriker
	}
	if onStrike {
		s.Striker, s.NonStriker = newBatter, survivor
	} else {
		s.Striker, s.NonStriker = survivor, newBatter
	}
	s.Scorecard.EnsureBatter(newBatter)
	if s.OverBreakPending {
		s.OverBreakPending = false
		m.pause(models.PauseOver)
	} else {
		m.resume()
	}
	m.commit()
	return true
}

// batterLeft reports whether anyone in the batting side can still come in.
func (m *Machine) batterLeft() bool {
	for _, p := range m.state.BattingTeam.Squad() {
		if m.canBat(p) {
			return true
		}
	}
	return false
}

// canBat reports whether name may walk out to the crease now.
func (m *Machine) canBat(name string) bool {
	s := &m.state
	if !s.BattingTeam.HasPlayer(name) || name == s.Striker || name == s.NonStriker {
		return false
	}
	entry, ok := s.Scorecard.Batting[name]
	return !ok || !entry.IsOut()
}

// SetStriker picks the opening striker before the first ball of an innings.
// The openers get scorecard rows once play starts, so changing the pick
// leaves nothing behind.
func (m *Machine) SetStriker(name string) bool {
	s := &m.state
	if s.PauseReason != models.PauseInit || !m.canBat(name) {
		return false
	}
	m.checkpoint()
	s.Striker = name
	m.tryStart()
	m.commit()
	return true
}

// SetNonStriker picks the opening non-striker before the first ball.
func (m *Machine) SetNonStriker(name string) bool {
	s := &m.state
	if s.PauseReason != models.PauseInit || !m.canBat(name) {
		return false
	}
	m.checkpoint()
	s.NonStriker = name
	m.tryStart()
	m.commit()
	return true
}

// SetBowler picks the bowler for a new over, at innings start or at the over
// break. The previous over's bowler and anyone who has bowled their quota are
// refused.
func (m *Machine) SetBowler(name string) bool {
	s := &m.state
	if s.PauseReason != models.PauseInit && s.PauseReason != models.PauseOver {
		return false
	}
	if ok, _ := m.bowlerAvailable(name); !ok {
		return false
	}
	m.checkpoint()
	if prev := s.Bowler; prev != "" && prev != name {
		s.Scorecard.DropUnused(prev)
	}
	s.Bowler = name
	s.Scorecard.EnsureBowler(name)
	s.CurrentOver = models.OverTally{Bowler: name}
	s.BallsLog = []string{}
	if s.PauseReason == models.PauseOver {
		m.resume()
	} else {
		m.tryStart()
	}
	m.commit()
	return true
}

func (m *Machine) tryStart() {
	s := &m.state
	if s.PauseReason == models.PauseInit && s.Striker != "" && s.NonStriker != "" && s.Bowler != "" {
		m.resume()
	}
}

// Reasons a bowler can not take the next over.
const (
	ReasonBowledLastOver = "bowled the previous over"
	ReasonQuotaReached   = "quota reached"
)

// BowlerOption is one row of the bowler picker.
type BowlerOption struct {
	Name        string `json:"name"`
	OversBowled string `json:"oversBowled"`
	Wickets     int    `json:"wickets"`
	Runs        int    `json:"runs"`
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"`
}

func (m *Machine) bowlerAvailable(name string) (bool, string) {
	s := &m.state
	if !s.BowlingTeam.HasPlayer(name) {
		return false, "not in the fielding side"
	}
	if name == s.LastBowler {
		return false, ReasonBowledLastOver
	}
	if quota := m.BowlerQuota(); quota > 0 && s.Scorecard.Bowling[name].Balls >= quota*scorecard.BallsPerOver {
		return false, ReasonQuotaReached
	}
	return true, ""
}

// AvailableBowlers lists the fielding side with each player's eligibility
// for the next over.
func (m *Machine) AvailableBowlers() []BowlerOption {
	s := &m.state
	squad := s.BowlingTeam.Squad()
	opts := make([]BowlerOption, 0, len(squad))
	for _, name := range squad {
		entry := s.Scorecard.Bowling[name]
		ok, reason := m.bowlerAvailable(name)
		opts = append(opts, BowlerOption{
			Name:        name,
			OversBowled: scorecard.Overs(entry.Balls),
			Wickets:     entry.Wickets,
			Runs:        entry.Runs,
			Available:   ok,
			Reason:      reason,
		})
	}
	return opts
}

// ChangeBowler reattributes the over in progress (or the one just completed,
// during the over break) to name, moving its tallies off the old bowler's row.
// name must be free to have bowled that over: not the bowler of the over
// before it, and within quota once the over's balls are added.
func (m *Machine) ChangeBowler(name string) bool {
	s := &m.state
	over := s.CurrentOver
	old := over.Bowler
	if old == "" || name == old || !s.BowlingTeam.HasPlayer(name) || s.PauseReason == models.PauseInningsComplete {
		return false
	}
	overClosed := s.Bowler == "" && s.LastBowler == old
	before := s.LastBowler
	if overClosed {
		before = s.PrevOverBowler
	}
	if name == before {
		return false
	}
	if quota := m.BowlerQuota(); quota > 0 && s.Scorecard.Bowling[name].Balls+over.LegalBalls > quota*scorecard.BallsPerOver {
		return false
	}
	m.checkpoint()

	prev := s.Scorecard.Bowling[old]
	prev.Balls -= over.LegalBalls
	prev.Runs -= over.BowlerRuns
	prev.Wickets -= over.Wickets
	prev.Dots -= over.Dots
	prev.Wides -= over.Wides
	prev.NoBalls -= over.NoBalls
	if over.Maiden {
		prev.Maidens--
	}
	if prev.Balls == 0 && prev.Runs == 0 && prev.Wickets == 0 && prev.Wides == 0 && prev.NoBalls == 0 {
		s.Scorecard.RemoveBowler(old)
	} else {
		s.Scorecard.Bowling[old] = prev
	}

	s.Scorecard.EnsureBowler(name)
	next := s.Scorecard.Bowling[name]
	next.Balls += over.LegalBalls
	next.Runs += over.BowlerRuns
	next.Wickets += over.Wickets
	next.Dots += over.Dots
	next.Wides += over.Wides
	next.NoBalls += over.NoBalls
	if over.Maiden {
		next.Maidens++
	}
	s.Scorecard.Bowling[name] = next

	for _, batter := range over.Dismissed {
		entry := s.Scorecard.Batting[batter]
		if entry.Dismissal == nil {
			continue
		}
		if d, ok := strings.CutSuffix(*entry.Dismissal, "b "+old); ok {
			d += "b " + name
			entry.Dismissal = &d
			s.Scorecard.Batting[batter] = entry
		}
	}

	s.CurrentOver.Bowler = name
	if s.Bowler == old {
		s.Bowler = name
	}
	if overClosed {
		s.LastBowler = name
	}
	m.commit()
	return true
}

// SwapStriker exchanges the two batters' ends.
func (m *Machine) SwapStriker() bool {
	s := &m.state
	if s.PauseReason == models.PauseInningsComplete || s.Striker == "" || s.NonStriker == "" {
		return false
	}
	m.checkpoint()
	s.Striker, s.NonStriker = s.NonStriker, s.Striker
	m.commit()
	return true
}

// Replacement swaps a player in the batting or fielding roster, e.g. an
// impact substitute. The side's named impact player may come in; anyone else
// already in the squad may not. A player who has batted or bowled keeps
// their scorecard row, an unused row is dropped.
func (m *Machine) Replacement(teamName, out, in string) bool {
	s := &m.state
	in = strings.TrimSpace(in)
	var team *models.Team
	switch teamName {
	case s.BattingTeam.Name:
		team = &s.BattingTeam
	case s.BowlingTeam.Name:
		team = &s.BowlingTeam
	default:
		return false
	}
	if in == "" || slices.Contains(team.Players, in) || s.PauseReason == models.PauseNone {
		return false
	}
	idx := -1
	for i, p := range team.Players {
		if p == out {
			idx = i
			break
		}
	}
	if idx < 0 || out == s.Striker || out == s.NonStriker || out == s.Bowler {
		return false
	}
	m.checkpoint()
	team.Players = slices.Clone(team.Players)
	team.Players[idx] = in
	if team.ImpactPlayer == in {
		team.ImpactPlayer = ""
	}
	s.Scorecard.DropUnused(out)
	m.commit()
	return true
}

// Undo restores the snapshot taken before the last mutation.
func (m *Machine) Undo() bool {
	prev, ok := m.history.Pop()
	if !ok {
		return false
	}
	tc := m.state.TransferCode
	m.state = prev
	m.state.TransferCode = tc
	m.notify()
	return true
}

// StartNextInnings freezes the completed first innings and sets up the chase
// with the sides swapped.
func (m *Machine) StartNextInnings() bool {
	s := &m.state
	if s.Innings != 1 || s.PauseReason != models.PauseInningsComplete {
		return false
	}
	m.checkpoint()
	s.CompletedInnings = append(s.CompletedInnings, s.InningsState.Clone())
	sides := s.InningsState.Clone()
	s.InningsState = freshInnings(2, sides.BowlingTeam, sides.BattingTeam)
	m.commit()
	return true
}

// ApplyDLS sets a revised target for the chase, optionally shortening it to
// revisedOvers (zero keeps the current length). A target of zero asks for the
// computed one, which needs a cut. Each cut is measured from the previous
// one.
func (m *Machine) ApplyDLS(target, revisedOvers int) (bool, error) {
	s := &m.state
	if s.Innings != 2 {
		return false, nil
	}
	if target < 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	if revisedOvers < 0 || revisedOvers > s.MaxOvers || (revisedOvers > 0 && revisedOvers*scorecard.BallsPerOver < s.Balls) {
		return false, fmt.Errorf("%w: %d", ErrInvalidOvers, revisedOvers)
	}
	var team2 *float64
	if revisedOvers > 0 && revisedOvers != s.MaxOvers {
		chase, r2, err := DLSRevision(*s, revisedOvers)
		if err != nil {
			return false, err
		}
		team2 = &r2
		if target == 0 {
			target = chase.RevisedTarget
		}
	}
	if target == 0 {
		return false, fmt.Errorf("%w: a computed target needs a shorter chase", ErrInvalidTarget)
	}

	m.checkpoint()
	if s.ScheduledOvers == 0 {
		s.ScheduledOvers = s.MaxOvers
	}
	s.DLSRevisedTarget = &target
	if team2 != nil {
		s.DLSTeam2Resources = team2
	}
	if revisedOvers > 0 {
		s.MaxOvers = revisedOvers
	}
	if s.PauseReason != models.PauseInningsComplete && m.inningsOver() {
		s.OverBreakPending = false
		m.pause(models.PauseInningsComplete)
	}
	m.commit()
	return true, nil
}

// DLSRevision previews cutting the chase in s to revisedOvers in total. It
// returns the resource picture and the chasing side's unrounded resources
// after the cut.
func DLSRevision(s models.MatchState, revisedOvers int) (dls.ChaseResources, float64, error) {
	if s.Innings != 2 || len(s.CompletedInnings) == 0 {
		return dls.ChaseResources{}, 0, ErrNotChasing
	}
	if revisedOvers < 1 || revisedOvers > s.MaxOvers || revisedOvers*scorecard.BallsPerOver < s.Balls {
		return dls.ChaseResources{}, 0, fmt.Errorf("%w: %d", ErrInvalidOvers, revisedOvers)
	}
	scheduled := s.ScheduledOvers
	if scheduled == 0 {
		scheduled = s.MaxOvers
	}
	team2 := dls.Resources(float64(scheduled), 0)
	if s.DLSTeam2Resources != nil {
		team2 = *s.DLSTeam2Resources
	}
	r2 := dls.Revise(team2, s.MaxOvers, revisedOvers, s.Balls, s.Wickets)
	return dls.ChaseFor(s.CompletedInnings[0].TotalRuns, scheduled, r2), r2, nil
}

// SetTransferCode records the handoff code. It is not an undoable scoring
// action and does not notify observers.
func (m *Machine) SetTransferCode(tc *models.TransferCode) {
	m.state.TransferCode = tc
}
