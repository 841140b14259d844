package innings

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/crease/internal/dls"
	"github.com/DhavalSuthar-24/crease/internal/models"
)

func squad(prefix string) models.Team {
	players := make([]string, 11)
	for i := range players {
		players[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return models.Team{Name: prefix, Players: players}
}

func newTestMatch(t *testing.T, overs int) *Machine {
	t.Helper()
	m, err := NewMatch(Setup{MatchID: "m1", TeamA: squad("a"), TeamB: squad("b"), MaxOvers: overs}, DefaultRules())
	require.NoError(t, err)
	return m
}

func start(t *testing.T, m *Machine, striker, nonStriker, bowler string) {
	t.Helper()
	require.True(t, m.SetStriker(striker))
	require.True(t, m.SetNonStriker(nonStriker))
	require.True(t, m.SetBowler(bowler))
	require.False(t, m.State().IsPaused)
}

func ball(t *testing.T, m *Machine, ev models.BallEvent) {
	t.Helper()
	ok, err := m.AddBall(ev)
	require.NoError(t, err)
	require.True(t, ok)
}

func runs(n int) models.BallEvent { return models.BallEvent{Runs: n} }

func extra(t models.ExtraType, n int) models.BallEvent {
	return models.BallEvent{Runs: n, IsExtra: true, ExtraType: t}
}

func out(w models.WicketType, fielder string) models.BallEvent {
	return models.BallEvent{IsWicket: true, WicketType: w, Fielder: fielder}
}

func boolPtr(b bool) *bool { return &b }

// playInnings feeds plan into m, rotating bowlers at each over break and
// sending in the next batter after every wicket.
func playInnings(t *testing.T, m *Machine, plan []models.BallEvent, bowlers, nextBatters []string) {
	t.Helper()
	next := 0
	for _, ev := range plan {
		st := m.State()
		if st.PauseReason == models.PauseOver {
			over := st.Balls / 6
			require.True(t, m.SetBowler(bowlers[over%len(bowlers)]), "bowler for over %d", over+1)
		}
		ball(t, m, ev)
		st = m.State()
		if st.PauseReason == models.PauseWicket {
			require.True(t, m.ResolveWicket(nextBatters[next], st.Striker == ""))
			next++
		}
	}
}

// scriptedInnings builds balls deliveries with bowled wickets at the given
// indexes; the first twos deliveries that are not wickets score 2, the rest 1.
func scriptedInnings(balls, twos int, wicketsAt ...int) []models.BallEvent {
	wickets := map[int]bool{}
	for _, i := range wicketsAt {
		wickets[i] = true
	}
	plan := make([]models.BallEvent, 0, balls)
	scored := 0
	for i := 0; i < balls; i++ {
		if wickets[i] {
			plan = append(plan, out(models.WicketBowled, ""))
			continue
		}
		if scored < twos {
			plan = append(plan, runs(2))
		} else {
			plan = append(plan, runs(1))
		}
		scored++
	}
	return plan
}

func assertConsistent(t *testing.T, st models.MatchState) {
	t.Helper()
	batRuns, bowlBalls, bowlRuns, bowlWickets := 0, 0, 0, 0
	for _, b := range st.Scorecard.Batting {
		batRuns += b.Runs
	}
	for _, b := range st.Scorecard.Bowling {
		bowlBalls += b.Balls
		bowlRuns += b.Runs
		bowlWickets += b.Wickets
	}
	assert.Equal(t, st.TotalRuns, batRuns+st.Extras.Total(), "runs reconcile")
	assert.Equal(t, st.Balls, bowlBalls, "legal balls reconcile")
	assert.Equal(t, st.TotalRuns-st.Extras.Bye-st.Extras.LegBye, bowlRuns, "bowler runs exclude byes")
	assert.LessOrEqual(t, bowlWickets, st.Wickets)
	assert.Len(t, st.FallOfWickets, st.Wickets)
}

func TestFullMatchChaseWonByWickets(t *testing.T) {
	m := newTestMatch(t, 20)
	bowlersB := []string{"b7", "b8", "b9", "b10", "b11"}
	start(t, m, "a1", "a2", bowlersB[0])
	playInnings(t, m, scriptedInnings(120, 36, 10, 30, 50, 70, 90, 110), bowlersB, []string{"a3", "a4", "a5", "a6", "a7", "a8"})

	st := m.State()
	assert.Equal(t, 150, st.TotalRuns)
	assert.Equal(t, 6, st.Wickets)
	assert.Equal(t, "4.0", st.Scorecard.Bowling["b7"].Overs)
	assert.Equal(t, models.PauseInningsComplete, st.PauseReason)
	assertConsistent(t, st)
	for _, b := range bowlersB {
		assert.Equal(t, 24, st.Scorecard.Bowling[b].Balls, b)
	}

	require.True(t, m.StartNextInnings())
	st = m.State()
	assert.Equal(t, 2, st.Innings)
	assert.Equal(t, "b", st.BattingTeam.Name)
	assert.Equal(t, models.PauseInit, st.PauseReason)
	target, ok := m.Target()
	require.True(t, ok)
	assert.Equal(t, 151, target)

	bowlersA := []string{"a7", "a8", "a9", "a10", "a11"}
	start(t, m, "b1", "b2", bowlersA[0])
	playInnings(t, m, scriptedInnings(111, 44, 8, 40, 64, 100), bowlersA, []string{"b3", "b4", "b5", "b6"})

	st = m.State()
	assert.Equal(t, 151, st.TotalRuns)
	assert.Equal(t, 4, st.Wickets)
	assert.Equal(t, 111, st.Balls)
	assert.Equal(t, models.PauseInningsComplete, st.PauseReason)
	assertConsistent(t, st)

	res := m.Result()
	assert.True(t, res.Decided)
	assert.Equal(t, "b", res.Winner)
	assert.Equal(t, 6, res.Margin)
	assert.Equal(t, "b won by 6 wickets", res.Summary)

	assert.False(t, m.StartNextInnings())
	ok, err := m.AddBall(runs(1))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAddBallIsNoopWhilePaused(t *testing.T) {
	m := newTestMatch(t, 20)
	before := m.State()

	ok, err := m.AddBall(runs(4))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, m.State())
	assert.False(t, m.CanUndo())
}

func TestMaidenOverAndOverBreak(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}

	st := m.State()
	assert.Equal(t, models.PauseOver, st.PauseReason)
	assert.Equal(t, "a2", st.Striker)
	assert.Equal(t, "a1", st.NonStriker)
	assert.Empty(t, st.Bowler)
	assert.Equal(t, "b1", st.LastBowler)
	assert.Equal(t, 1, st.Scorecard.Bowling["b1"].Maidens)
	assert.Equal(t, 6, st.Scorecard.Bowling["b1"].Dots)
	assert.Equal(t, "1.0", st.Scorecard.Bowling["b1"].Overs)
	assert.Equal(t, []string{"•", "•", "•", "•", "•", "•"}, st.BallsLog)

	assert.False(t, m.SetBowler("b1"))
	require.True(t, m.SetBowler("b2"))
	st = m.State()
	assert.False(t, st.IsPaused)
	assert.Empty(t, st.BallsLog)
	assert.Equal(t, "b2", st.CurrentOver.Bowler)
}

func TestExtrasBreakMaiden(t *testing.T) {
	for _, ex := range []models.BallEvent{extra(models.ExtraWide, 0), extra(models.ExtraLegBye, 1)} {
		m := newTestMatch(t, 20)
		start(t, m, "a1", "a2", "b1")
		ball(t, m, ex)
		for m.State().PauseReason != models.PauseOver {
			ball(t, m, runs(0))
		}
		assert.Zero(t, m.State().Scorecard.Bowling["b1"].Maidens, string(ex.ExtraType))
	}
}

func TestWideAccounting(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	ball(t, m, extra(models.ExtraWide, 2))

	st := m.State()
	assert.Equal(t, 3, st.TotalRuns)
	assert.Equal(t, 3, st.Extras.Wide)
	assert.Zero(t, st.Balls)
	assert.Zero(t, st.Scorecard.Batting["a1"].Balls)
	assert.Equal(t, 3, st.Scorecard.Bowling["b1"].Runs)
	assert.Equal(t, 1, st.Scorecard.Bowling["b1"].Wides)
	assert.Equal(t, "a1", st.Striker)
	assert.Equal(t, []string{"2wd"}, st.BallsLog)
}

func TestByesNotChargedToBowler(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	ball(t, m, extra(models.ExtraBye, 1))

	st := m.State()
	assert.Equal(t, 1, st.TotalRuns)
	assert.Equal(t, 1, st.Balls)
	assert.Equal(t, 1, st.Scorecard.Batting["a1"].Balls)
	assert.Zero(t, st.Scorecard.Batting["a1"].Runs)
	assert.Zero(t, st.Scorecard.Bowling["b1"].Runs)
	assert.Equal(t, 1, st.Scorecard.Bowling["b1"].Dots)
	assert.Equal(t, "a1", st.Striker, "byes do not rotate strike by default")
	assert.Equal(t, []string{"1b"}, st.BallsLog)
}

func TestRotateOnExtraRuns(t *testing.T) {
	rules := DefaultRules()
	rules.RotateOnExtraRuns = true
	m, err := NewMatch(Setup{MatchID: "m1", TeamA: squad("a"), TeamB: squad("b"), MaxOvers: 20}, rules)
	require.NoError(t, err)
	start(t, m, "a1", "a2", "b1")

	ball(t, m, extra(models.ExtraLegBye, 1))
	assert.Equal(t, "a2", m.State().Striker)
	ball(t, m, extra(models.ExtraWide, 1))
	assert.Equal(t, "a1", m.State().Striker)
}

func TestNoBallRunsOffTheBatRotate(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")

	ball(t, m, extra(models.ExtraNoBall, 1))
	st := m.State()
	assert.Equal(t, "a2", st.Striker)
	assert.Equal(t, "a1", st.NonStriker)
	assert.Equal(t, 1, st.Scorecard.Batting["a1"].Runs)
	assert.Equal(t, 2, st.TotalRuns)

	ball(t, m, extra(models.ExtraNoBall, 2))
	assert.Equal(t, "a2", m.State().Striker)
}

func TestStrikeRotationAtOverEnd(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 5; i++ {
		ball(t, m, runs(0))
	}
	ball(t, m, runs(1))
	st := m.State()
	assert.Equal(t, "a1", st.Striker, "odd single and over end cancel out")

	require.True(t, m.SetBowler("b2"))
	for i := 0; i < 5; i++ {
		ball(t, m, runs(2))
	}
	ball(t, m, runs(4))
	assert.Equal(t, "a2", m.State().Striker)
}

func TestNoBallAndFreeHit(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")

	ball(t, m, extra(models.ExtraNoBall, 4))
	st := m.State()
	assert.Equal(t, 5, st.TotalRuns)
	assert.Equal(t, 1, st.Extras.NoBall)
	assert.Zero(t, st.Balls)
	assert.Equal(t, 4, st.Scorecard.Batting["a1"].Runs)
	assert.Equal(t, 1, st.Scorecard.Batting["a1"].Balls)
	assert.Equal(t, 1, st.Scorecard.Batting["a1"].Fours)
	assert.Equal(t, 5, st.Scorecard.Bowling["b1"].Runs)
	assert.True(t, st.IsFreeHit)
	assert.Equal(t, []string{"4nb"}, st.BallsLog)

	ball(t, m, out(models.WicketBowled, ""))
	st = m.State()
	assert.Zero(t, st.Wickets, "bowled does not stand on a free hit")
	assert.False(t, st.IsPaused)
	assert.False(t, st.IsFreeHit)
	assert.Equal(t, 1, st.Balls)
	assert.False(t, st.Scorecard.Batting["a1"].IsOut())
	assert.Equal(t, "•", st.BallsLog[1])
}

func TestFreeHitLastsOneDelivery(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	ball(t, m, extra(models.ExtraNoBall, 0))
	ball(t, m, extra(models.ExtraWide, 0))
	assert.False(t, m.State().IsFreeHit)

	ball(t, m, out(models.WicketBowled, ""))
	assert.Equal(t, 1, m.State().Wickets)
}

func TestFreeHitAllowsRunOut(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	ball(t, m, extra(models.ExtraNoBall, 0))
	ball(t, m, extra(models.ExtraNoBall, 0))
	require.True(t, m.State().IsFreeHit)

	ball(t, m, models.BallEvent{Runs: 1, IsWicket: true, WicketType: models.WicketRunOut, Fielder: "b5", IsStrikerOut: boolPtr(false)})

	st := m.State()
	assert.Equal(t, 1, st.Wickets)
	assert.Equal(t, 3, st.TotalRuns)
	assert.Equal(t, models.PauseWicket, st.PauseReason)
	assert.Equal(t, "a1", st.NonStriker)
	assert.Empty(t, st.Striker)
	require.NotNil(t, st.Scorecard.Batting["a2"].Dismissal)
	assert.Equal(t, "run out (b5)", *st.Scorecard.Batting["a2"].Dismissal)
	assert.Zero(t, st.Scorecard.Bowling["b1"].Wickets)
	assert.Equal(t, []models.FallOfWicket{{Wicket: 1, Batter: "a2", Score: 3, Overs: "0.1"}}, st.FallOfWickets)

	require.True(t, m.ResolveWicket("a3", true))
	st = m.State()
	assert.Equal(t, "a3", st.Striker)
	assert.Equal(t, "a1", st.NonStriker)
	assert.False(t, st.IsPaused)
}

func TestWicketOnLastBallDefersOverBreak(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 5; i++ {
		ball(t, m, runs(0))
	}
	ball(t, m, out(models.WicketCaught, "b3"))

	st := m.State()
	assert.Equal(t, models.PauseWicket, st.PauseReason)
	assert.True(t, st.OverBreakPending)
	assert.Equal(t, 1, st.Scorecard.Bowling["b1"].Maidens, "wicket maiden")
	assert.Equal(t, 1, st.Scorecard.Bowling["b1"].Wickets)
	assert.Equal(t, "c b3 b b1", *st.Scorecard.Batting["a1"].Dismissal)
	assert.Equal(t, []string{"•", "•", "•", "•", "•", "W"}, st.BallsLog)

	assert.False(t, m.ResolveWicket("a1", false), "dismissed batter")
	assert.False(t, m.ResolveWicket("a2", false), "already at the crease")
	assert.False(t, m.ResolveWicket("zz", false), "not in the side")

	require.True(t, m.ResolveWicket("a3", false))
	st = m.State()
	assert.Equal(t, models.PauseOver, st.PauseReason)
	assert.False(t, st.OverBreakPending)
	assert.Equal(t, "a2", st.Striker)
	assert.Equal(t, "a3", st.NonStriker)
}

func TestBallValidation(t *testing.T) {
	cases := []struct {
		name string
		ev   models.BallEvent
		err  error
	}{
		{"too many runs", runs(8), ErrInvalidRuns},
		{"negative runs", runs(-1), ErrInvalidRuns},
		{"bye without runs", extra(models.ExtraBye, 0), ErrInvalidRuns},
		{"unknown extra", extra("penalty", 5), ErrInvalidExtra},
		{"extra without type", models.BallEvent{IsExtra: true}, ErrInvalidExtra},
		{"unknown wicket", out("Timed", ""), ErrInvalidWicket},
		{"bowled off a wide", models.BallEvent{ExtraType: models.ExtraWide, IsWicket: true, WicketType: models.WicketBowled}, ErrInvalidWicket},
		{"caught without fielder", out(models.WicketCaught, " "), ErrFielderRequired},
		{"run out without batter", out(models.WicketRunOut, "b2"), ErrRunOutBatterRequired},
		{"stumped without keeper", out(models.WicketStumped, ""), ErrFielderRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMatch(t, 20)
			start(t, m, "a1", "a2", "b1")
			before := m.State()
			depth := m.history.Len()

			ok, err := m.AddBall(tc.ev)
			assert.ErrorIs(t, err, tc.err)
			assert.False(t, ok)
			assert.Equal(t, before, m.State())
			assert.Equal(t, depth, m.history.Len())
		})
	}
}

func TestStumpedDefaultsToKeeper(t *testing.T) {
	b := squad("b")
	keeper := 4
	b.WicketKeeper = &keeper
	m, err := NewMatch(Setup{MatchID: "m1", TeamA: squad("a"), TeamB: b, MaxOvers: 20}, DefaultRules())
	require.NoError(t, err)
	start(t, m, "a1", "a2", "b9")

	ball(t, m, out(models.WicketStumped, ""))
	assert.Equal(t, "st b5 b b9", *m.State().Scorecard.Batting["a1"].Dismissal)
}

func TestChangeBowlerMovesOverTallies(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	ball(t, m, runs(1))
	ball(t, m, out(models.WicketBowled, ""))
	require.True(t, m.ResolveWicket("a3", true))
	ball(t, m, runs(2))

	require.True(t, m.ChangeBowler("b4"))
	st := m.State()
	assert.NotContains(t, st.Scorecard.Bowling, "b1")
	assert.Equal(t, []string{"b4"}, st.Scorecard.BowlingOrder)
	b4 := st.Scorecard.Bowling["b4"]
	assert.Equal(t, 3, b4.Balls)
	assert.Equal(t, 3, b4.Runs)
	assert.Equal(t, 1, b4.Wickets)
	assert.Equal(t, 1, b4.Dots)
	assert.Equal(t, "0.3", b4.Overs)
	assert.Equal(t, "b b4", *st.Scorecard.Batting["a2"].Dismissal)
	assert.Equal(t, "b4", st.Bowler)

	assert.False(t, m.ChangeBowler("b4"))
	assert.False(t, m.ChangeBowler("a5"))

	for i := 0; i < 3; i++ {
		ball(t, m, runs(0))
	}
	assert.Equal(t, "b4", m.State().LastBowler)
}

func TestChangeBowlerDuringOverBreakKeepsEarlierOvers(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 6; i++ {
		ball(t, m, runs(1))
	}
	require.True(t, m.SetBowler("b2"))
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}
	assert.False(t, m.ChangeBowler("b1"), "b1 bowled the over before")
	require.True(t, m.ChangeBowler("b3"))

	st := m.State()
	assert.Equal(t, "b3", st.LastBowler)
	assert.Equal(t, 6, st.Scorecard.Bowling["b1"].Balls)
	assert.Equal(t, 6, st.Scorecard.Bowling["b1"].Runs)
	assert.Equal(t, 6, st.Scorecard.Bowling["b3"].Balls)
	assert.Equal(t, 1, st.Scorecard.Bowling["b3"].Maidens)
	assert.NotContains(t, st.Scorecard.Bowling, "b2")
	assert.False(t, m.SetBowler("b3"))
	assert.True(t, m.SetBowler("b2"))
}

func TestChangeBowlerHonoursRotationAndQuota(t *testing.T) {
	m := newTestMatch(t, 5)
	require.Equal(t, 1, m.BowlerQuota())
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}
	require.True(t, m.SetBowler("b2"))
	ball(t, m, runs(0))
	assert.False(t, m.ChangeBowler("b1"), "bowled the previous over")
	for i := 0; i < 5; i++ {
		ball(t, m, runs(0))
	}

	require.True(t, m.SetBowler("b3"))
	ball(t, m, runs(1))
	assert.False(t, m.ChangeBowler("b1"), "quota already used")
	assert.False(t, m.ChangeBowler("b2"), "bowled the previous over")
	require.True(t, m.ChangeBowler("b4"))
	assert.Equal(t, 1, m.State().Scorecard.Bowling["b4"].Balls)
}

func TestUndoRestoresPriorState(t *testing.T) {
	m := newTestMatch(t, 20)
	assert.False(t, m.Undo())
	start(t, m, "a1", "a2", "b1")

	before := m.State()
	ball(t, m, runs(4))
	ball(t, m, out(models.WicketLBW, ""))
	require.True(t, m.Undo())
	require.True(t, m.Undo())
	assert.Equal(t, before, m.State())

	for i := 0; i < 3; i++ {
		require.True(t, m.Undo())
	}
	st := m.State()
	assert.Equal(t, models.PauseInit, st.PauseReason)
	assert.Empty(t, st.Striker)
	assert.False(t, m.Undo())
}

func TestUndoKeepsTransferCode(t *testing.T) {
	m := newTestMatch(t, 20)
	start(t, m, "a1", "a2", "b1")
	ball(t, m, runs(1))
	m.SetTransferCode(&models.TransferCode{Code: "123456"})

	require.True(t, m.Undo())
	require.NotNil(t, m.State().TransferCode)
	assert.Equal(t, "123456", m.State().TransferCode.Code)
}

func TestObserversSeeEveryCommit(t *testing.T) {
	m := newTestMatch(t, 20)
	var seen []int
	m.Subscribe(func(st models.MatchState) { seen = append(seen, st.TotalRuns) })

	start(t, m, "a1", "a2", "b1")
	ball(t, m, runs(3))
	_, _ = m.AddBall(runs(9))
	m.Undo()

	assert.Equal(t, []int{0, 0, 0, 3, 0}, seen)
}

func TestBowlerQuotaAndAvailability(t *testing.T) {
	m := newTestMatch(t, 5)
	assert.Equal(t, 1, m.BowlerQuota())
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}

	opts := m.AvailableBowlers()
	require.Len(t, opts, 11)
	assert.Equal(t, "b1", opts[0].Name)
	assert.False(t, opts[0].Available)
	assert.Equal(t, ReasonBowledLastOver, opts[0].Reason)
	assert.Equal(t, "1.0", opts[0].OversBowled)
	assert.True(t, opts[1].Available)

	require.True(t, m.SetBowler("b2"))
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}
	assert.False(t, m.SetBowler("b1"))
	opts = m.AvailableBowlers()
	assert.Equal(t, ReasonQuotaReached, opts[0].Reason)
	assert.Equal(t, ReasonBowledLastOver, opts[1].Reason)
	assert.True(t, m.SetBowler("b3"))
}

func TestConfiguredQuota(t *testing.T) {
	rules := DefaultRules()
	rules.MaxOversPerBowler = 2
	assert.Equal(t, 2, rules.BowlerQuota(20))
	assert.Equal(t, 4, DefaultRules().BowlerQuota(20))
	assert.Equal(t, 10, DefaultRules().BowlerQuota(50))
	assert.Equal(t, 2, DefaultRules().BowlerQuota(6))
}

func oneOverFirstInnings(t *testing.T, scores ...int) *Machine {
	t.Helper()
	m := newTestMatch(t, 1)
	start(t, m, "a1", "a2", "b1")
	for _, r := range scores {
		ball(t, m, runs(r))
	}
	require.Equal(t, models.PauseInningsComplete, m.State().PauseReason)
	require.True(t, m.StartNextInnings())
	start(t, m, "b1", "b2", "a1")
	return m
}

func TestResults(t *testing.T) {
	m := oneOverFirstInnings(t, 1, 1, 1, 1, 1, 1)
	for i := 0; i < 5; i++ {
		ball(t, m, runs(1))
	}
	ball(t, m, runs(0))
	assert.Equal(t, "a won by 1 run", m.Result().Summary)

	m = oneOverFirstInnings(t, 1, 1, 1, 1, 1, 1)
	for i := 0; i < 6; i++ {
		ball(t, m, runs(1))
	}
	res := m.Result()
	assert.True(t, res.Tie)
	assert.Equal(t, "match tied", res.Summary)

	m = oneOverFirstInnings(t, 1, 1, 1, 1, 1, 1)
	ball(t, m, runs(6))
	assert.False(t, m.Result().Decided)
	ball(t, m, runs(1))
	res = m.Result()
	assert.Equal(t, "b won by 10 wickets", res.Summary)
	assert.Equal(t, "wickets", res.By)
}

func TestProgress(t *testing.T) {
	m := oneOverFirstInnings(t, 1, 1, 1, 1, 1, 1)
	ball(t, m, runs(6))
	ball(t, m, runs(0))

	p := ProgressOf(m.State())
	assert.Equal(t, 7, p.Target)
	assert.Equal(t, 1, p.RunsNeeded)
	assert.Equal(t, 4, p.BallsLeft)
	assert.Equal(t, 1.5, p.RequiredRunRate)
	assert.Equal(t, 18.0, p.RunRate)
}

func TestApplyDLS(t *testing.T) {
	m := newTestMatch(t, 1)
	ok, err := m.ApplyDLS(100, 0)
	assert.NoError(t, err)
	assert.False(t, ok, "first innings")

	m = oneOverFirstInnings(t, 2, 2, 2, 2, 2, 2)
	ball(t, m, runs(4))

	_, err = m.ApplyDLS(0, 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = m.ApplyDLS(10, 2)
	assert.ErrorIs(t, err, ErrInvalidOvers)

	ok, err = m.ApplyDLS(4, 0)
	require.NoError(t, err)
	require.True(t, ok)
	st := m.State()
	assert.Equal(t, 4, *st.DLSRevisedTarget)
	assert.Equal(t, models.PauseInningsComplete, st.PauseReason)
	assert.Equal(t, "b won by 10 wickets", m.Result().Summary)
}

// chaseAt is a 50-over chase of 300 stopped after balls with wickets down.
func chaseAt(balls, wickets int) models.MatchState {
	return models.MatchState{
		MatchID: "m1",
		InningsState: models.InningsState{
			Innings:     2,
			BattingTeam: squad("b"),
			BowlingTeam: squad("a"),
			Balls:       balls,
			Wickets:     wickets,
			Striker:     "b3",
			NonStriker:  "b4",
			IsPaused:    true,
			PauseReason: models.PauseOver,
			Scorecard:   models.NewScorecard(),
		},
		MaxOvers:         50,
		ScheduledOvers:   50,
		MaxWickets:       10,
		CompletedInnings: []models.InningsState{{Innings: 1, TotalRuns: 300}},
	}
}

func TestApplyDLSAcrossTwoInterruptions(t *testing.T) {
	once := Restore(chaseAt(120, 2), DefaultRules())
	ok, err := once.ApplyDLS(0, 30)
	require.NoError(t, err)
	require.True(t, ok)
	want := *once.State().DLSRevisedTarget
	assert.Equal(t, dls.Interrupted(300, 50, 30, 120, 2).RevisedTarget, want)

	twice := Restore(chaseAt(120, 2), DefaultRules())
	_, err = twice.ApplyDLS(0, 40)
	require.NoError(t, err)
	first := *twice.State().DLSRevisedTarget
	_, err = twice.ApplyDLS(0, 30)
	require.NoError(t, err)

	st := twice.State()
	assert.Equal(t, want, *st.DLSRevisedTarget)
	assert.Less(t, want, first)
	assert.Equal(t, 30, st.MaxOvers)
	assert.Equal(t, 50, st.ScheduledOvers)
	require.NotNil(t, st.DLSTeam2Resources)

	preview, _, err := DLSRevision(st, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.0, preview.Team1Resources)
	assert.Less(t, preview.RevisedTarget, want)

	_, _, err = DLSRevision(st, 35)
	assert.ErrorIs(t, err, ErrInvalidOvers)
	_, _, err = DLSRevision(st, 19)
	assert.ErrorIs(t, err, ErrInvalidOvers, "already 20 overs bowled")

	require.True(t, twice.Undo())
	assert.Equal(t, first, *twice.State().DLSRevisedTarget)
	assert.Equal(t, 40, twice.State().MaxOvers)
}

func TestDLSRevisionNeedsChase(t *testing.T) {
	m := newTestMatch(t, 20)
	_, _, err := DLSRevision(m.State(), 10)
	assert.ErrorIs(t, err, ErrNotChasing)

	st := chaseAt(0, 0)
	chase, r2, err := DLSRevision(st, 50)
	require.NoError(t, err)
	assert.Equal(t, 301, chase.RevisedTarget)
	assert.InDelta(t, 100, r2, 1e-9)
}

func TestSwapAndReplacement(t *testing.T) {
	m := newTestMatch(t, 20)
	assert.False(t, m.SwapStriker())
	start(t, m, "a1", "a2", "b1")
	require.True(t, m.SwapStriker())
	assert.Equal(t, "a2", m.State().Striker)

	assert.False(t, m.Replacement("b", "b3", "sub"), "not during live play")
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}
	assert.False(t, m.Replacement("a", "a1", "sub"), "at the crease")
	assert.False(t, m.Replacement("b", "b3", "b4"), "already in the side")
	require.True(t, m.Replacement("b", "b3", "sub"))
	assert.True(t, m.State().BowlingTeam.HasPlayer("sub"))
	assert.False(t, m.State().BowlingTeam.HasPlayer("b3"))
	assert.True(t, m.SetBowler("sub"))
}

func TestReplacementBringsInImpactPlayer(t *testing.T) {
	b := squad("b")
	b.ImpactPlayer = "b12"
	m, err := NewMatch(Setup{MatchID: "m1", TeamA: squad("a"), TeamB: b, MaxOvers: 20}, DefaultRules())
	require.NoError(t, err)
	start(t, m, "a1", "a2", "b1")
	for i := 0; i < 6; i++ {
		ball(t, m, runs(0))
	}

	require.True(t, m.Replacement("b", "b1", "b12"))
	team := m.State().BowlingTeam
	assert.Contains(t, team.Players, "b12")
	assert.Empty(t, team.ImpactPlayer)
	assert.False(t, team.HasPlayer("b1"))
	assert.Equal(t, 6, m.State().Scorecard.Bowling["b1"].Balls, "figures already bowled stay")
	assert.False(t, m.Replacement("b", "b4", "b12"), "already in the side")
	assert.True(t, m.SetBowler("b12"))
}

func TestChangingOpeningPicksLeavesNoRows(t *testing.T) {
	m := newTestMatch(t, 20)
	require.True(t, m.SetStriker("a1"))
	require.True(t, m.SetStriker("a3"))
	require.True(t, m.SetBowler("b1"))
	require.True(t, m.SetBowler("b2"))
	st := m.State()
	assert.Empty(t, st.Scorecard.Batting)
	assert.Equal(t, []string{"b2"}, st.Scorecard.BowlingOrder)

	require.True(t, m.SetNonStriker("a2"))
	ball(t, m, runs(0))
	st = m.State()
	assert.Equal(t, []string{"a3", "a2"}, st.Scorecard.BattingOrder)
	assert.NotContains(t, st.Scorecard.Batting, "a1")
	assert.NotContains(t, st.Scorecard.Bowling, "b1")
}

func TestSetupValidation(t *testing.T) {
	_, err := NewMatch(Setup{TeamA: squad("a"), TeamB: squad("a"), MaxOvers: 20}, DefaultRules())
	assert.ErrorIs(t, err, ErrInvalidSetup)

	_, err = NewMatch(Setup{TeamA: squad("a"), TeamB: squad("b")}, DefaultRules())
	assert.ErrorIs(t, err, ErrInvalidSetup)

	dup := squad("b")
	dup.Players[3] = "b1"
	_, err = NewMatch(Setup{TeamA: squad("a"), TeamB: dup, MaxOvers: 20}, DefaultRules())
	assert.ErrorIs(t, err, ErrInvalidSetup)

	_, err = NewMatch(Setup{TeamA: squad("a"), TeamB: squad("b"), MaxOvers: 20, TossWinner: "c", TossDecision: TossBat}, DefaultRules())
	assert.ErrorIs(t, err, ErrInvalidSetup)

	m, err := NewMatch(Setup{TeamA: squad("a"), TeamB: squad("b"), MaxOvers: 20, TossWinner: "a", TossDecision: TossBowl}, DefaultRules())
	require.NoError(t, err)
	st := m.State()
	assert.Equal(t, "b", st.BattingTeam.Name)
	assert.Equal(t, 10, st.MaxWickets)
	assert.Equal(t, models.PauseInit, st.PauseReason)
}

func TestUnevenRostersCapWickets(t *testing.T) {
	short := models.Team{Name: "b", Players: []string{"b1", "b2", "b3", "b4", "b5"}}
	m, err := NewMatch(Setup{MatchID: "m1", TeamA: squad("a"), TeamB: short, MaxOvers: 20}, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 4, m.State().MaxWickets)

	_, err = NewMatch(Setup{MatchID: "m1", TeamA: squad("a"), TeamB: short, MaxOvers: 20, MaxWickets: 10}, DefaultRules())
	assert.ErrorIs(t, err, ErrInvalidSetup)
}

func TestInningsEndsWhenNoBatterLeft(t *testing.T) {
	m := Restore(models.MatchState{
		MatchID: "m1",
		InningsState: models.InningsState{
			Innings:     1,
			BattingTeam: models.Team{Name: "x", Players: []string{"x1", "x2", "x3"}},
			BowlingTeam: squad("b"),
			IsPaused:    true,
			PauseReason: models.PauseInit,
			Scorecard:   models.NewScorecard(),
		},
		MaxOvers:   20,
		MaxWickets: 10,
	}, DefaultRules())
	start(t, m, "x1", "x2", "b1")

	ball(t, m, out(models.WicketBowled, ""))
	require.Equal(t, models.PauseWicket, m.State().PauseReason)
	require.True(t, m.ResolveWicket("x3", true))

	ball(t, m, out(models.WicketBowled, ""))
	st := m.State()
	assert.Equal(t, 2, st.Wickets)
	assert.Equal(t, models.PauseInningsComplete, st.PauseReason)
	assert.True(t, m.StartNextInnings())
}
