package dls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourcesBounds(t *testing.T) {
	assert.InDelta(t, 100, Resources(50, 0), 1e-9)
	assert.Equal(t, Resources(50, 0), Resources(80, 0), "overs clamp to 50")
	assert.Zero(t, Resources(0, 0))
	assert.Zero(t, Resources(-5, 0))
	assert.Zero(t, Resources(math.NaN(), 3))
	assert.Zero(t, Resources(20, MaxWickets))
	assert.Zero(t, Resources(20, 15))
	assert.Equal(t, Resources(20, 0), Resources(20, -1))
}

func TestResourcesMonotonic(t *testing.T) {
	for w := 0; w < MaxWickets; w++ {
		prev := -1.0
		for u := 0.0; u <= FullOvers; u += 0.5 {
			r := Resources(u, w)
			assert.GreaterOrEqual(t, r, prev, "u=%v w=%d", u, w)
			prev = r
		}
	}
	for u := 1.0; u <= FullOvers; u++ {
		prev := 101.0
		for w := 0; w <= MaxWickets; w++ {
			r := Resources(u, w)
			assert.LessOrEqual(t, r, prev, "u=%v w=%d", u, w)
			prev = r
		}
	}
}

func TestRevisedTarget(t *testing.T) {
	assert.Equal(t, 101, RevisedTarget(200, 100, 50))
	assert.Equal(t, 102, RevisedTarget(201, 100, 50))
	assert.Equal(t, 201, RevisedTarget(200, 100, 100))
	assert.Equal(t, 201, RevisedTarget(200, 100, 140), "resources clamp to 100")
	assert.Equal(t, 201, RevisedTarget(200, 0, 0))
	assert.Equal(t, 1, RevisedTarget(200, 100, -20))
	assert.Equal(t, 1, RevisedTarget(-4, 100, 50))
}

func TestChase(t *testing.T) {
	full := Chase(150, 20, 20)
	assert.Equal(t, 151, full.RevisedTarget)
	assert.Equal(t, full.Team1Resources, full.Team2Resources)

	cut := Chase(150, 20, 10)
	assert.Equal(t, 56.91, cut.Team1Resources)
	assert.Equal(t, 32.42, cut.Team2Resources)
	assert.Equal(t, 87, cut.RevisedTarget)
}

func TestInterrupted(t *testing.T) {
	same := Interrupted(150, 20, 20, 60, 2)
	assert.Equal(t, 151, same.RevisedTarget)

	cut := Interrupted(150, 20, 12, 60, 2)
	assert.Less(t, cut.RevisedTarget, 151)
	assert.Less(t, cut.Team2Resources, cut.Team1Resources)
}

func TestReviseBuildsOnEarlierCut(t *testing.T) {
	full := Resources(50, 0)
	direct := Revise(full, 50, 30, 120, 2)
	stepped := Revise(Revise(full, 50, 40, 120, 2), 40, 30, 120, 2)
	assert.InDelta(t, direct, stepped, 1e-9)
	assert.Equal(t, Interrupted(300, 50, 30, 120, 2).RevisedTarget, ChaseFor(300, 50, stepped).RevisedTarget)

	// A later stoppage is measured from where play stopped again.
	later := Revise(Revise(full, 50, 40, 120, 2), 40, 30, 150, 3)
	assert.Less(t, later, full)
	assert.Less(t, ChaseFor(300, 50, later).RevisedTarget, Interrupted(300, 50, 40, 120, 2).RevisedTarget)

	assert.Equal(t, full, Revise(full, 50, 50, 120, 2))
}
