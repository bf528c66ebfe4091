package tactics

import (
	"testing"

	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x, y int) model.Coord { return model.Coord{X: x, Y: y} }

func owner(id int) *int { return &id }

// manhattanPaths walks x first then y and charges one per step. Goals listed
// in unreachable come back empty.
type manhattanPaths struct {
	unreachable map[model.Coord]bool
	calls       int
}

func (m *manhattanPaths) FindPath(start, goal model.Coord, _ Grid) Path {
	m.calls++
	if m.unreachable[goal] {
		return Path{}
	}
	steps := []model.Coord{start}
	cur := start
	for cur.X != goal.X {
		if cur.X < goal.X {
			cur.X++
		} else {
			cur.X--
		}
		steps = append(steps, cur)
	}
	for cur.Y != goal.Y {
		if cur.Y < goal.Y {
			cur.Y++
		} else {
			cur.Y--
		}
		steps = append(steps, cur)
	}
	return Path{Steps: steps, Cost: float64(Manhattan(start, goal))}
}

func TestManhattan(t *testing.T) {
	pts := []model.Coord{at(0, 0), at(3, 4), at(-2, 7), at(5, -1), at(3, 4)}
	for _, a := range pts {
		for _, b := range pts {
			assert.Equal(t, Manhattan(a, b), Manhattan(b, a), "symmetry for %v %v", a, b)
			assert.Equal(t, a == b, Manhattan(a, b) == 0, "zero iff equal for %v %v", a, b)
		}
	}
	assert.Equal(t, 7, Manhattan(at(0, 0), at(3, 4)))
	assert.Equal(t, 13, Manhattan(at(-2, 7), at(5, 1)))
}

func TestBestFirstSeenWinsTies(t *testing.T) {
	got, score, ok := best([]scored[string]{
		{"a", 1}, {"b", 5}, {"c", 5}, {"d", 2},
	})
	require.True(t, ok)
	assert.Equal(t, "b", got)
	assert.Equal(t, 5.0, score)

	_, _, ok = best[string](nil)
	assert.False(t, ok)
}

func TestAgentBinding(t *testing.T) {
	e := NewEvaluator(&manhattanPaths{})
	_, ok := e.Agent()
	assert.False(t, ok, "fresh evaluator has no bound agent")

	e.SetAgent(model.Agent{ID: 4, Team: model.Friendly})
	a, ok := e.Agent()
	require.True(t, ok)
	assert.Equal(t, 4, a.ID)
}
