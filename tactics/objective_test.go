package tactics

import (
	"testing"

	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioGrid has resource tiles at (0,0) visible and unowned and at (5,5)
// hidden and unowned.
func scenarioGrid() *model.Grid {
	grid := model.NewGrid(6, 6)
	grid.Set(at(0, 0), model.Tile{Passable: true, Resource: true})
	grid.Set(at(5, 5), model.Tile{Passable: true, Resource: true, Hidden: true})
	return grid
}

func valuesByPos(cands []ObjectiveCandidate) map[model.Coord]float64 {
	out := make(map[model.Coord]float64, len(cands))
	for _, c := range cands {
		out[c.Tile.Pos] = c.Value
	}
	return out
}

func TestEvaluateObjectivePathScenario(t *testing.T) {
	grid := scenarioGrid()
	e := NewEvaluator(&manhattanPaths{})

	values := valuesByPos(e.ScoreObjectives(at(2, 2), grid, nil, Claims{}))
	assert.Equal(t, map[model.Coord]float64{at(0, 0): 96, at(5, 5): 294}, values)

	path, ok := e.EvaluateObjectivePath(at(2, 2), grid, nil, Claims{})
	require.True(t, ok)
	goal, _ := path.Goal()
	assert.Equal(t, at(5, 5), goal)
	assert.Equal(t, at(2, 2), path.Steps[0])
	assert.Equal(t, 6.0, path.Cost)
}

func TestEvaluateObjectivePathHostileOwned(t *testing.T) {
	grid := scenarioGrid()
	tile, _ := grid.TileAt(at(5, 5))
	tile.Owner = owner(50)
	grid.Set(at(5, 5), tile)
	agents := []model.Agent{
		{ID: 50, Team: model.Hostile, Tile: at(5, 4)},
	}
	e := NewEvaluator(&manhattanPaths{})

	for _, claims := range []Claims{nil, {}, {at(5, 5): 3}, {at(5, 5): 100}} {
		cands := e.ScoreObjectives(at(2, 2), grid, agents, claims)
		values := valuesByPos(cands)
		assert.Equal(t, 594.0, values[at(5, 5)], "claims %v", claims)

		path, ok := e.EvaluateObjectivePath(at(2, 2), grid, agents, claims)
		require.True(t, ok)
		goal, _ := path.Goal()
		assert.Equal(t, at(5, 5), goal, "claims %v", claims)
	}
}

func TestEvaluateObjectivePathExcludesStart(t *testing.T) {
	grid := scenarioGrid()
	e := NewEvaluator(&manhattanPaths{})

	cands := e.ScoreObjectives(at(5, 5), grid, nil, nil)
	require.Len(t, cands, 1)
	assert.Equal(t, at(0, 0), cands[0].Tile.Pos)

	path, ok := e.EvaluateObjectivePath(at(5, 5), grid, nil, nil)
	require.True(t, ok)
	goal, _ := path.Goal()
	assert.NotEqual(t, at(5, 5), goal)
}

func TestEvaluateObjectivePathOnlyStartIsResource(t *testing.T) {
	grid := model.NewGrid(3, 3)
	grid.Set(at(1, 1), model.Tile{Passable: true, Resource: true})
	pf := &manhattanPaths{}
	e := NewEvaluator(pf)

	path, ok := e.EvaluateObjectivePath(at(1, 1), grid, nil, nil)
	assert.False(t, ok)
	assert.True(t, path.Empty())
	assert.Zero(t, pf.calls, "start tile must not be searched")
}

func TestEvaluateObjectivePathUnreachable(t *testing.T) {
	grid := scenarioGrid()
	pf := &manhattanPaths{unreachable: map[model.Coord]bool{at(5, 5): true}}
	e := NewEvaluator(pf)

	cands := e.ScoreObjectives(at(2, 2), grid, nil, nil)
	require.Len(t, cands, 1)
	assert.Equal(t, at(0, 0), cands[0].Tile.Pos)

	pf.unreachable[at(0, 0)] = true
	_, ok := e.EvaluateObjectivePath(at(2, 2), grid, nil, nil)
	assert.False(t, ok)
}

func TestEvaluateObjectivePathReusesSearch(t *testing.T) {
	grid := scenarioGrid()
	pf := &manhattanPaths{}
	e := NewEvaluator(pf)

	_, ok := e.EvaluateObjectivePath(at(2, 2), grid, nil, nil)
	require.True(t, ok)
	assert.Equal(t, 2, pf.calls, "one search per candidate, none for the winner")
}

func TestContentionPenalty(t *testing.T) {
	c := at(3, 3)
	claims := Claims{c: 3}

	assert.Equal(t, 90.0, ContentionPenalty(c, Unowned, claims))
	assert.Equal(t, 90.0, ContentionPenalty(c, OwnedByFriendly, claims))
	assert.Equal(t, 0.0, ContentionPenalty(c, OwnedByHostile, claims))
	assert.Equal(t, 0.0, ContentionPenalty(c, OwnedByUnknown, claims))
	assert.Equal(t, 0.0, ContentionPenalty(at(0, 0), Unowned, claims), "absent entry")
	assert.Equal(t, 0.0, ContentionPenalty(c, Unowned, nil))
	assert.Equal(t, 0.0, ContentionPenalty(c, Unowned, Claims{c: 0}))
}

func TestContentionSpreadsAgents(t *testing.T) {
	// Two equally valuable objectives; the one already claimed twice loses.
	grid := model.NewGrid(5, 1)
	grid.Set(at(0, 0), model.Tile{Passable: true, Resource: true})
	grid.Set(at(4, 0), model.Tile{Passable: true, Resource: true})
	e := NewEvaluator(&manhattanPaths{})

	path, ok := e.EvaluateObjectivePath(at(2, 0), grid, nil, Claims{at(0, 0): 2})
	require.True(t, ok)
	goal, _ := path.Goal()
	assert.Equal(t, at(4, 0), goal)
}

func TestEvaluateObjectivePathFriendlyOwned(t *testing.T) {
	grid := scenarioGrid()
	tile, _ := grid.TileAt(at(5, 5))
	tile.Owner = owner(1)
	grid.Set(at(5, 5), tile)
	agents := []model.Agent{{ID: 1, Team: model.Friendly, Tile: at(5, 5)}}
	e := NewEvaluator(&manhattanPaths{})

	cands := e.ScoreObjectives(at(2, 2), grid, agents, Claims{at(5, 5): 3})
	values := valuesByPos(cands)
	assert.Equal(t, 300.0-6-90, values[at(5, 5)])
}

func TestEvaluateObjectivePathUnknownOwner(t *testing.T) {
	grid := scenarioGrid()
	tile, _ := grid.TileAt(at(0, 0))
	tile.Owner = owner(77)
	grid.Set(at(0, 0), tile)
	e := NewEvaluator(&manhattanPaths{})

	cands := e.ScoreObjectives(at(2, 2), grid, nil, Claims{at(0, 0): 5})
	for _, c := range cands {
		if c.Tile.Pos == at(0, 0) {
			assert.Equal(t, OwnedByUnknown, c.Ownership)
			assert.Equal(t, 96.0, c.Value)
		}
	}
}

func TestEnemyProximityNotScored(t *testing.T) {
	grid := scenarioGrid()
	e := NewEvaluator(&manhattanPaths{})
	near := []model.Agent{{ID: 8, Team: model.Hostile, Tile: at(5, 4)}}

	calm := valuesByPos(e.ScoreObjectives(at(2, 2), grid, nil, nil))
	cands := e.ScoreObjectives(at(2, 2), grid, near, nil)
	for _, c := range cands {
		assert.Equal(t, calm[c.Tile.Pos], c.Value, "value for %v", c.Tile.Pos)
		switch c.Tile.Pos {
		case at(5, 5):
			assert.Equal(t, 1, c.EnemyProximity)
		case at(0, 0):
			assert.Equal(t, 9, c.EnemyProximity)
		}
	}

	for _, c := range e.ScoreObjectives(at(2, 2), grid, nil, nil) {
		assert.Equal(t, ProximityHorizon, c.EnemyProximity)
	}
}

func TestEvaluateObjectivePathTieIsDeterministic(t *testing.T) {
	grid := model.NewGrid(5, 1)
	grid.Set(at(0, 0), model.Tile{Passable: true, Resource: true})
	grid.Set(at(4, 0), model.Tile{Passable: true, Resource: true})
	e := NewEvaluator(&manhattanPaths{})

	for i := 0; i < 50; i++ {
		path, ok := e.EvaluateObjectivePath(at(2, 0), grid, nil, nil)
		require.True(t, ok)
		goal, _ := path.Goal()
		assert.Equal(t, at(0, 0), goal, "first resource in grid order wins the tie")
	}
}

func TestObjectiveBase(t *testing.T) {
	assert.Equal(t, 100.0, ObjectiveBase(model.Tile{}, Unowned))
	assert.Equal(t, 300.0, ObjectiveBase(model.Tile{Hidden: true}, Unowned))
	assert.Equal(t, 600.0, ObjectiveBase(model.Tile{}, OwnedByHostile))
	assert.Equal(t, 600.0, ObjectiveBase(model.Tile{Hidden: true}, OwnedByHostile))
	assert.Equal(t, 100.0, ObjectiveBase(model.Tile{}, OwnedByFriendly))
}
