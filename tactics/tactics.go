// Package tactics ranks spawn sites and objective tiles for a grid-based RTS
// agent. Both evaluators are pure over the snapshots they are given: all
// scratch state lives on the stack of a single call, so an Evaluator may be
// shared across goroutines as long as its Pathfinder is.
package tactics

import "github.com/nstehr/vimy/vimy-tactics/model"

// Grid is the read-only view of the map the evaluators and pathfinders need.
type Grid interface {
	UnoccupiedTiles() []model.Tile
	ResourceCoords(unclaimedOnly bool) []model.Coord
	TileAt(c model.Coord) (model.Tile, bool)
	// Neighbors lists the passable tiles one step from c, always in the
	// same order.
	Neighbors(c model.Coord) []model.Coord
}

// Path is a route from start to goal together with its total cost.
// An empty Steps slice means the goal is unreachable.
type Path struct {
	Steps []model.Coord
	Cost  float64
}

func (p Path) Empty() bool { return len(p.Steps) == 0 }

// Goal returns the last step of the path.
func (p Path) Goal() (model.Coord, bool) {
	if p.Empty() {
		return model.Coord{}, false
	}
	return p.Steps[len(p.Steps)-1], true
}

// Pathfinder computes shortest routes over a Grid. The path and its cost come
// back as one value, so there is no "distance of the last search" to race on.
type Pathfinder interface {
	FindPath(start, goal model.Coord, grid Grid) Path
}

// Claims maps a tile to the number of other agents already heading for it.
type Claims map[model.Coord]int

// Evaluator scores candidate tiles for one owning agent.
type Evaluator struct {
	pathfinder Pathfinder
	agent      *model.Agent
}

func NewEvaluator(pf Pathfinder) *Evaluator {
	return &Evaluator{pathfinder: pf}
}

// SetAgent binds the evaluator to the agent it decides for. The binding is
// informational; it does not change how candidates are scored.
func (e *Evaluator) SetAgent(a model.Agent) {
	e.agent = &a
}

// Agent returns the bound agent, or false if none has been set.
func (e *Evaluator) Agent() (model.Agent, bool) {
	if e.agent == nil {
		return model.Agent{}, false
	}
	return *e.agent, true
}

// hostilePositions collects the tiles occupied by hostile agents.
func hostilePositions(agents []model.Agent) []model.Coord {
	var out []model.Coord
	for _, a := range agents {
		if a.IsHostile() {
			out = append(out, a.Tile)
		}
	}
	return out
}

// minDistance returns the smallest Manhattan distance from c to any of the
// targets, or false when there are no targets.
func minDistance(c model.Coord, targets []model.Coord) (int, bool) {
	if len(targets) == 0 {
		return 0, false
	}
	best := Manhattan(c, targets[0])
	for _, t := range targets[1:] {
		if d := Manhattan(c, t); d < best {
			best = d
		}
	}
	return best, true
}
