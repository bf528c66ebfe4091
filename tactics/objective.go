package tactics

import "github.com/nstehr/vimy/vimy-tactics/model"

// Objective base values. Hostile ownership outranks being undiscovered.
const (
	objectiveBase        = 100.0
	objectiveHiddenBase  = 300.0
	objectiveHostileBase = 600.0
)

// contentionWeight scales the squared claim count.
const contentionWeight = 10.0

// ProximityHorizon caps the reported enemy proximity of an objective: hostiles
// further than this many tiles away read as this distance.
const ProximityHorizon = 18

// Ownership classifies who holds a tile from the evaluating side's view.
type Ownership int

const (
	Unowned Ownership = iota
	OwnedByFriendly
	OwnedByHostile
	OwnedByUnknown // owner ID is not among the known agents
)

func (o Ownership) String() string {
	switch o {
	case Unowned:
		return "unowned"
	case OwnedByFriendly:
		return "friendly"
	case OwnedByHostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// ObjectiveCandidate is one reachable objective and the parts of its score.
type ObjectiveCandidate struct {
	Tile      model.Tile
	Ownership Ownership
	Base      float64
	Path      Path
	Penalty   float64
	// EnemyProximity is the distance to the nearest hostile, capped at
	// ProximityHorizon. It is reported for callers and does not enter Value.
	EnemyProximity int
	Value          float64
}

// ObjectiveBase returns the intrinsic value of capturing a tile.
func ObjectiveBase(tile model.Tile, own Ownership) float64 {
	switch {
	case own == OwnedByHostile:
		return objectiveHostileBase
	case tile.Hidden:
		return objectiveHiddenBase
	default:
		return objectiveBase
	}
}

// ContentionPenalty discourages sending several agents to the same objective.
// Tiles held by a hostile are never penalised: the contest there is with the
// enemy, not with allies. Tiles held by an agent outside the snapshot are not
// penalised either.
func ContentionPenalty(c model.Coord, own Ownership, claims Claims) float64 {
	if own != Unowned && own != OwnedByFriendly {
		return 0
	}
	n, ok := claims[c]
	if !ok {
		return 0
	}
	return float64(n*n) * contentionWeight
}

func classifyOwner(tile model.Tile, byID map[int]model.Agent) Ownership {
	if tile.Owner == nil {
		return Unowned
	}
	a, ok := byID[*tile.Owner]
	switch {
	case !ok:
		return OwnedByUnknown
	case a.IsHostile():
		return OwnedByHostile
	default:
		return OwnedByFriendly
	}
}

// ScoreObjectives scores every reachable resource tile other than start, in
// the order the grid lists resource coordinates. Candidates the pathfinder
// cannot reach are left out.
func (e *Evaluator) ScoreObjectives(start model.Coord, grid Grid, agents []model.Agent, claims Claims) []ObjectiveCandidate {
	hostiles := hostilePositions(agents)
	byID := make(map[int]model.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	var out []ObjectiveCandidate
	for _, pos := range grid.ResourceCoords(false) {
		if pos == start {
			continue
		}
		tile, ok := grid.TileAt(pos)
		if !ok {
			continue
		}

		own := classifyOwner(tile, byID)
		path := e.pathfinder.FindPath(start, pos, grid)
		if path.Empty() {
			continue
		}

		proximity := ProximityHorizon
		if d, ok := minDistance(pos, hostiles); ok && d < proximity {
			proximity = d
		}

		c := ObjectiveCandidate{
			Tile:           tile,
			Ownership:      own,
			Base:           ObjectiveBase(tile, own),
			Path:           path,
			Penalty:        ContentionPenalty(pos, own, claims),
			EnemyProximity: proximity,
		}
		c.Value = c.Base - path.Cost - c.Penalty
		out = append(out, c)
	}
	return out
}

// EvaluateObjectivePath returns the route from start to the objective with
// the highest tactical value. Returns false when no objective is reachable.
func (e *Evaluator) EvaluateObjectivePath(start model.Coord, grid Grid, agents []model.Agent, claims Claims) (Path, bool) {
	c, ok := BestObjective(e.ScoreObjectives(start, grid, agents, claims))
	return c.Path, ok
}

// BestObjective applies the selection rule to scored objectives.
func BestObjective(candidates []ObjectiveCandidate) (ObjectiveCandidate, bool) {
	ranked := make([]scored[ObjectiveCandidate], len(candidates))
	for i, c := range candidates {
		ranked[i] = scored[ObjectiveCandidate]{candidate: c, score: c.Value}
	}
	win, _, ok := best(ranked)
	return win, ok
}
