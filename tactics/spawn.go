package tactics

import "github.com/nstehr/vimy/vimy-tactics/model"

const (
	spawnBase          = 100.0
	spawnHostileWeight = 0.5
)

// Unbounded marks a distance to an empty target set.
const Unbounded = -1

// SpawnCandidate is one scored unoccupied tile.
type SpawnCandidate struct {
	Tile         model.Tile
	ResourceDist int // Unbounded when the grid has no resource tiles
	HostileDist  int // Unbounded when no hostiles are known
	Score        float64
}

// SpawnScore favours tiles near resources and, at half weight, tiles far from
// hostiles. An Unbounded distance is the same for every candidate of a call,
// so its term is dropped rather than carried as an infinite value.
func SpawnScore(resourceDist, hostileDist int) float64 {
	score := spawnBase
	if resourceDist != Unbounded {
		score -= float64(resourceDist)
	}
	if hostileDist != Unbounded {
		score += spawnHostileWeight * float64(hostileDist)
	}
	return score
}

// ScoreSpawnSites scores every unoccupied tile in the order the grid lists
// them.
func (e *Evaluator) ScoreSpawnSites(grid Grid, agents []model.Agent) []SpawnCandidate {
	empty := grid.UnoccupiedTiles()
	if len(empty) == 0 {
		return nil
	}
	resources := grid.ResourceCoords(false)
	hostiles := hostilePositions(agents)

	out := make([]SpawnCandidate, 0, len(empty))
	for _, tile := range empty {
		c := SpawnCandidate{Tile: tile, ResourceDist: Unbounded, HostileDist: Unbounded}
		if d, ok := minDistance(tile.Pos, resources); ok {
			c.ResourceDist = d
		}
		if d, ok := minDistance(tile.Pos, hostiles); ok {
			c.HostileDist = d
		}
		c.Score = SpawnScore(c.ResourceDist, c.HostileDist)
		out = append(out, c)
	}
	return out
}

// EvaluateSpawnSite picks the unoccupied tile with the highest spawn score.
// Returns false when the grid has no unoccupied tiles.
func (e *Evaluator) EvaluateSpawnSite(grid Grid, agents []model.Agent) (model.Tile, bool) {
	c, ok := BestSpawnSite(e.ScoreSpawnSites(grid, agents))
	return c.Tile, ok
}

// BestSpawnSite applies the selection rule to scored spawn candidates.
func BestSpawnSite(candidates []SpawnCandidate) (SpawnCandidate, bool) {
	ranked := make([]scored[SpawnCandidate], len(candidates))
	for i, c := range candidates {
		ranked[i] = scored[SpawnCandidate]{candidate: c, score: c.Score}
	}
	win, _, ok := best(ranked)
	return win, ok
}
