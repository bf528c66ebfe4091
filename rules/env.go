package rules

import (
	"github.com/nstehr/vimy/vimy-tactics/journal"
	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/nstehr/vimy/vimy-tactics/tactics"
)

// RuleEnv wraps the tick's game state and exposes helper methods callable
// from expr conditions.
type RuleEnv struct {
	State      model.GameState
	Player     string
	Memory     map[string]any
	Pathfinder tactics.Pathfinder
	Journal    journal.Store // nil disables journaling
}

func (e RuleEnv) Tick() int      { return e.State.Tick }
func (e RuleEnv) Cash() int      { return e.State.Player.Cash }
func (e RuleEnv) SpawnCost() int { return e.State.Player.SpawnCost }

func (e RuleEnv) UnoccupiedCount() int {
	return len(e.State.Grid.UnoccupiedTiles())
}

func (e RuleEnv) ResourceCount() int {
	return len(e.State.Grid.ResourceCoords(false))
}

func (e RuleEnv) HiddenResourceCount() int {
	return e.State.Grid.HiddenResourceCount()
}

func (e RuleEnv) HostileCount() int  { return len(e.State.Hostiles()) }
func (e RuleEnv) FriendlyCount() int { return len(e.State.Friendlies()) }

// IdleUnits returns friendly units that are idle and not already heading
// for an objective.
func (e RuleEnv) IdleUnits() []model.Agent {
	claims := getClaims(e.Memory)
	var out []model.Agent
	for _, a := range e.State.Friendlies() {
		if !a.Idle {
			continue
		}
		if _, claimed := claims[a.ID]; claimed {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ClaimCount is the number of units currently assigned an objective.
func (e RuleEnv) ClaimCount() int { return len(getClaims(e.Memory)) }

// RepathRequested is set by event detection when the map changed enough
// that every unit should pick its objective again.
func (e RuleEnv) RepathRequested() bool {
	v, _ := e.Memory[memRepath].(bool)
	return v
}

// SpawnReady reports whether cooldown ticks have passed since the last
// spawn order.
func (e RuleEnv) SpawnReady(cooldown int) bool {
	last, ok := e.Memory[memLastSpawn].(int)
	if !ok {
		return true
	}
	return e.State.Tick-last >= cooldown
}

// evaluatorFor returns an evaluator bound to the given unit.
func (e RuleEnv) evaluatorFor(a model.Agent) *tactics.Evaluator {
	ev := tactics.NewEvaluator(e.Pathfinder)
	ev.SetAgent(a)
	return ev
}
