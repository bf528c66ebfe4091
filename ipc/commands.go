package ipc

import "github.com/nstehr/vimy/vimy-tactics/model"

// Command types sent back to the mod.
const (
	TypeSpawnUnit = "spawn_unit"
	TypeMovePath  = "move_path"
	TypeHold      = "hold"
)

type SpawnUnitCommand struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type,omitempty"`
}

// MovePathCommand orders a unit along an explicit route. Steps include the
// unit's current tile first.
type MovePathCommand struct {
	ActorID uint32        `json:"actor_id"`
	Steps   []model.Coord `json:"steps"`
	Cost    float64       `json:"cost"`
}

// HoldCommand tells a unit to stay put this tick because no objective was
// worth pursuing.
type HoldCommand struct {
	ActorID uint32 `json:"actor_id"`
	Reason  string `json:"reason"`
}
