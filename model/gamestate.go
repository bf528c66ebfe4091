package model

// GameState is the per-tick snapshot the mod pushes to the sidecar.
type GameState struct {
	Tick   int     `json:"tick"`
	Player Player  `json:"player"`
	Grid   Grid    `json:"grid"`
	Agents []Agent `json:"agents"`
}

type Player struct {
	Name      string `json:"name"`
	Cash      int    `json:"cash"`
	SpawnCost int    `json:"spawnCost"`
}

// Team is the affiliation of an agent relative to the player the sidecar
// plays for.
type Team string

const (
	Friendly Team = "friendly"
	Hostile  Team = "hostile"
)

// Agent is a unit on the grid. Tile is the coordinate it currently occupies.
type Agent struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Team Team   `json:"team"`
	Tile Coord  `json:"tile"`
	Idle bool   `json:"idle"`
}

func (a Agent) IsHostile() bool { return a.Team == Hostile }

// Hostiles returns the agents not on our side, in snapshot order.
func (gs GameState) Hostiles() []Agent {
	var out []Agent
	for _, a := range gs.Agents {
		if a.IsHostile() {
			out = append(out, a)
		}
	}
	return out
}

func (gs GameState) Friendlies() []Agent {
	var out []Agent
	for _, a := range gs.Agents {
		if !a.IsHostile() {
			out = append(out, a)
		}
	}
	return out
}
