package rules

import (
	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/nstehr/vimy/vimy-tactics/tactics"
)

// Memory keys.
const (
	memClaims    = "claims"
	memRepath    = "repathRequested"
	memLastSpawn = "lastSpawnTick"
)

// claimGrace is how long an idle unit keeps its claim before we assume the
// move order was dropped and release it.
const claimGrace = 10

// Claim gives a unit's objective persistent identity across ticks. Without
// it every unit would re-pick each tick and they would pile onto the same
// tile instead of spreading out.
type Claim struct {
	Target model.Coord
	Tick   int // tick the order was issued
}

func getClaims(memory map[string]any) map[int]Claim {
	if v, ok := memory[memClaims].(map[int]Claim); ok {
		return v
	}
	return make(map[int]Claim)
}

// GetClaims is the public accessor, keyed by unit ID.
func GetClaims(memory map[string]any) map[int]Claim {
	return getClaims(memory)
}

// updateClaims drops claims of units that died, reached their target, or
// have sat idle past the grace period.
func updateClaims(env RuleEnv) {
	claims := getClaims(env.Memory)
	alive := make(map[int]model.Agent)
	for _, a := range env.State.Friendlies() {
		alive[a.ID] = a
	}

	for id, c := range claims {
		a, ok := alive[id]
		switch {
		case !ok:
			delete(claims, id)
		case a.Tile == c.Target:
			delete(claims, id)
		case a.Idle && env.State.Tick-c.Tick > claimGrace:
			delete(claims, id)
		}
	}
	env.Memory[memClaims] = claims
}

// claimTable counts, per tile, the units other than self that are heading
// there.
func claimTable(claims map[int]Claim, self int) tactics.Claims {
	table := make(tactics.Claims)
	for id, c := range claims {
		if id == self {
			continue
		}
		table[c.Target]++
	}
	return table
}
