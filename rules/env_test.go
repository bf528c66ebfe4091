package rules

import (
	"testing"

	"github.com/nstehr/vimy/vimy-tactics/model"
)

func TestIdleUnitsSkipsClaimedAndHostile(t *testing.T) {
	env := RuleEnv{
		State: model.GameState{
			Agents: []model.Agent{
				{ID: 1, Team: model.Friendly, Idle: true},
				{ID: 2, Team: model.Friendly, Idle: true}, // claimed
				{ID: 3, Team: model.Friendly, Idle: false},
				{ID: 4, Team: model.Hostile, Idle: true},
			},
		},
		Memory: map[string]any{
			memClaims: map[int]Claim{2: {Target: model.Coord{X: 1, Y: 1}}},
		},
	}

	got := env.IdleUnits()
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("IdleUnits() = %+v, want only unit 1", got)
	}
	if env.ClaimCount() != 1 {
		t.Errorf("ClaimCount() = %d, want 1", env.ClaimCount())
	}
}

func TestSpawnReady(t *testing.T) {
	env := RuleEnv{State: model.GameState{Tick: 130}, Memory: make(map[string]any)}
	if !env.SpawnReady(25) {
		t.Error("SpawnReady should be true before any spawn")
	}
	env.Memory[memLastSpawn] = 110
	if env.SpawnReady(25) {
		t.Error("SpawnReady should be false 20 ticks after a spawn")
	}
	if !env.SpawnReady(20) {
		t.Error("SpawnReady should be true once the cooldown has elapsed")
	}
}

func TestCounts(t *testing.T) {
	grid := model.NewGrid(3, 3)
	grid.Set(model.Coord{X: 0, Y: 0}, model.Tile{Passable: true, Resource: true, Hidden: true})
	grid.Set(model.Coord{X: 2, Y: 2}, model.Tile{Passable: true, Resource: true})
	grid.Set(model.Coord{X: 1, Y: 1}, model.Tile{Passable: true, Occupied: true})
	env := RuleEnv{
		State: model.GameState{
			Grid: *grid,
			Agents: []model.Agent{
				{ID: 1, Team: model.Friendly},
				{ID: 2, Team: model.Hostile},
				{ID: 3, Team: model.Hostile},
			},
		},
		Memory: make(map[string]any),
	}

	if n := env.UnoccupiedCount(); n != 8 {
		t.Errorf("UnoccupiedCount() = %d, want 8", n)
	}
	if n := env.ResourceCount(); n != 2 {
		t.Errorf("ResourceCount() = %d, want 2", n)
	}
	if n := env.HiddenResourceCount(); n != 1 {
		t.Errorf("HiddenResourceCount() = %d, want 1", n)
	}
	if n := env.HostileCount(); n != 2 {
		t.Errorf("HostileCount() = %d, want 2", n)
	}
	if n := env.FriendlyCount(); n != 1 {
		t.Errorf("FriendlyCount() = %d, want 1", n)
	}
	if env.RepathRequested() {
		t.Error("RepathRequested() should default to false")
	}
}
