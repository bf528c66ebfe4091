package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nstehr/vimy/vimy-tactics/ipc"
	"github.com/nstehr/vimy/vimy-tactics/journal"
	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/nstehr/vimy/vimy-tactics/tactics"
)

// ActionSpawnUnit orders a new unit onto the best unoccupied tile. With no
// unoccupied tile it does nothing this tick.
func ActionSpawnUnit(ctx context.Context, env RuleEnv, out Sender) error {
	ev := tactics.NewEvaluator(env.Pathfinder)
	cands := ev.ScoreSpawnSites(&env.State.Grid, env.State.Agents)
	site, ok := tactics.BestSpawnSite(cands)
	if !ok {
		slog.Debug("no spawn site available", "tick", env.State.Tick)
		return nil
	}

	slog.Debug("spawning unit",
		"x", site.Tile.Pos.X,
		"y", site.Tile.Pos.Y,
		"score", site.Score,
		"resourceDist", site.ResourceDist,
		"hostileDist", site.HostileDist,
	)
	if err := out.Send(ipc.TypeSpawnUnit, ipc.SpawnUnitCommand{X: site.Tile.Pos.X, Y: site.Tile.Pos.Y}); err != nil {
		return err
	}
	env.Memory[memLastSpawn] = env.State.Tick

	d := journal.NewDecision(journal.KindSpawn, env.State.Tick)
	d.Target = site.Tile.Pos
	d.Score = site.Score
	d.Candidates = len(cands)
	record(ctx, env, d)
	return nil
}

// ActionRouteIdleUnits sends every unclaimed idle unit toward its best
// objective.
func ActionRouteIdleUnits(ctx context.Context, env RuleEnv, out Sender) error {
	_, err := routeUnits(ctx, env, out, env.IdleUnits())
	return err
}

// ActionRerouteAll routes all friendly units again. Units are assigned one
// after another and each replaces only its own claim, so every unit sees
// where the others are heading and the group spreads across objectives.
// If the tick budget runs out first, the repath request stays set and the
// next tick reroutes everyone again.
func ActionRerouteAll(ctx context.Context, env RuleEnv, out Sender) error {
	done, err := routeUnits(ctx, env, out, env.State.Friendlies())
	if done {
		env.Memory[memRepath] = false
	}
	return err
}

// routeUnits assigns units in order and reports whether it got through all
// of them before ctx ended.
func routeUnits(ctx context.Context, env RuleEnv, out Sender, units []model.Agent) (bool, error) {
	claims := getClaims(env.Memory)
	env.Memory[memClaims] = claims

	var errs []error
	for i, u := range units {
		if err := ctx.Err(); err != nil {
			slog.Warn("routing budget exhausted", "routed", i, "remaining", len(units)-i)
			return false, errors.Join(errs...)
		}

		actor, err := actorID(u.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		ev := env.evaluatorFor(u)
		cands := ev.ScoreObjectives(u.Tile, &env.State.Grid, env.State.Agents, claimTable(claims, u.ID))
		best, ok := tactics.BestObjective(cands)
		if !ok {
			delete(claims, u.ID)
			if err := out.Send(ipc.TypeHold, ipc.HoldCommand{ActorID: actor, Reason: "no reachable objective"}); err != nil {
				errs = append(errs, fmt.Errorf("hold unit %d: %w", u.ID, err))
			}
			continue
		}

		goal := best.Tile.Pos
		slog.Debug("routing unit",
			"id", u.ID,
			"goal", fmt.Sprintf("(%d,%d)", goal.X, goal.Y),
			"value", best.Value,
			"cost", best.Path.Cost,
			"penalty", best.Penalty,
			"ownership", best.Ownership.String(),
			"enemyProximity", best.EnemyProximity,
		)
		err = out.Send(ipc.TypeMovePath, ipc.MovePathCommand{
			ActorID: actor,
			Steps:   best.Path.Steps,
			Cost:    best.Path.Cost,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("route unit %d: %w", u.ID, err))
			continue
		}
		claims[u.ID] = Claim{Target: goal, Tick: env.State.Tick}

		d := journal.NewDecision(journal.KindObjective, env.State.Tick)
		if a, ok := ev.Agent(); ok {
			d.AgentID = a.ID
		}
		d.Target = goal
		d.Score = best.Value
		d.PathCost = best.Path.Cost
		d.Candidates = len(cands)
		record(ctx, env, d)
	}
	return true, errors.Join(errs...)
}

// actorID converts a unit ID to the mod's actor ID width.
func actorID(id int) (uint32, error) {
	if id < 0 || uint64(id) > math.MaxUint32 {
		return 0, fmt.Errorf("unit id %d does not fit an actor id", id)
	}
	return uint32(id), nil
}

// record journals a decision. Journal failures are logged, never fatal to
// the tick.
func record(ctx context.Context, env RuleEnv, d journal.Decision) {
	if env.Journal == nil {
		return
	}
	d.Player = env.Player
	// The tick budget may already be spent; the write should still land.
	if err := env.Journal.SaveDecision(context.WithoutCancel(ctx), d); err != nil {
		slog.Warn("journal write failed", "kind", d.Kind, "error", err)
	}
}
