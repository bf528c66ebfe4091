package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nstehr/vimy/vimy-tactics/ipc"
	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/nstehr/vimy/vimy-tactics/rules"
)

// Agent owns the decision-making for a single player session.
type Agent struct {
	Out    rules.Sender
	Player string
	Engine *rules.Engine

	prev *stateSnapshot
}

func New(out rules.Sender, engine *rules.Engine) *Agent {
	return &Agent{Out: out, Engine: engine}
}

// HandleHello completes the handshake so the mod knows the sidecar is ready.
func (a *Agent) HandleHello(_ context.Context, env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Player = hello.Player
	if c, ok := a.Out.(*ipc.Connection); ok {
		c.Player = hello.Player
	}
	slog.Info("player identified", "player", a.Player)

	return ack()
}

func (a *Agent) HandleGameState(ctx context.Context, env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.GameState
	if err := env.Decode(&gs); err != nil {
		return nil, err
	}

	slog.Debug("game state received",
		"player", a.Player,
		"tick", gs.Tick,
		"cash", gs.Player.Cash,
		"grid", gs.Grid.Cols*gs.Grid.Rows,
		"friendlies", len(gs.Friendlies()),
		"hostiles", len(gs.Hostiles()),
		"resources", len(gs.Grid.ResourceCoords(false)),
	)

	snap := takeSnapshot(gs)
	if events := detectEvents(gs, a.prev, snap); len(events) > 0 {
		kinds := make([]string, len(events))
		for i, e := range events {
			kinds[i] = string(e.Kind)
			slog.Info("game event", "kind", e.Kind, "tick", e.Tick, "detail", e.Detail)
		}
		a.Engine.RequestRepath(strings.Join(kinds, ","))
	}
	a.prev = &snap

	if err := a.Engine.Evaluate(ctx, gs, a.Player, a.Out); err != nil {
		slog.Error("rule engine error", "error", err)
	}

	return ack()
}

func ack() (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
