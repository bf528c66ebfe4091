// Package journal records the decisions the tactical evaluators made so a
// match can be reviewed after the fact.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nstehr/vimy/vimy-tactics/model"
)

type Kind string

const (
	KindSpawn     Kind = "spawn"
	KindObjective Kind = "objective"
)

// Decision is one evaluator outcome.
type Decision struct {
	ID         string
	Player     string
	Tick       int
	Kind       Kind
	AgentID    int // 0 for spawn decisions
	Target     model.Coord
	Score      float64
	PathCost   float64
	Candidates int
	CreatedAt  time.Time
}

// NewDecision stamps a decision with a fresh ID and the current time.
func NewDecision(kind Kind, tick int) Decision {
	return Decision{
		ID:        uuid.NewString(),
		Kind:      kind,
		Tick:      tick,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists decisions.
type Store interface {
	Init(ctx context.Context) error
	SaveDecision(ctx context.Context, d Decision) error
	// ListDecisions returns up to limit decisions, newest first. A limit of
	// zero or less returns all of them.
	ListDecisions(ctx context.Context, limit int) ([]Decision, error)
}

// NewStore opens the named backend. maxEntries bounds the memory backend;
// zero or less keeps everything.
func NewStore(kind, sqlitePath string, maxEntries int) (Store, error) {
	switch kind {
	case "", "memory":
		return NewBoundedMemoryStore(maxEntries), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported journal backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
