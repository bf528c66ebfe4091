package rules

import (
	"context"

	"github.com/expr-lang/expr/vm"
)

// Sender delivers commands to the game mod.
type Sender interface {
	Send(msgType string, data any) error
}

// ActionFunc sends commands to the mod when a rule's condition is true.
// ctx carries the tick's time budget.
type ActionFunc func(ctx context.Context, env RuleEnv, out Sender) error

// Rule is the atomic unit of agent behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// so two rules never issue conflicting orders in the same tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
