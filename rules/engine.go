package rules

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vimy/vimy-tactics/journal"
	"github.com/nstehr/vimy/vimy-tactics/model"
	"github.com/nstehr/vimy/vimy-tactics/tactics"
)

// Engine runs compiled rules against game state each tick.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category.
type Engine struct {
	mu      sync.RWMutex
	rules   []*Rule
	Memory  map[string]any
	memMu   sync.Mutex // guards all reads/writes to Memory
	pf      tactics.Pathfinder
	journal journal.Store
	budget  time.Duration

	lastDiagTick int
}

// Option configures an Engine.
type Option func(*Engine)

// WithJournal records every spawn and routing decision to store.
func WithJournal(store journal.Store) Option {
	return func(e *Engine) { e.journal = store }
}

// WithTickBudget bounds how long routing may run per tick. Zero disables
// the bound.
func WithTickBudget(d time.Duration) Option {
	return func(e *Engine) { e.budget = d }
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule, pf tactics.Pathfinder, opts ...Option) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		rules:  compiled,
		Memory: make(map[string]any),
		pf:     pf,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate runs all rules against the current game state.
func (e *Engine) Evaluate(ctx context.Context, gs model.GameState, player string, out Sender) error {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	if e.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.budget)
		defer cancel()
	}

	e.memMu.Lock()
	defer e.memMu.Unlock()

	env := RuleEnv{
		State:      gs,
		Player:     player,
		Memory:     e.Memory,
		Pathfinder: e.pf,
		Journal:    e.journal,
	}
	updateClaims(env)
	fired := make(map[string]bool) // category → exclusive rule already fired

	anyFired := false
	for _, r := range rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		anyFired = true
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category)

		if err := r.Action(ctx, env, out); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	if !anyFired {
		e.logIdleDiagnostics(env)
	}

	return nil
}

// Swap atomically replaces the rule set. Compiles first; if compilation
// fails the old rules remain active. Claims survive the swap.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()

	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// RequestRepath makes the next tick re-route every friendly unit.
func (e *Engine) RequestRepath(reason string) {
	e.memMu.Lock()
	e.Memory[memRepath] = true
	e.memMu.Unlock()
	slog.Info("repath requested", "reason", reason)
}

// logIdleDiagnostics helps debug "why isn't the agent doing anything?" when
// zero rules fire. Throttled to avoid log spam.
func (e *Engine) logIdleDiagnostics(env RuleEnv) {
	if env.State.Tick-e.lastDiagTick < 100 {
		return
	}
	e.lastDiagTick = env.State.Tick

	slog.Warn("idle diagnostics",
		"tick", env.State.Tick,
		"cash", env.Cash(),
		"spawnCost", env.SpawnCost(),
		"unoccupied", env.UnoccupiedCount(),
		"resources", env.ResourceCount(),
		"hiddenResources", env.HiddenResourceCount(),
		"friendlies", env.FriendlyCount(),
		"idle", len(env.IdleUnits()),
		"claims", env.ClaimCount(),
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("rule %q has no action", r.Name)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
