// Package agent implements the orchestration core: an Agent wires a
// capability registry, a context store, the planner and the selection engine
// into a single Run operation with per-capability failure isolation.
package agent

import (
	"context"
	"time"

	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/logging"
	"github.com/hupe1980/synapseflow/memory"
	"github.com/hupe1980/synapseflow/planner"
	"github.com/hupe1980/synapseflow/registry"
	"github.com/hupe1980/synapseflow/selector"
)

// DefaultTopN is the number of fallback candidates selected per step.
const DefaultTopN = 3

// HistoryEntry records one past Run call.
type HistoryEntry struct {
	User  string    `json:"user"`
	Query string    `json:"query"`
	Time  time.Time `json:"time"`
}

// Invocation is the recorded outcome of one capability invocation within a
// step. Output carries either the capability's response or a descriptive
// failure message naming the capability.
type Invocation struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

// StepResult pairs a planned step with the outcomes of every invoked candidate.
type StepResult struct {
	Step    string       `json:"step"`
	Results []Invocation `json:"results"`
}

// Options configures an Agent.
type Options struct {
	// Registry holds the agent's capabilities. Defaults to an empty registry.
	Registry *registry.Registry

	// Memory is the agent's context store. Defaults to an unpersisted store.
	Memory *memory.Store

	// Selector ranks capabilities per step. Defaults to a stock engine.
	Selector *selector.Engine

	// TopN caps the fallback candidate count per step. Defaults to DefaultTopN.
	TopN int

	// Trace, when set, observes every capability invocation. Side-effect
	// only; trace failures are swallowed.
	Trace core.TraceHook

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// RunOptions tunes a single Run call.
type RunOptions struct {
	// UsePlanner decomposes the query into steps before dispatch. On by
	// default; when disabled the whole query becomes the single step.
	UsePlanner bool
}

// Agent orchestrates context store, planner, selection engine and capability
// registry into a run loop. An Agent assumes a single logical flow per Run
// invocation: history is mutated in place without locking, so callers needing
// throughput should run independent Agents rather than share one.
type Agent struct {
	name     string
	registry *registry.Registry
	memory   *memory.Store
	selector *selector.Engine
	topN     int
	trace    core.TraceHook
	logger   logging.Logger
	history  []HistoryEntry
}

// New creates an Agent with the given name. Unset collaborators are
// initialized with in-process defaults.
func New(name string, optFns ...func(o *Options)) *Agent {
	opts := Options{
		TopN:   DefaultTopN,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Memory == nil {
		opts.Memory = memory.NewStore()
	}
	if opts.Selector == nil {
		opts.Selector = selector.New()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	return &Agent{
		name:     name,
		registry: opts.Registry,
		memory:   opts.Memory,
		selector: opts.Selector,
		topN:     opts.TopN,
		trace:    opts.Trace,
		logger:   opts.Logger,
	}
}

// Name returns the identifier this agent registers under in a swarm.
func (a *Agent) Name() string { return a.name }

// Registry returns the agent's capability registry.
func (a *Agent) Registry() *registry.Registry { return a.registry }

// Memory returns the agent's context store.
func (a *Agent) Memory() *memory.Store { return a.memory }

// RegisterCapability is shorthand for Registry().Register.
func (a *Agent) RegisterCapability(c *core.Capability) { a.registry.Register(c) }

// History returns a snapshot of past Run calls in chronological order.
func (a *Agent) History() []HistoryEntry {
	out := make([]HistoryEntry, len(a.history))
	copy(out, a.history)
	return out
}

// Run records the query, decomposes it into steps, dispatches every step to
// its selected candidates and aggregates the per-step outcomes.
//
// Nothing inside Run is fatal: memory persistence failures are absorbed by
// the store, capability failures become descriptive result entries, and
// trace hook failures are swallowed. The only degenerate outcome is a step
// whose candidates all failed.
func (a *Agent) Run(ctx context.Context, userID, query string, optFns ...func(o *RunOptions)) []StepResult {
	runOpts := RunOptions{UsePlanner: true}

	for _, fn := range optFns {
		fn(&runOpts)
	}

	a.history = append(a.history, HistoryEntry{User: userID, Query: query, Time: time.Now()})
	a.memory.Add(ctx, userID, query, nil)

	steps := []string{query}
	if runOpts.UsePlanner {
		steps = planner.Plan(query)
	}

	a.logger.Debug("agent.run.start", "agent", a.name, "user", userID, "steps", len(steps))

	results := make([]StepResult, 0, len(steps))
	for _, step := range steps {
		results = append(results, StepResult{Step: step, Results: a.runStep(ctx, step)})
	}

	a.logger.Debug("agent.run.done", "agent", a.name, "user", userID)

	return results
}

// runStep selects candidates for a single step and invokes them in selection
// order, isolating each failure.
func (a *Agent) runStep(ctx context.Context, step string) []Invocation {
	candidates := a.selector.Select(step, a.registry.LookupAll(), a.topN)

	outs := make([]Invocation, 0, len(candidates))
	for _, c := range candidates {
		res := a.invoke(ctx, c, step)
		inv := Invocation{Tool: res.Capability, Output: res.Text()}
		a.notify(core.TraceEvent{Step: step, Capability: inv.Tool, Output: inv.Output})
		outs = append(outs, inv)
	}
	return outs
}

func (a *Agent) invoke(ctx context.Context, c *core.Capability, step string) core.InvocationResult {
	out, err := c.Invoke(ctx, step)
	if err != nil {
		a.logger.Warn("agent.capability.failed", "agent", a.name, "capability", c.Name(), "error", err.Error())
		return core.Failed(c.Name(), err)
	}
	return core.Ok(c.Name(), out)
}

func (a *Agent) notify(ev core.TraceEvent) {
	if a.trace == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("agent.trace.panic", "agent", a.name, "recovered", r)
		}
	}()

	a.trace(ev)
}
