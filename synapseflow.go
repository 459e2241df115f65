// Package synapseflow provides the swarm router: the top-level façade that
// selects among independently configured agents and forwards run requests to
// them. Most applications interact with the engine by:
//  1. Creating a Swarm via New()
//  2. Registering one or more agents (each with its own registry and memory)
//  3. Calling Run with an agent name and a free-text query
//
// A request for an unknown agent yields a structured not-found Outcome; the
// router never signals lookup misses through errors.
package synapseflow

import (
	"context"
	"sync"

	"github.com/hupe1980/synapseflow/agent"
	"github.com/hupe1980/synapseflow/logging"
)

// DefaultSwarmUser is the user id swarm-routed runs are recorded under when
// the caller does not supply one.
const DefaultSwarmUser = "swarm_user"

// Options configures a Swarm.
type Options struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Outcome is the structured result of a routed run.
type Outcome struct {
	Agent string             `json:"agent"`
	Found bool               `json:"found"`
	Error string             `json:"error,omitempty"`
	Steps []agent.StepResult `json:"steps,omitempty"`
}

// Swarm maps agent names to agents. Registration is last-write-wins on the
// agent's name.
type Swarm struct {
	mu     sync.RWMutex
	agents map[string]*agent.Agent
	logger logging.Logger
}

// New creates an empty Swarm.
func New(optFns ...func(o *Options)) *Swarm {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Swarm{
		agents: make(map[string]*agent.Agent),
		logger: opts.Logger,
	}
}

// Register adds an agent under its own name, replacing any prior entry.
func (s *Swarm) Register(a *agent.Agent) {
	if a == nil {
		return
	}

	s.mu.Lock()
	s.agents[a.Name()] = a
	s.mu.Unlock()
}

// Agent returns the agent registered under name.
func (s *Swarm) Agent(name string) (*agent.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[name]
	return a, ok
}

// Names returns the registered agent names.
func (s *Swarm) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.agents))
	for n := range s.agents {
		names = append(names, n)
	}
	return names
}

// Run forwards the query to the named agent under DefaultSwarmUser.
func (s *Swarm) Run(ctx context.Context, agentName, query string) Outcome {
	return s.RunAs(ctx, agentName, DefaultSwarmUser, query)
}

// RunAs forwards the query to the named agent on behalf of userID. An
// unknown agent produces a not-found Outcome instead of an error.
func (s *Swarm) RunAs(ctx context.Context, agentName, userID, query string) Outcome {
	a, ok := s.Agent(agentName)
	if !ok {
		s.logger.Warn("swarm.run.agent_not_found", "agent", agentName)
		return Outcome{Agent: agentName, Error: "agent not found"}
	}

	return Outcome{
		Agent: agentName,
		Found: true,
		Steps: a.Run(ctx, userID, query),
	}
}
