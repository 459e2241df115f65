// Package registry implements the capability registry: a name-keyed,
// insertion-ordered collection of capabilities populated by manual
// registration or descriptor-based discovery.
package registry

import (
	"fmt"
	"sync"

	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/logging"
)

// Options configures a Registry.
type Options struct {
	// Logger receives discovery warnings. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Registry maps capability names to capabilities. Registration is
// last-write-wins; a replaced capability keeps its original position so
// selection tie-breaks stay deterministic across re-registration.
//
// Concurrency: protected by RWMutex.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*core.Capability
	order  []string
	logger logging.Logger
}

// New creates an empty Registry.
func New(optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Registry{
		byName: make(map[string]*core.Capability),
		logger: opts.Logger,
	}
}

// Register inserts or replaces a capability by name. Capabilities without a
// name are ignored.
func (r *Registry) Register(c *core.Capability) {
	if c == nil || c.Name() == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[c.Name()]; !exists {
		r.order = append(r.order, c.Name())
	}
	r.byName[c.Name()] = c
}

// Discover builds capabilities from every valid descriptor the source yields.
// Invalid descriptors are skipped and logged; a bad entry never aborts
// discovery of the remaining candidates. Only a source-level enumeration
// failure is returned to the caller. The number of registered capabilities is
// reported so callers can log discovery coverage.
func (r *Registry) Discover(source core.DiscoverySource) (int, error) {
	descriptors, err := source.Capabilities()
	if err != nil {
		return 0, fmt.Errorf("capability discovery failed: %w", err)
	}

	registered := 0
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			r.logger.Warn("registry.discover.skipped", "capability", d.Name, "error", err.Error())
			continue
		}
		r.Register(core.NewCapability(d.Name, d.Description, d.Parameters, d.EntryPoint))
		registered++
	}

	return registered, nil
}

// Lookup returns the capability registered under name.
func (r *Registry) Lookup(name string) (*core.Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// LookupAll returns a snapshot of all capabilities in registration order. The
// slice is the caller's to keep; the capabilities themselves are shared and
// immutable.
func (r *Registry) LookupAll() []*core.Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*core.Capability, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
