package core

import (
	"context"
	"fmt"
)

// Parameter describes a single argument accepted by a capability. The engine
// treats parameter specs as informational metadata only; inputs are never
// validated against them.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// InvokeFunc is the entry point of a capability: free text in, free text out.
// Implementations should respect context cancellation when they block.
type InvokeFunc func(ctx context.Context, input string) (string, error)

// Capability is a named unit of work exposed to agents ("tool"). A capability
// is immutable after construction and owned exclusively by the registry it is
// registered with; the description is used only for selection scoring.
type Capability struct {
	name        string
	description string
	parameters  []Parameter
	fn          InvokeFunc
}

// NewCapability constructs a Capability from explicit metadata and an entry
// point. Name must be non-empty; registering a second capability under the
// same name replaces the first.
func NewCapability(name, description string, parameters []Parameter, fn InvokeFunc) *Capability {
	return &Capability{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// Name returns the unique identifier for this capability.
func (c *Capability) Name() string { return c.name }

// Description returns the natural language description used for scoring.
func (c *Capability) Description() string { return c.description }

// Parameters returns a copy of the informational parameter spec.
func (c *Capability) Parameters() []Parameter {
	out := make([]Parameter, len(c.parameters))
	copy(out, c.parameters)
	return out
}

// Invoke runs the capability against the given input. A panicking
// implementation is converted into an error so a single capability cannot
// abort the surrounding run loop.
func (c *Capability) Invoke(ctx context.Context, input string) (out string, err error) {
	if c.fn == nil {
		return "", fmt.Errorf("capability %q has no entry point", c.name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capability %q panicked: %v", c.name, r)
		}
	}()

	return c.fn(ctx, input)
}
