package core

import "fmt"

// InvocationResult is the explicit outcome of a single capability invocation.
// The run loop converts every invocation into one of these instead of letting
// errors propagate, making the per-capability isolation boundary a value
// rather than a control-flow accident.
type InvocationResult struct {
	Capability string
	Output     string
	Err        error
}

// Ok wraps a successful capability output.
func Ok(capability, output string) InvocationResult {
	return InvocationResult{Capability: capability, Output: output}
}

// Failed wraps a captured capability failure.
func Failed(capability string, err error) InvocationResult {
	return InvocationResult{Capability: capability, Err: err}
}

// OK reports whether the invocation succeeded.
func (r InvocationResult) OK() bool { return r.Err == nil }

// Text returns the capability output, or a descriptive failure message naming
// the capability when the invocation failed.
func (r InvocationResult) Text() string {
	if r.Err != nil {
		return fmt.Sprintf("capability %s failed: %v", r.Capability, r.Err)
	}
	return r.Output
}
