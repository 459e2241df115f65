package core

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrMissingName marks a discovery descriptor without a capability name.
	ErrMissingName = errors.New("descriptor has no name")

	// ErrMissingEntryPoint marks a discovery descriptor without an invocable
	// entry point.
	ErrMissingEntryPoint = errors.New("descriptor has no entry point")
)
