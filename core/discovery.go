package core

// Descriptor is a statically validated capability candidate produced by a
// discovery source. Unlike runtime introspection schemes that grab the first
// callable they find, a descriptor names its entry point explicitly so
// discovery stays deterministic.
type Descriptor struct {
	Name        string
	Description string
	Parameters  []Parameter
	EntryPoint  InvokeFunc
}

// Validate reports whether the descriptor can be turned into a capability.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return ErrMissingName
	}
	if d.EntryPoint == nil {
		return ErrMissingEntryPoint
	}
	return nil
}

// DiscoverySource enumerates capability candidates. A source-level failure
// aborts discovery; individual invalid descriptors are skipped by the
// registry and reported as non-fatal warnings.
type DiscoverySource interface {
	Capabilities() ([]Descriptor, error)
}
