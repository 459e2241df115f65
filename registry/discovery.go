package registry

import "github.com/hupe1980/synapseflow/core"

// StaticSource adapts a fixed descriptor list into a DiscoverySource. Useful
// for wiring compiled-in capability sets and for tests.
type StaticSource []core.Descriptor

// Capabilities implements core.DiscoverySource.
func (s StaticSource) Capabilities() ([]core.Descriptor, error) {
	return s, nil
}
