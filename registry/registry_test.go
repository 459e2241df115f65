package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/synapseflow/core"
)

func echoFn(_ context.Context, input string) (string, error) { return input, nil }

func TestRegisterLastWriteWinsKeepsOrder(t *testing.T) {
	r := New()
	r.Register(core.NewCapability("a", "first a", nil, echoFn))
	r.Register(core.NewCapability("b", "first b", nil, echoFn))
	r.Register(core.NewCapability("a", "second a", nil, echoFn))

	assert.Equal(t, 2, r.Len())

	all := r.LookupAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name())
	assert.Equal(t, "second a", all[0].Description())
	assert.Equal(t, "b", all[1].Name())
}

func TestRegisterIgnoresNilAndUnnamed(t *testing.T) {
	r := New()
	r.Register(nil)
	r.Register(core.NewCapability("", "anonymous", nil, echoFn))
	assert.Equal(t, 0, r.Len())
}

func TestLookup(t *testing.T) {
	r := New()
	r.Register(core.NewCapability("echo", "echo tool", nil, echoFn))

	c, ok := r.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", c.Name())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestDiscoverSkipsInvalidDescriptors(t *testing.T) {
	source := StaticSource{
		{Name: "good", Description: "works", EntryPoint: echoFn},
		{Name: "", Description: "no name", EntryPoint: echoFn},
		{Name: "no_entry", Description: "no entry point"},
		{Name: "also_good", EntryPoint: echoFn},
	}

	r := New()
	n, err := r.Discover(source)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, r.Len())

	_, ok := r.Lookup("good")
	assert.True(t, ok)
	_, ok = r.Lookup("no_entry")
	assert.False(t, ok)
}

type failingSource struct{}

func (failingSource) Capabilities() ([]core.Descriptor, error) {
	return nil, errors.New("enumeration broke")
}

func TestDiscoverPropagatesSourceFailure(t *testing.T) {
	r := New()
	_, err := r.Discover(failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enumeration broke")
	assert.Equal(t, 0, r.Len())
}
