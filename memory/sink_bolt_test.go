package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/synapseflow/core"
)

func TestBoltSinkRoundTrip(t *testing.T) {
	sink, err := NewBoltSink(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	defer sink.Close()

	records := map[string][]core.Record{
		"u1": {{Timestamp: 2.0, Text: "first"}},
		"u2": {{Timestamp: 3.0, Text: "second"}},
	}
	require.NoError(t, sink.Save(records))

	loaded, err := sink.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.Equal(t, "first", loaded["u1"][0].Text)
}

func TestBoltSinkSaveReplacesState(t *testing.T) {
	sink, err := NewBoltSink(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Save(map[string][]core.Record{
		"u1": {{Text: "a"}},
		"u2": {{Text: "b"}},
	}))
	require.NoError(t, sink.Save(map[string][]core.Record{
		"u1": {{Text: "a"}},
	}))

	loaded, err := sink.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	_, hasU2 := loaded["u2"]
	assert.False(t, hasU2)
}

func TestBoltSinkEmptyDatabase(t *testing.T) {
	sink, err := NewBoltSink(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	defer sink.Close()

	loaded, err := sink.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
