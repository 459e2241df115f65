package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/synapseflow/core"
)

func echoCapability() *core.Capability {
	return core.NewCapability("echo", "echo tool", nil, func(_ context.Context, input string) (string, error) {
		return "ECHO:" + input, nil
	})
}

func TestRunEndToEnd(t *testing.T) {
	a := New("test")
	a.RegisterCapability(echoCapability())

	results := a.Run(context.Background(), "u1", "echo hello")
	require.NotEmpty(t, results)

	// No planner delimiters, so the whole query is the single step.
	assert.Equal(t, "echo hello", results[0].Step)

	require.NotEmpty(t, results[0].Results)
	assert.Equal(t, "echo", results[0].Results[0].Tool)
	assert.Equal(t, "ECHO:echo hello", results[0].Results[0].Output)
}

func TestRunIsolatesCapabilityFailures(t *testing.T) {
	a := New("test")
	a.RegisterCapability(core.NewCapability("broken_echo", "echo tool that fails", nil,
		func(_ context.Context, _ string) (string, error) {
			return "", errors.New("backend offline")
		}))
	a.RegisterCapability(echoCapability())

	results := a.Run(context.Background(), "u1", "echo something")
	require.Len(t, results, 1)
	require.Len(t, results[0].Results, 2)

	failed := results[0].Results[0]
	assert.Equal(t, "broken_echo", failed.Tool)
	assert.Contains(t, failed.Output, "broken_echo")
	assert.Contains(t, failed.Output, "backend offline")

	// The failure did not stop the remaining candidate.
	assert.Equal(t, "ECHO:echo something", results[0].Results[1].Output)
}

func TestRunIsolatesCapabilityPanics(t *testing.T) {
	a := New("test")
	a.RegisterCapability(core.NewCapability("echo_panic", "echo tool", nil,
		func(_ context.Context, _ string) (string, error) {
			panic("unexpected state")
		}))

	results := a.Run(context.Background(), "u1", "echo")
	require.Len(t, results, 1)
	require.NotEmpty(t, results[0].Results)
	assert.Contains(t, results[0].Results[0].Output, "echo_panic")
}

func TestRunWithPlannerSplitsSteps(t *testing.T) {
	a := New("test")
	a.RegisterCapability(echoCapability())

	results := a.Run(context.Background(), "u1", "echo first. echo second")
	require.Len(t, results, 2)
	assert.Equal(t, "echo first", results[0].Step)
	assert.Equal(t, "echo second", results[1].Step)
}

func TestRunWithoutPlanner(t *testing.T) {
	a := New("test")
	a.RegisterCapability(echoCapability())

	results := a.Run(context.Background(), "u1", "echo first. echo second", func(o *RunOptions) {
		o.UsePlanner = false
	})
	require.Len(t, results, 1)
	assert.Equal(t, "echo first. echo second", results[0].Step)
}

func TestRunNotifiesTraceHook(t *testing.T) {
	var events []core.TraceEvent

	a := New("test", func(o *Options) {
		o.Trace = func(ev core.TraceEvent) { events = append(events, ev) }
	})
	a.RegisterCapability(echoCapability())

	a.Run(context.Background(), "u1", "echo hi")

	require.Len(t, events, 1)
	assert.Equal(t, "echo hi", events[0].Step)
	assert.Equal(t, "echo", events[0].Capability)
	assert.Equal(t, "ECHO:echo hi", events[0].Output)
}

func TestRunSwallowsTraceHookPanic(t *testing.T) {
	a := New("test", func(o *Options) {
		o.Trace = func(core.TraceEvent) { panic("bad hook") }
	})
	a.RegisterCapability(echoCapability())

	results := a.Run(context.Background(), "u1", "echo hi")
	require.Len(t, results, 1)
	assert.Equal(t, "ECHO:echo hi", results[0].Results[0].Output)
}

func TestRunRecordsHistoryAndMemory(t *testing.T) {
	a := New("test")
	a.RegisterCapability(echoCapability())

	a.Run(context.Background(), "u1", "echo once")
	a.Run(context.Background(), "u1", "echo twice")

	history := a.History()
	require.Len(t, history, 2)
	assert.Equal(t, "echo once", history[0].Query)
	assert.Equal(t, "u1", history[0].User)

	assert.Len(t, a.Memory().Records("u1"), 2)
}

func TestRunWithEmptyRegistryYieldsNoCandidates(t *testing.T) {
	a := New("test")

	results := a.Run(context.Background(), "u1", "anything")
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Results)
}
