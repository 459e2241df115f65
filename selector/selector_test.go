package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/synapseflow/core"
)

func mkCap(name, description string) *core.Capability {
	return core.NewCapability(name, description, nil, func(_ context.Context, input string) (string, error) {
		return input, nil
	})
}

func names(caps []*core.Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = c.Name()
	}
	return out
}

func TestSelectRanksMatchesFirst(t *testing.T) {
	caps := []*core.Capability{
		mkCap("search_news", "Search current news articles"),
		mkCap("get_weather", "Report the weather for a city"),
	}

	selected := New().Select("check weather in Sanya", caps, 3)
	if len(selected) == 0 {
		t.Fatal("expected at least one candidate")
	}
	assert.Equal(t, "get_weather", selected[0].Name())
}

func TestSelectFallbackIsRegistrationOrderCappedAtTopN(t *testing.T) {
	caps := []*core.Capability{
		mkCap("first", "one"),
		mkCap("second", "two"),
		mkCap("third", "three"),
		mkCap("fourth", "four"),
	}

	selected := New().Select("zzz qqq", caps, 3)
	assert.Equal(t, []string{"first", "second", "third"}, names(selected))
}

func TestSelectPositiveBranchIsUncapped(t *testing.T) {
	caps := []*core.Capability{
		mkCap("weather_now", "weather now"),
		mkCap("weather_week", "weather this week"),
		mkCap("weather_radar", "weather radar"),
	}

	selected := New().Select("weather", caps, 1)
	assert.Len(t, selected, 3)
}

func TestSelectUniformCapLimitsPositiveBranch(t *testing.T) {
	caps := []*core.Capability{
		mkCap("weather_now", "weather now"),
		mkCap("weather_week", "weather this week"),
		mkCap("weather_radar", "weather radar"),
	}

	e := New(func(o *Options) { o.UniformCap = true })
	selected := e.Select("weather", caps, 2)
	assert.Equal(t, []string{"weather_now", "weather_week"}, names(selected))
}

func TestSelectStableOnTies(t *testing.T) {
	caps := []*core.Capability{
		mkCap("alpha", "handles weather"),
		mkCap("beta", "handles weather"),
	}

	selected := New().Select("weather", caps, 2)
	assert.Equal(t, []string{"alpha", "beta"}, names(selected))
}

func TestSelectNameSubstringBonus(t *testing.T) {
	caps := []*core.Capability{
		mkCap("lookup", "weather"),
		mkCap("weather", "lookup"),
	}

	// Both score 1 from text counts; the name substring bonus breaks the tie
	// in favor of the later registration.
	selected := New().Select("weather", caps, 2)
	assert.Equal(t, "weather", selected[0].Name())
}

func TestSelectDegenerateInputs(t *testing.T) {
	assert.Nil(t, New().Select("anything", nil, 3))
	assert.Nil(t, New().Select("anything", []*core.Capability{mkCap("a", "b")}, 0))
}
