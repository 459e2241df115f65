package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"check", "weather", "in", "sanya"}, Tokens("Check  Weather in SANYA"))
	assert.Empty(t, Tokens("   "))
}

func TestOverlapCountsDistinctSharedTokens(t *testing.T) {
	a := TokenSet("the weather the weather today")
	b := TokenSet("weather today and tomorrow")

	assert.Equal(t, 2, Overlap(a, b))
	assert.Equal(t, 0, Overlap(a, TokenSet("unrelated")))
	assert.Equal(t, 0, Overlap(a, TokenSet("")))
}
