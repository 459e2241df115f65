// Package selector implements the selection engine that ranks registered
// capabilities against a step string.
package selector

import (
	"sort"
	"strings"

	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/internal/textutil"
)

// Options configures an Engine.
type Options struct {
	// UniformCap also caps the positive-score branch at topN. Historically
	// only the zero-score fallback was capped while any positive match
	// returned the full matching set; that asymmetry is kept as the default
	// until a product decision settles it.
	UniformCap bool
}

// Engine scores capabilities against step text. Engines are stateless and
// safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates a selection Engine.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{opts: opts}
}

// Select ranks capabilities against step and returns the candidates to
// invoke, preserving registration order between equal scores.
//
// Scoring: for each step token, the number of occurrences of that token in
// the lowercased "description name" text, plus one if any token is a
// substring of the lowercased name. When at least one capability scores
// above zero all positive scorers are returned; otherwise the first topN
// capabilities in registration order serve as a fallback so a step is never
// left without candidates.
func (e *Engine) Select(step string, capabilities []*core.Capability, topN int) []*core.Capability {
	if len(capabilities) == 0 || topN <= 0 {
		return nil
	}

	tokens := textutil.Tokens(step)

	type scored struct {
		capability *core.Capability
		score      int
	}

	ranked := make([]scored, len(capabilities))
	for i, c := range capabilities {
		ranked[i] = scored{capability: c, score: score(tokens, c)}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var selected []*core.Capability
	for _, s := range ranked {
		if s.score > 0 {
			selected = append(selected, s.capability)
		}
	}

	if len(selected) == 0 {
		if topN > len(capabilities) {
			topN = len(capabilities)
		}
		selected = make([]*core.Capability, topN)
		copy(selected, capabilities[:topN])
		return selected
	}

	if e.opts.UniformCap && len(selected) > topN {
		selected = selected[:topN]
	}
	return selected
}

func score(tokens []string, c *core.Capability) int {
	name := strings.ToLower(c.Name())
	text := strings.ToLower(c.Description()) + " " + name

	n := 0
	for _, t := range tokens {
		n += strings.Count(text, t)
	}
	for _, t := range tokens {
		if strings.Contains(name, t) {
			n++
			break
		}
	}
	return n
}
