// Package planner decomposes a free-text request into an ordered sequence of
// step strings using punctuation and conjunction heuristics with a
// length-based fallback split. Plan is pure and stateless.
package planner

import (
	"regexp"
	"strings"
)

const (
	// resplitTokenLimit is the fragment length above which a fragment is
	// re-split on secondary punctuation.
	resplitTokenLimit = 40
	// halveTokenLimit is the length above which a single surviving fragment
	// is halved at its token midpoint.
	halveTokenLimit = 20
)

var (
	// Conjunction delimiters match case-insensitively so ". Then" boundaries
	// split the same way as ". then".
	primarySplit   = regexp.MustCompile(`(?i)[.;\n]| and | then `)
	secondarySplit = regexp.MustCompile(`[,:]`)
)

// Plan splits task into ordered, trimmed, non-empty steps:
//
//  1. Split on '.', ';', newline, " and " and " then ".
//  2. Drop empty fragments; if nothing remains, return the task unchanged.
//  3. Fragments longer than 40 tokens are re-split on ',' and ':' in place.
//  4. A single surviving fragment longer than 20 tokens is halved at the
//     token midpoint (first half gets the floor).
//
// The result is never empty for a non-empty task.
func Plan(task string) []string {
	fragments := splitOn(primarySplit, task)
	if len(fragments) == 0 {
		return []string{task}
	}

	refined := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if len(strings.Fields(f)) > resplitTokenLimit {
			refined = append(refined, splitOn(secondarySplit, f)...)
		} else {
			refined = append(refined, f)
		}
	}

	if len(refined) == 1 {
		if words := strings.Fields(refined[0]); len(words) > halveTokenLimit {
			half := len(words) / 2
			refined = []string{
				strings.Join(words[:half], " "),
				strings.Join(words[half:], " "),
			}
		}
	}

	return refined
}

func splitOn(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
