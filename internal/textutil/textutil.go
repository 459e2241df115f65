// Package textutil holds the tokenization helpers shared by the planner,
// selector and memory scoring heuristics. This lives in internal to avoid
// committing to public API stability prematurely.
package textutil

import "strings"

// Tokens returns the lowercase whitespace-delimited tokens of s.
func Tokens(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// TokenSet returns the distinct lowercase tokens of s.
func TokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, t := range Tokens(s) {
		set[t] = struct{}{}
	}
	return set
}

// Overlap counts the distinct tokens present in both sets.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
