package completion

import (
	"cmp"
	"slices"
	"strings"
)

// Sort orders results by priority, then by label. It is stable, so results
// that compare equal keep their frontend order.
func Sort(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		if c := cmp.Compare(a.String.Priority(), b.String.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.String.Label(), b.String.Label())
	})
}

// Filter returns the results whose label starts with prefix.
func Filter(results []Result, prefix string) []Result {
	if prefix == "" {
		return results
	}
	var out []Result
	for _, r := range results {
		if strings.HasPrefix(r.String.Label(), prefix) {
			out = append(out, r)
		}
	}
	return out
}
