package search

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Rank orders matches definitions-first, then by proximity of the path to
// scopeRoot, then lexicographically by (path, line) — a total, deterministic
// order — and renders the `— N matches (D definitions, U usages)` report.
func Rank(matches []Match, scopeRoot string) string {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)

	depth := func(path string) int {
		rel, err := filepath.Rel(scopeRoot, path)
		if err != nil {
			rel = path
		}
		return strings.Count(rel, string(filepath.Separator))
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Kind != b.Kind {
			return a.Kind == Definition
		}
		if da, db := depth(a.Path), depth(b.Path); da != db {
			return da < db
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Line < b.Line
	})

	defs, uses := 0, 0
	for _, m := range sorted {
		if m.Kind == Definition {
			defs++
		} else {
			uses++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "— %d matches (%d definitions, %d usages)\n", len(sorted), defs, uses)
	for _, m := range sorted {
		fmt.Fprintf(&b, "%s:%d [%s]", m.Path, m.Line, m.Kind)
		if m.Context != "" {
			fmt.Fprintf(&b, " %s", m.Context)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
