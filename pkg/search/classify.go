package search

import (
	"regexp"
	"strings"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// ClassifyFile scans one file's outline entries and raw source for
// occurrences of query, returning every classified match. entries are the
// nested outline entries outline.Entries produced for this file (ClassifyFile
// flattens their children itself); source is the same content that was
// parsed.
// flatDefs is outline.FlatDefinitions' unbounded-depth walk of the same
// parse tree — it catches definitions a depth-bounded outline pass misses
// entirely, such as a function declared inside another function's body, so
// the query still classifies as a definition rather than falling through to
// a plain text usage.
func ClassifyFile(query, path, source string, entries, flatDefs []tilthtypes.OutlineEntry) []Match {
	flat := append(flatten(entries), flatDefs...)

	// Curried duplicate collapse: every entry whose name equals the query
	// and whose own kind counts as a definition contributes to ONE reported
	// definition at the earliest line, but every one of its lines is still
	// excluded from the usage scan below (it's a definition site, not a use).
	var defEntries []tilthtypes.OutlineEntry
	defLines := map[uint32]bool{}
	for _, e := range flat {
		if e.Name == query && definitionKind(e.Kind) {
			defEntries = append(defEntries, e)
			defLines[e.StartLine] = true
		}
	}

	var matches []Match
	if len(defEntries) > 0 {
		earliest := defEntries[0]
		for _, e := range defEntries[1:] {
			if e.StartLine < earliest.StartLine {
				earliest = e
			}
		}
		matches = append(matches, Match{
			Path:    path,
			Line:    earliest.StartLine,
			Kind:    Definition,
			Context: earliest.Kind.Label(),
		})
	}

	// Self-usage suppression: a text match for the query on a line that
	// falls within any definition-entry's own span must not be reported as
	// a usage (recursive calls inside a function's body don't count).
	inDefSpan := func(line uint32) bool {
		for _, e := range defEntries {
			if line >= e.StartLine && line <= e.EndLine {
				return true
			}
		}
		return false
	}

	word := regexp.MustCompile(`\b` + regexp.QuoteMeta(query) + `\b`)
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNum := uint32(i + 1)
		if !word.MatchString(line) {
			continue
		}
		if defLines[lineNum] {
			continue
		}
		if inDefSpan(lineNum) {
			continue
		}
		matches = append(matches, Match{
			Path: path,
			Line: lineNum,
			Kind: Usage,
		})
	}

	return matches
}

// flatten returns entries plus their immediate and JSX-nested children, in
// document order, so a query can match a method name or a nested binding.
func flatten(entries []tilthtypes.OutlineEntry) []tilthtypes.OutlineEntry {
	var out []tilthtypes.OutlineEntry
	for _, e := range entries {
		out = append(out, e)
		out = append(out, flatten(e.Children)...)
	}
	return out
}
