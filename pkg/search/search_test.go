package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// Mirrors HASKELL: "haskell_function_query_collapses_duplicate_defs_and_self_usages".
func TestClassifyFileCollapsesCurriedDuplicatesAndSelfUsages(t *testing.T) {
	source := `tokenize :: String -> [String]
tokenize s = go s
  where
    go x = tokenize x
`
	entries := []tilthtypes.OutlineEntry{
		{Kind: tilthtypes.Function, Name: "tokenize", StartLine: 1, EndLine: 1},
		{Kind: tilthtypes.Function, Name: "tokenize", StartLine: 2, EndLine: 4},
	}

	matches := ClassifyFile("tokenize", "Parser.hs", source, entries, nil)
	report := Rank(matches, "")

	assert.Contains(t, report, "— 1 matches (1 definitions, 0 usages)")
}

// Mirrors "rescript_type_query_classified_as_definition".
func TestClassifyFileReScriptTypeIsDefinitionNotUsage(t *testing.T) {
	source := `type color = Red | Green | Blue
let use1 = color
`
	entries := []tilthtypes.OutlineEntry{
		{Kind: tilthtypes.TypeAlias, Name: "color", StartLine: 1, EndLine: 1},
	}

	matches := ClassifyFile("color", "Button.res", source, entries, nil)
	report := Rank(matches, "")

	assert.Contains(t, report, "[definition]")
	assert.NotContains(t, report, "Button.res:1 [usage]")
}

// Mirrors "rescript_let_query_classified_as_definition".
func TestClassifyFileReScriptLetIsDefinitionNotUsage(t *testing.T) {
	source := `@react.component
let make = (~name) => <div>{name}</div>
`
	entries := []tilthtypes.OutlineEntry{
		{Kind: tilthtypes.Function, Name: "make", StartLine: 2, EndLine: 2},
	}

	matches := ClassifyFile("make", "Button.res", source, entries, nil)
	report := Rank(matches, "")

	assert.Contains(t, report, "[definition]")
	assert.NotContains(t, report, "Button.res:2 [usage]")
}

// A definition nested inside another function's body is invisible to a
// depth-bounded outline pass but still reported via flatDefs.
func TestClassifyFileFindsDefinitionOnlyFlatDefsSees(t *testing.T) {
	source := `func outer() {
	func helper() {
		return
	}
	helper()
}
`
	flatDefs := []tilthtypes.OutlineEntry{
		{Kind: tilthtypes.Function, Name: "helper", StartLine: 2, EndLine: 4},
	}

	matches := ClassifyFile("helper", "outer.go", source, nil, flatDefs)
	report := Rank(matches, "")

	assert.Contains(t, report, "[definition]")
	assert.Contains(t, report, "outer.go:5 [usage]")
}

func TestRankOrdersDefinitionsBeforeUsagesThenByPathAndLine(t *testing.T) {
	matches := []Match{
		{Path: "b.go", Line: 3, Kind: Usage},
		{Path: "a.go", Line: 10, Kind: Definition},
		{Path: "a.go", Line: 1, Kind: Usage},
	}

	report := Rank(matches, "")
	lines := []string{}
	for _, l := range splitNonEmpty(report) {
		lines = append(lines, l)
	}

	require.Len(t, lines, 4) // header + 3 matches
	assert.Contains(t, lines[1], "a.go:10 [definition]")
	assert.Contains(t, lines[2], "a.go:1 [usage]")
	assert.Contains(t, lines[3], "b.go:3 [usage]")
}

func splitNonEmpty(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
