// Package search implements the definition-vs-usage symbol classifier and
// ranker described by the outline engine: given a query identifier and the
// outline entries plus raw source of a file, it finds every occurrence of
// the query, classifies it as a definition or a usage, collapses curried
// duplicates, suppresses self-references inside a definition's own body,
// and ranks the results into a human-readable report.
package search

import "github.com/tilth-dev/tilth/pkg/tilthtypes"

// MatchKind is the classification the symbol engine assigns to a text match.
type MatchKind int

const (
	Usage MatchKind = iota
	Definition
)

func (k MatchKind) String() string {
	if k == Definition {
		return "definition"
	}
	return "usage"
}

// Match is a single classified occurrence of a query identifier.
type Match struct {
	Path string
	Line uint32
	Kind MatchKind
	// Context is the entry's kind label when the match is a definition, or
	// empty for a plain text usage.
	Context string
}

// definitionKind reports whether kind is a normalized entry kind that the
// classifier treats as a definable symbol (excludes Import/Export/Property,
// which are structural, not named definitions).
func definitionKind(kind tilthtypes.OutlineKind) bool {
	switch kind {
	case tilthtypes.Import, tilthtypes.Export, tilthtypes.Property:
		return false
	default:
		return true
	}
}
