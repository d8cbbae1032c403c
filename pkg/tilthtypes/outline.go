package tilthtypes

// OutlineKind is the closed set of normalization targets every
// grammar-specific node kind ultimately maps onto.
type OutlineKind int

const (
	Function OutlineKind = iota
	Method
	Class
	Struct
	Interface
	TypeAlias
	Enum
	Constant
	Variable
	Export
	Property
	Module
	Import
	TestSuite
	TestCase
)

// Label returns the fixed short token the renderer prints for this kind.
func (k OutlineKind) Label() string {
	switch k {
	case Function:
		return "fn"
	case Method:
		return "method"
	case Class:
		return "class"
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	case TypeAlias:
		return "type"
	case Enum:
		return "enum"
	case Constant:
		return "const"
	case Variable:
		return "let"
	case Export:
		return "export"
	case Property:
		return "prop"
	case Module:
		return "mod"
	case Import:
		return "import"
	case TestSuite:
		return "suite"
	case TestCase:
		return "test"
	default:
		return "?"
	}
}

// OutlineEntry is a single normalized declaration record. Entries are
// immutable once built: the parser's tree is consulted during construction
// only and then discarded.
type OutlineEntry struct {
	Kind OutlineKind
	// Name is the declared identifier, or a sentinel like "<anonymous>" when
	// the node yields no identifiable name. For Import entries, Name carries
	// the raw import statement text.
	Name string

	// StartLine and EndLine are 1-based, inclusive line numbers.
	StartLine uint32
	EndLine   uint32

	// Signature is the first line of the declaration, cut before an opening
	// brace or a trailing colon; a line with neither is cut to 120 chars
	// (ellipsis beyond that). Empty means absent.
	Signature string
	HasSig    bool

	// Doc is the adjacent preceding comment, stripped of comment markers,
	// truncated to 60 chars for display. Empty means absent.
	Doc    string
	HasDoc bool

	// Children holds at most one nesting level for container kinds
	// (Class/Struct/Module); JSX subtree children are unbounded.
	Children []OutlineEntry
}

// TruncateStr truncates s to n bytes at a rune boundary, matching the
// teacher's truncate_str helper from the original Rust outline code.
func TruncateStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	total := 0
	for i, c := range r {
		total += len(string(c))
		if total > n {
			return string(r[:i])
		}
	}
	return s
}
