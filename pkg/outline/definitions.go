package outline

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// DefinitionKinds is the closed set of grammar node kinds, across all twelve
// languages, that the node→entry mappers (nodeToEntry, and
// rescriptNodeToEntry for ReScript) turn into declarations. The import, use
// and export kinds and lexical/variable declarations are not in the set;
// foreign_import is, but it maps to an Import entry, which the classifier
// does not count as a definition. The symbol classifier (pkg/search)
// consults this set, via the flat definitions returned alongside Entries, to
// classify direct text-token matches that a pure, depth-bounded outline pass
// would miss — e.g. a function declared inside another function's body,
// which WalkTopLevel's one-level-deep children never reach.
var DefinitionKinds = map[string]bool{
	// mainstream: functions, methods
	"function_declaration": true,
	"function_definition":  true,
	"function_item":        true,
	"method_definition":    true,
	"method_declaration":   true,
	// mainstream: classes, structs
	"class_declaration":  true,
	"class_definition":   true,
	"struct_item":        true,
	"struct_declaration": true,
	// interfaces, type aliases, enums
	"interface_declaration":  true,
	"type_alias_declaration": true,
	"type_item":              true,
	"enum_item":              true,
	"enum_declaration":       true,
	// impls, modules, consts
	"impl_item":   true,
	"const_item":  true,
	"static_item": true,
	"mod_item":    true,
	"module":      true,
	// Haskell
	"function":       true,
	"bind":           true,
	"signature":      true,
	"data_type":      true,
	"newtype":        true,
	"type_synomym":   true,
	"class":          true,
	"instance":       true,
	"foreign_import": true,
	// ReScript
	"let_declaration":       true,
	"type_declaration":      true,
	"module_declaration":    true,
	"external_declaration":  true,
	"exception_declaration": true,
}

// FlatDefinitions walks every node of root, at any nesting depth, and
// returns one OutlineEntry per node whose grammar kind is in
// DefinitionKinds. Unlike WalkTopLevel's bounded tree (one level of
// children, unbounded only for JSX), this reaches definitions nested inside
// function bodies, match arms, and other non-container constructs.
func FlatDefinitions(root *ts.Node, lines []string, lang tilthtypes.Lang) []tilthtypes.OutlineEntry {
	var out []tilthtypes.OutlineEntry
	collectDefinitionNodes(root, lines, lang, &out)
	return out
}

func collectDefinitionNodes(node *ts.Node, lines []string, lang tilthtypes.Lang, out *[]tilthtypes.OutlineEntry) {
	if node == nil {
		return
	}
	if DefinitionKinds[node.Kind()] {
		if entry, ok := nodeToEntry(node, lines, lang, 1); ok {
			entry.Children = nil
			*out = append(*out, entry)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectDefinitionNodes(node.Child(i), lines, lang, out)
	}
}
