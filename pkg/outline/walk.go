package outline

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// WalkTopLevel iterates root's direct children in document order and maps
// each one to an OutlineEntry, skipping nodes the mapper rejects. Haskell's
// `declarations` and `imports` wrapper nodes are transparent: their own
// children are visited as though they were themselves top-level.
func WalkTopLevel(root *ts.Node, lines []string, lang tilthtypes.Lang) []tilthtypes.OutlineEntry {
	var entries []tilthtypes.OutlineEntry

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if lang == tilthtypes.LangHaskell && (child.Kind() == "declarations" || child.Kind() == "imports") {
			for j := uint(0); j < child.ChildCount(); j++ {
				inner := child.Child(j)
				if inner == nil {
					continue
				}
				if entry, ok := nodeToEntry(inner, lines, lang, 0); ok {
					entries = append(entries, entry)
				}
			}
			continue
		}
		if entry, ok := nodeToEntry(child, lines, lang, 0); ok {
			entries = append(entries, entry)
		}
	}

	return entries
}

// nodeToEntry converts a single tree-sitter node to an OutlineEntry based on
// its grammar kind string. This is the flat switch the design mandates: one
// function, no per-kind types, per-language disambiguation via guards on the
// language tag alongside the kind string.
func nodeToEntry(node *ts.Node, lines []string, lang tilthtypes.Lang, depth int) (tilthtypes.OutlineEntry, bool) {
	kindStr := node.Kind()
	startLine := node.StartPosition().Row + 1
	endLine := node.EndPosition().Row + 1

	var kind tilthtypes.OutlineKind
	var name string
	var signature string
	var hasSig bool

	switch kindStr {
	// Functions
	case "function_declaration", "function_definition", "function_item",
		"method_definition", "method_declaration":
		name = firstNonEmpty(findChildText(node, "name", lines), findChildText(node, "identifier", lines))
		if name == "" {
			name = "<anonymous>"
		}
		kind = tilthtypes.Function
		signature, hasSig = extractSignature(node, lines), true

	// Classes & structs
	case "class_declaration", "class_definition":
		name = firstNonEmpty(findChildText(node, "name", lines), findChildText(node, "identifier", lines))
		if name == "" {
			name = "<anonymous>"
		}
		kind = tilthtypes.Class
	case "struct_item", "struct_declaration":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Struct

	// Interfaces & types
	case "interface_declaration", "type_alias_declaration":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Interface
	case "type_item":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.TypeAlias

	// Go: `type Name struct {...}` is a type_declaration wrapping a type_spec
	case "type_declaration":
		var spec *ts.Node
		for i := uint(0); i < node.ChildCount(); i++ {
			if c := node.Child(i); c != nil && c.Kind() == "type_spec" {
				spec = c
				break
			}
		}
		if spec == nil {
			return tilthtypes.OutlineEntry{}, false
		}
		name = orDefault(findChildText(spec, "name", lines), "<anonymous>")
		kind = tilthtypes.TypeAlias
		if t := spec.ChildByFieldName("type"); t != nil && t.Kind() == "struct_type" {
			kind = tilthtypes.Struct
		}

	// Enums
	case "enum_item", "enum_declaration":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Enum

	// Impl blocks (Rust)
	case "impl_item":
		t := orDefault(findChildText(node, "type", lines), "<impl>")
		name = "impl " + t
		kind = tilthtypes.Module

	// Constants and variables
	case "const_item", "static_item":
		name = orDefault(findChildText(node, "name", lines), "<const>")
		kind = tilthtypes.Constant
	case "lexical_declaration", "variable_declaration":
		name = orDefault(firstIdentifierText(node, lines), "<var>")
		kind = tilthtypes.Variable

	// Imports — collected as a group by the renderer
	case "import_statement", "import_declaration", "use_declaration", "use_item":
		name = nodeText(node, lines)
		kind = tilthtypes.Import

	// Exports
	case "export_statement":
		name = nodeText(node, lines)
		kind = tilthtypes.Export

	// Module declarations
	case "mod_item", "module":
		name = orDefault(findChildText(node, "name", lines), "<module>")
		kind = tilthtypes.Module

	// Haskell: functions and type signatures
	case "function", "bind":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Function
		signature, hasSig = extractSignature(node, lines), true
	case "signature":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Function
		signature, hasSig = extractSignature(node, lines), true

	// Haskell: data types
	case "data_type":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Enum

	// Haskell: newtype
	case "newtype":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Struct

	// Haskell: type alias (grammar misspells this "type_synomym" — preserved)
	case "type_synomym":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.TypeAlias

	// Haskell: type class
	case "class":
		name = orDefault(findChildText(node, "name", lines), "<anonymous>")
		kind = tilthtypes.Interface

	// Haskell: type class instance
	case "instance":
		className := orDefault(findChildText(node, "name", lines), "<instance>")
		typeName := findChildText(node, "patterns", lines)
		if typeName == "" {
			name = className
		} else {
			name = className + " " + typeName
		}
		kind = tilthtypes.Class

	// Haskell: foreign import (nested: foreign_import → signature → name)
	case "foreign_import":
		name = nodeText(node, lines)
		if sig := node.ChildByFieldName("signature"); sig != nil {
			if n := findChildText(sig, "name", lines); n != "" {
				name = n
			}
		}
		kind = tilthtypes.Import

	// Haskell: import declaration
	case "import":
		name = nodeText(node, lines)
		kind = tilthtypes.Import

	default:
		return tilthtypes.OutlineEntry{}, false
	}

	// Collect children for classes, structs, modules, one level deep.
	var children []tilthtypes.OutlineEntry
	if (kind == tilthtypes.Class || kind == tilthtypes.Struct || kind == tilthtypes.Module) && depth < 1 {
		children = collectChildren(node, lines, lang, depth+1)
	}

	doc, hasDoc := extractDoc(node, lines)

	return tilthtypes.OutlineEntry{
		Kind:      kind,
		Name:      name,
		StartLine: startLine,
		EndLine:   endLine,
		Signature: signature,
		HasSig:    hasSig,
		Doc:       doc,
		HasDoc:    hasDoc,
		Children:  children,
	}, true
}

// collectChildren collects child entries from a class/struct/module body: it
// first looks for a sub-node whose kind name contains "body" or "block"
// (a conservative heuristic that tolerates grammar variation), otherwise
// recurses the node itself.
func collectChildren(node *ts.Node, lines []string, lang tilthtypes.Lang, depth int) []tilthtypes.OutlineEntry {
	var body *ts.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if strings.Contains(c.Kind(), "body") || strings.Contains(c.Kind(), "block") {
			body = c
			break
		}
	}

	parent := node
	if body != nil {
		parent = body
	}

	var children []tilthtypes.OutlineEntry
	for i := uint(0); i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child == nil {
			continue
		}
		if entry, ok := nodeToEntry(child, lines, lang, depth); ok {
			children = append(children, entry)
		}
	}

	return children
}

// findChildText returns the text of the named field child, or "" if absent.
func findChildText(node *ts.Node, field string, lines []string) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, lines)
}

// firstIdentifierText finds the first identifier-like child (kind containing
// "identifier", "name", or "declarator"), recursing one level for patterns
// like `variable_declarator → identifier`.
func firstIdentifierText(node *ts.Node, lines []string) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		k := child.Kind()
		if strings.Contains(k, "identifier") || strings.Contains(k, "name") || strings.Contains(k, "declarator") {
			if text := nodeText(child, lines); text != "" {
				return text
			}
			for j := uint(0); j < child.ChildCount(); j++ {
				grandchild := child.Child(j)
				if grandchild != nil && strings.Contains(grandchild.Kind(), "identifier") {
					if text := nodeText(grandchild, lines); text != "" {
						return text
					}
				}
			}
		}
	}
	return ""
}

// extractSignature takes the source line at the node's start row, trimmed,
// truncated before an opening brace or a trailing colon (Python), or at 120
// chars with an ellipsis.
func extractSignature(node *ts.Node, lines []string) string {
	row := int(node.StartPosition().Row)
	if row >= len(lines) {
		return ""
	}
	line := strings.TrimSpace(lines[row])

	if pos := strings.Index(line, "{"); pos >= 0 {
		return strings.TrimSpace(line[:pos])
	}
	if strings.HasSuffix(line, ":") {
		if pos := strings.LastIndex(line, ":"); pos >= 0 {
			return strings.TrimSpace(line[:pos])
		}
	}
	if len(line) > 120 {
		return tilthtypes.TruncateStr(line, 117) + "..."
	}
	return line
}

// nodeText returns the node's source text, truncated to its first line. For
// multi-line nodes the first line is truncated to 80 chars with an ellipsis.
func nodeText(node *ts.Node, lines []string) string {
	start := node.StartPosition()
	end := node.EndPosition()
	row := int(start.Row)
	endRow := int(end.Row)

	if row >= len(lines) {
		return ""
	}

	if row == endRow {
		colStart := int(start.Column)
		colEnd := int(end.Column)
		line := lines[row]
		if colStart > len(line) {
			colStart = len(line)
		}
		if colEnd > len(line) {
			colEnd = len(line)
		}
		if colStart > colEnd {
			return ""
		}
		return line[colStart:colEnd]
	}

	colStart := int(start.Column)
	line := lines[row]
	if colStart > len(line) {
		colStart = len(line)
	}
	text := line[colStart:]
	if len(text) > 80 {
		return tilthtypes.TruncateStr(text, 77) + "..."
	}
	return text
}

// extractDoc pulls a doc comment from the immediately preceding sibling, if
// that sibling is a comment/doc node, stripping comment markers.
func extractDoc(node *ts.Node, lines []string) (string, bool) {
	prev := node.PrevSibling()
	if prev == nil {
		return "", false
	}
	k := prev.Kind()
	if !strings.Contains(k, "comment") && !strings.Contains(k, "doc") {
		return "", false
	}
	text := nodeText(prev, lines)
	text = strings.TrimPrefix(text, "///")
	text = strings.TrimPrefix(text, "//!")
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
