package outline

import (
	"context"
	"path/filepath"
	"strings"

	bare "github.com/alexaandru/go-tree-sitter-bare"

	forest_rescript "github.com/alexaandru/go-sitter-forest/rescript"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// ReScript is the one language in this package whose grammar doesn't come
// from github.com/tree-sitter/go-tree-sitter: go-sitter-forest/rescript is
// built against github.com/alexaandru/go-tree-sitter-bare, a different
// binding family with its own *Language and *Node types that don't
// type-check against GrammarFor's return type or walk.go's nodeToEntry. This
// file parses and walks the ReScript tree entirely through the bare
// binding's own API, re-implementing the handful of node kinds walk.go
// handles for every other language so the rest of the package never has to
// know two binding families exist.

// rescriptEntries is ReScript's equivalent of Entries: it parses content
// with the bare binding, maps top-level declarations, and, when path is
// given and there is at least one entry, wraps them as children of a
// synthetic Module entry named after the file stem.
func rescriptEntries(content string, path string) (entries []tilthtypes.OutlineEntry, flatDefs []tilthtypes.OutlineEntry, ok bool) {
	parser := bare.NewParser()
	parser.SetLanguage(forest_rescript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(content))
	if err != nil || tree == nil {
		return nil, nil, false
	}

	root := tree.RootNode()
	lines := strings.Split(content, "\n")

	entries = rescriptWalkTopLevel(root, lines)
	flatDefs = rescriptCollectDefinitions(root, lines)

	if len(entries) > 0 && path != "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if stem != "" {
			endLine := entries[len(entries)-1].EndLine
			entries = []tilthtypes.OutlineEntry{{
				Kind:      tilthtypes.Module,
				Name:      stem,
				StartLine: 1,
				EndLine:   endLine,
				Children:  entries,
			}}
		}
	}

	return entries, flatDefs, true
}

func rescriptWalkTopLevel(root *bare.Node, lines []string) []tilthtypes.OutlineEntry {
	var entries []tilthtypes.OutlineEntry
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if entry, ok := rescriptNodeToEntry(child, lines, 0); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// rescriptCollectDefinitions walks every node of the tree, at any nesting
// depth, and returns one OutlineEntry per node whose grammar kind is in
// DefinitionKinds — the same unbounded-depth consultation Entries performs
// for the other eleven languages.
func rescriptCollectDefinitions(node *bare.Node, lines []string) []tilthtypes.OutlineEntry {
	var out []tilthtypes.OutlineEntry
	rescriptCollectDefinitionsRec(node, lines, &out)
	return out
}

func rescriptCollectDefinitionsRec(node *bare.Node, lines []string, out *[]tilthtypes.OutlineEntry) {
	if node == nil {
		return
	}
	if DefinitionKinds[node.Type()] {
		if entry, ok := rescriptNodeToEntry(node, lines, 1); ok {
			entry.Children = nil
			*out = append(*out, entry)
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		rescriptCollectDefinitionsRec(node.Child(i), lines, out)
	}
}

// rescriptNodeToEntry mirrors walk.go's nodeToEntry, restricted to the
// ReScript-specific node kinds, against the bare binding's Node API.
func rescriptNodeToEntry(node *bare.Node, lines []string, depth int) (tilthtypes.OutlineEntry, bool) {
	kindStr := node.Type()
	startLine := node.StartPoint().Row + 1
	endLine := node.EndPoint().Row + 1

	var kind tilthtypes.OutlineKind
	var name string
	var signature string
	var hasSig bool

	switch kindStr {
	case "let_declaration":
		name = orDefault(rescriptBareBindingName(node, lines), "<anonymous>")
		if rescriptBareLetIsFunction(node) {
			kind = tilthtypes.Function
			signature, hasSig = rescriptBareSignature(node, lines), true
		} else {
			kind = tilthtypes.Variable
		}

	case "type_declaration":
		name = orDefault(rescriptBareBindingName(node, lines), "<anonymous>")
		kind = tilthtypes.TypeAlias

	case "module_declaration":
		name = orDefault(rescriptBareBindingName(node, lines), "<module>")
		kind = tilthtypes.Module

	case "external_declaration":
		name = orDefault(rescriptBareBindingName(node, lines), "<external>")
		kind = tilthtypes.Function

	case "open_statement":
		name = rescriptBareBindingName(node, lines)
		if name == "" {
			name = rescriptBareNodeText(node, lines)
		}
		kind = tilthtypes.Import

	case "exception_declaration":
		name = orDefault(rescriptBareBindingName(node, lines), "<exception>")
		kind = tilthtypes.Enum

	default:
		return tilthtypes.OutlineEntry{}, false
	}

	var children []tilthtypes.OutlineEntry
	if kind == tilthtypes.Module && depth < 1 {
		children = rescriptBareCollectChildren(node, lines, depth+1)
	}

	if kindStr == "let_declaration" && kind == tilthtypes.Function {
		if prev := node.PrevSibling(); prev != nil && prev.Type() == "decorator" &&
			strings.Contains(rescriptBareNodeText(prev, lines), "@react.component") {
			children = rescriptCollectJSXChildren(node, lines)
		}
	}

	doc, hasDoc := rescriptBareExtractDoc(node, lines)

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

// rescriptBareCollectChildren mirrors walk.go's collectChildren for a
// ReScript module_declaration's body, one level deep.
func rescriptBareCollectChildren(node *bare.Node, lines []string, depth int) []tilthtypes.OutlineEntry {
	var body *bare.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if strings.Contains(c.Type(), "body") || strings.Contains(c.Type(), "block") {
			body = c
			break
		}
	}

	parent := node
	if body != nil {
		parent = body
	}

	var children []tilthtypes.OutlineEntry
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child == nil {
			continue
		}
		if entry, ok := rescriptNodeToEntry(child, lines, depth); ok {
			children = append(children, entry)
		}
	}
	return children
}

// rescriptBareBindingName extracts the declared name from ReScript
// declaration nodes, which nest `*_declaration → *_binding → name/pattern`.
func rescriptBareBindingName(node *bare.Node, lines []string) string {
	switch node.Type() {
	case "let_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child != nil && child.Type() == "let_binding" {
				if n := rescriptBareFindChildText(child, "pattern", lines); n != "" {
					return n
				}
				return rescriptBareFindChildText(child, "name", lines)
			}
		}
	case "type_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child != nil && child.Type() == "type_binding" {
				return rescriptBareFindChildText(child, "name", lines)
			}
		}
	case "module_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child != nil && child.Type() == "module_binding" {
				return rescriptBareFindChildText(child, "name", lines)
			}
		}
	case "external_declaration":
		return rescriptBareFirstChildByKind(node, "value_identifier", lines)
	case "exception_declaration":
		return rescriptBareFirstChildByKind(node, "variant_identifier", lines)
	case "open_statement":
		return rescriptBareFirstChildByKind(node, "module_identifier", lines)
	}
	return ""
}

// rescriptBareLetIsFunction reports whether a ReScript let_binding's body is
// a function or arrow-function expression.
func rescriptBareLetIsFunction(node *bare.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == "let_binding" {
			if body := child.ChildByFieldName("body"); body != nil {
				return body.Type() == "function" || body.Type() == "arrow_function"
			}
		}
	}
	return false
}

// rescriptBareSignature takes the source line at the node's start row,
// trimmed and truncated before an opening brace, mirroring
// walk.go's extractSignature.
func rescriptBareSignature(node *bare.Node, lines []string) string {
	row := int(node.StartPoint().Row)
	if row >= len(lines) {
		return ""
	}
	line := strings.TrimSpace(lines[row])
	if pos := strings.Index(line, "{"); pos >= 0 {
		return strings.TrimSpace(line[:pos])
	}
	if len(line) > 120 {
		return tilthtypes.TruncateStr(line, 117) + "..."
	}
	return line
}

func rescriptBareFirstChildByKind(node *bare.Node, kind string, lines []string) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == kind {
			return rescriptBareNodeText(child, lines)
		}
	}
	return ""
}

func rescriptBareFindChildText(node *bare.Node, field string, lines []string) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return rescriptBareNodeText(child, lines)
}

// rescriptBareNodeText returns the node's source text, truncated to its
// first line, mirroring walk.go's nodeText.
func rescriptBareNodeText(node *bare.Node, lines []string) string {
	start := node.StartPoint()
	end := node.EndPoint()
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

func rescriptBareExtractDoc(node *bare.Node, lines []string) (string, bool) {
	prev := node.PrevSibling()
	if prev == nil {
		return "", false
	}
	k := prev.Type()
	if !strings.Contains(k, "comment") && !strings.Contains(k, "doc") {
		return "", false
	}
	text := rescriptBareNodeText(prev, lines)
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// rescriptCollectJSXChildren collects the JSX subtree under a decorated
// component binding: elements and fragments become Property entries with
// their nested JSX as children; self-closing elements have no children.
func rescriptCollectJSXChildren(node *bare.Node, lines []string) []tilthtypes.OutlineEntry {
	var entries []tilthtypes.OutlineEntry
	rescriptCollectJSXRecursive(node, lines, &entries)
	return entries
}

func rescriptCollectJSXRecursive(node *bare.Node, lines []string, entries *[]tilthtypes.OutlineEntry) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "jsx_element":
			tag := rescriptJSXTagName(child, lines)
			entry := tilthtypes.OutlineEntry{
				Kind:      tilthtypes.Property,
				Name:      "<" + tag + ">",
				StartLine: child.StartPoint().Row + 1,
				EndLine:   child.EndPoint().Row + 1,
			}
			rescriptCollectJSXRecursive(child, lines, &entry.Children)
			*entries = append(*entries, entry)

		case "jsx_self_closing_element":
			tag := rescriptJSXIdentifierText(child, lines)
			name := "<" + tag + " />"
			if rescriptHasJSXSpread(child) {
				name = "<" + tag + " .../>"
			}
			*entries = append(*entries, tilthtypes.OutlineEntry{
				Kind:      tilthtypes.Property,
				Name:      name,
				StartLine: child.StartPoint().Row + 1,
				EndLine:   child.EndPoint().Row + 1,
			})

		case "jsx_fragment":
			entry := tilthtypes.OutlineEntry{
				Kind:      tilthtypes.Property,
				Name:      "<>...</>",
				StartLine: child.StartPoint().Row + 1,
				EndLine:   child.EndPoint().Row + 1,
			}
			rescriptCollectJSXRecursive(child, lines, &entry.Children)
			*entries = append(*entries, entry)

		default:
			rescriptCollectJSXRecursive(child, lines, entries)
		}
	}
}

func rescriptJSXTagName(node *bare.Node, lines []string) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == "jsx_opening_element" {
			return rescriptJSXIdentifierText(child, lines)
		}
	}
	return "unknown"
}

func rescriptJSXIdentifierText(node *bare.Node, lines []string) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "nested_jsx_identifier":
			var parts []string
			for j := 0; j < int(child.ChildCount()); j++ {
				inner := child.Child(j)
				if inner != nil && inner.Type() == "jsx_identifier" {
					parts = append(parts, rescriptBareNodeText(inner, lines))
				}
			}
			return joinDot(parts)
		case "jsx_identifier":
			return rescriptBareNodeText(child, lines)
		}
	}
	return "unknown"
}

func rescriptHasJSXSpread(node *bare.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.Type() != "jsx_expression" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			inner := child.Child(j)
			if inner != nil && inner.Type() == "spread_element" {
				return true
			}
		}
	}
	return false
}

func joinDot(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
