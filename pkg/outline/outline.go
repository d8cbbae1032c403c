package outline

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// Outline generates a code outline using tree-sitter: walks top-level AST
// nodes and emits signatures without bodies. It is deterministic and never
// fails — on grammar load failure or parse failure it returns the fallback
// head/tail excerpt. path is optional and is only consulted for ReScript's
// file-as-module wrapping rule.
func Outline(content string, lang tilthtypes.Lang, maxLines int, path string) string {
	entries, _, ok := Entries(content, lang, path)
	if !ok {
		return HeadTail(content)
	}
	return FormatEntries(entries, maxLines)
}

// Entries parses content and returns its normalized outline entries, for
// callers (the symbol classifier, directory-wide search) that need the
// structured form rather than the rendered text, alongside flatDefs: every
// definition-kind node in the tree regardless of nesting depth, for the
// classifier's DEFINITION_KINDS consultation (see FlatDefinitions). ok is
// false when no grammar is available or parsing failed, in which case
// callers should treat the file as text-only (fallback territory).
//
// Per the resource model, a fresh parser is constructed per call and
// discarded; nothing here is pooled.
//
// ReScript is parsed through a separate path (rescriptEntries): its grammar
// comes from go-sitter-forest, built against go-tree-sitter-bare rather than
// the github.com/tree-sitter/go-tree-sitter API every other language uses.
func Entries(content string, lang tilthtypes.Lang, path string) (entries []tilthtypes.OutlineEntry, flatDefs []tilthtypes.OutlineEntry, ok bool) {
	if lang == tilthtypes.LangReScript {
		return rescriptEntries(content, path)
	}

	language, ok := GrammarFor(lang)
	if !ok {
		return nil, nil, false
	}

	parser := ts.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(language); err != nil {
		return nil, nil, false
	}

	tree := parser.Parse([]byte(content), nil)
	if tree == nil {
		return nil, nil, false
	}
	defer tree.Close()

	lines := strings.Split(content, "\n")
	root := tree.RootNode()
	entries = WalkTopLevel(root, lines, lang)
	flatDefs = FlatDefinitions(root, lines, lang)

	return entries, flatDefs, true
}
