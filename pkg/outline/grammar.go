// Package outline extracts normalized OutlineEntry records from source files
// across the twelve languages the engine recognizes, and renders them back
// into the compact text format consumers read.
package outline

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_haskell "github.com/tree-sitter/tree-sitter-haskell/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// GrammarFor returns the compiled tree-sitter grammar for lang, and false for
// languages the engine recognizes but has no grammar in this binding family
// (Swift, Kotlin, C#, Dockerfile, Make — no bundled grammar at all; ReScript
// — a grammar exists, but only against go-tree-sitter-bare, a different
// binding family handled separately by rescriptEntries in rescript.go). Both
// groups fall back to the head/tail excerpt if a caller asks GrammarFor for
// them directly.
func GrammarFor(lang tilthtypes.Lang) (*ts.Language, bool) {
	switch lang {
	case tilthtypes.LangRust:
		return ts.NewLanguage(tree_sitter_rust.Language()), true
	case tilthtypes.LangTypeScript:
		return ts.NewLanguage(tree_sitter_typescript.LanguageTypescript()), true
	case tilthtypes.LangTSX:
		return ts.NewLanguage(tree_sitter_typescript.LanguageTSX()), true
	case tilthtypes.LangJavaScript:
		return ts.NewLanguage(tree_sitter_javascript.Language()), true
	case tilthtypes.LangPython:
		return ts.NewLanguage(tree_sitter_python.Language()), true
	case tilthtypes.LangGo:
		return ts.NewLanguage(tree_sitter_go.Language()), true
	case tilthtypes.LangJava:
		return ts.NewLanguage(tree_sitter_java.Language()), true
	case tilthtypes.LangC:
		return ts.NewLanguage(tree_sitter_c.Language()), true
	case tilthtypes.LangCpp:
		return ts.NewLanguage(tree_sitter_cpp.Language()), true
	case tilthtypes.LangRuby:
		return ts.NewLanguage(tree_sitter_ruby.Language()), true
	case tilthtypes.LangHaskell:
		return ts.NewLanguage(tree_sitter_haskell.Language()), true
	default:
		return nil, false
	}
}
