// Package tilthtypes holds the normalized data model shared by the outline
// pipeline and the symbol search engine: the language tag, the outline kind
// enumeration, and the outline entry record.
package tilthtypes

import (
	"path/filepath"
	"strings"
)

// Lang is the closed set of languages the outline pipeline recognizes.
// Every file is tagged with exactly one Lang before it reaches the parser.
type Lang int

const (
	LangUnknown Lang = iota
	LangRust
	LangTypeScript
	LangTSX
	LangJavaScript
	LangPython
	LangGo
	LangJava
	LangC
	LangCpp
	LangRuby
	LangHaskell
	LangReScript

	// Languages recognized but without a bundled grammar — outline() for
	// these always degrades to the fallback excerpt.
	LangSwift
	LangKotlin
	LangCSharp
	LangDockerfile
	LangMake
)

// String returns a short lowercase identifier for the language, as printed
// in test failure messages.
func (l Lang) String() string {
	switch l {
	case LangRust:
		return "rust"
	case LangTypeScript:
		return "typescript"
	case LangTSX:
		return "tsx"
	case LangJavaScript:
		return "javascript"
	case LangPython:
		return "python"
	case LangGo:
		return "go"
	case LangJava:
		return "java"
	case LangC:
		return "c"
	case LangCpp:
		return "cpp"
	case LangRuby:
		return "ruby"
	case LangHaskell:
		return "haskell"
	case LangReScript:
		return "rescript"
	case LangSwift:
		return "swift"
	case LangKotlin:
		return "kotlin"
	case LangCSharp:
		return "csharp"
	case LangDockerfile:
		return "dockerfile"
	case LangMake:
		return "make"
	default:
		return "unknown"
	}
}

// ParseLangFromExt assigns a Lang from a file path's extension (and, for a
// few extensionless conventions like Dockerfile/Makefile, its base name).
// This is the minimal implementation of the "external collaborator" spec.md
// leaves unspecified — Run needs some assignment to dispatch at all.
func ParseLangFromExt(path string) Lang {
	base := filepath.Base(path)
	switch strings.ToLower(base) {
	case "dockerfile":
		return LangDockerfile
	case "makefile":
		return LangMake
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".rs":
		return LangRust
	case ".ts", ".mts", ".cts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript
	case ".py", ".pyi":
		return LangPython
	case ".go":
		return LangGo
	case ".java":
		return LangJava
	case ".c", ".h":
		return LangC
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx":
		return LangCpp
	case ".rb":
		return LangRuby
	case ".hs":
		return LangHaskell
	case ".res", ".resi":
		return LangReScript
	case ".swift":
		return LangSwift
	case ".kt", ".kts":
		return LangKotlin
	case ".cs":
		return LangCSharp
	default:
		return LangUnknown
	}
}
