package outline

import (
	"fmt"
	"strings"

	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// FormatEntries renders outline entries into the textual outline format,
// grouping adjacent import entries into a single collapsed line and
// enforcing a cap on output lines.
func FormatEntries(entries []tilthtypes.OutlineEntry, maxLines int) string {
	var out []string
	var importGroup []string
	lineCount := 0

	// add appends one rendered entry unless its lines (two when it has a
	// signature) would take the output past maxLines.
	add := func(s string) bool {
		n := strings.Count(s, "\n") + 1
		if lineCount+n > maxLines {
			return false
		}
		out = append(out, s)
		lineCount += n
		return true
	}

	flushImports := func() {
		if len(importGroup) == 0 {
			return
		}
		start := uint32(1)
		if len(entries) > 0 {
			start = entries[0].StartLine
		}
		out = append(out, formatImports(importGroup, start))
		lineCount++
		importGroup = nil
	}

	// addChildren renders each nesting level two more spaces in.
	var addChildren func(children []tilthtypes.OutlineEntry, indent int) bool
	addChildren = func(children []tilthtypes.OutlineEntry, indent int) bool {
		for _, child := range children {
			if !add(formatEntry(child, indent)) || !addChildren(child.Children, indent+1) {
				return false
			}
		}
		return true
	}

	for _, entry := range entries {
		if lineCount >= maxLines {
			break
		}

		if entry.Kind == tilthtypes.Import {
			importGroup = append(importGroup, entry.Name)
			continue
		}
		flushImports()

		if !add(formatEntry(entry, 0)) || !addChildren(entry.Children, 1) {
			break
		}
	}

	flushImports()

	return strings.Join(out, "\n")
}

// formatImports renders a collapsed import summary grouped by source with
// counts: `imports: react(4), express(2), @/lib(3)`.
func formatImports(imports []string, startLine uint32) string {
	count := len(imports)

	var sources []string
	seen := make(map[string]int)
	for _, imp := range imports {
		source := ExtractImportSource(imp)
		seen[source]++
		found := false
		for _, s := range sources {
			if s == source {
				found = true
				break
			}
		}
		if !found {
			sources = append(sources, source)
		}
	}

	limit := len(sources)
	if limit > 5 {
		limit = 5
	}
	parts := make([]string, 0, limit)
	for _, src := range sources[:limit] {
		if c := seen[src]; c > 1 {
			parts = append(parts, fmt.Sprintf("%s(%d)", src, c))
		} else {
			parts = append(parts, src)
		}
	}

	suffix := ""
	if count > 5 {
		suffix = fmt.Sprintf(", ... (%d total)", count)
	}

	return fmt.Sprintf("[%d-]   imports: %s%s", startLine, strings.Join(parts, ", "), suffix)
}

// ExtractImportSource extracts the source module name from a raw import
// statement's text. Order matters: the Haskell rule must run before the
// generic `import M` rule, and the "has ` from `" check disambiguates
// against TypeScript/JavaScript.
func ExtractImportSource(text string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(text), ";")

	if rest, ok := strings.CutPrefix(trimmed, "use "); ok {
		part := rest
		if idx := strings.Index(part, "{"); idx >= 0 {
			part = part[:idx]
		}
		return strings.TrimSuffix(strings.TrimSpace(part), "::")
	}

	if rest, ok := strings.CutPrefix(trimmed, "open "); ok {
		return firstField(rest)
	}

	if rest, ok := strings.CutPrefix(trimmed, "from "); ok {
		return firstField(rest)
	}

	if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
		if !strings.Contains(trimmed, " from ") && !strings.Contains(trimmed, " from\"") {
			rest = strings.TrimPrefix(rest, "qualified ")
			if module := firstField(rest); module != "" {
				r := []rune(module)
				if len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z' {
					return module
				}
			}
		}
	}

	if strings.HasPrefix(trimmed, "import") {
		if fromPos := strings.Index(trimmed, "from "); fromPos >= 0 {
			source := trimmed[fromPos+5:]
			return strings.Trim(strings.TrimSpace(source), `"';`)
		}
		after := strings.TrimPrefix(trimmed, "import ")
		return strings.Trim(strings.TrimSpace(after), `"';`)
	}

	if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
		return firstField(rest)
	}

	if rest, ok := strings.CutPrefix(trimmed, "#include"); ok {
		return strings.TrimSpace(rest)
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return trimmed
	}
	return fields[len(fields)-1]
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// formatEntry renders a single entry line, indented two spaces per level.
func formatEntry(entry tilthtypes.OutlineEntry, indent int) string {
	prefix := strings.Repeat("  ", indent)

	var rng string
	if entry.StartLine == entry.EndLine {
		rng = fmt.Sprintf("[%d]", entry.StartLine)
	} else {
		rng = fmt.Sprintf("[%d-%d]", entry.StartLine, entry.EndLine)
	}

	label := entry.Kind.Label()

	sig := ""
	if entry.HasSig {
		sig = fmt.Sprintf("\n%s           %s", prefix, entry.Signature)
	}

	doc := ""
	if entry.HasDoc {
		truncated := entry.Doc
		if len(truncated) > 60 {
			truncated = tilthtypes.TruncateStr(truncated, 57) + "..."
		}
		doc = "  // " + truncated
	}

	return fmt.Sprintf("%s%-12s %s %s%s%s", prefix, rng, label, entry.Name, sig, doc)
}
