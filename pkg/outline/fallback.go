package outline

import "strings"

// headTailLines bounds the fallback excerpt so a giant file without a
// grammar still produces a small, useful preview.
const headTailLines = 10

// HeadTail renders a head/tail text excerpt for languages without a bundled
// grammar, or when parsing otherwise fails. This is a boundary contract, not
// a parsing feature: no structure is inferred, just the first and last few
// lines of the file with a gap marker in between.
func HeadTail(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) <= headTailLines*2 {
		return strings.Join(lines, "\n")
	}

	head := lines[:headTailLines]
	tail := lines[len(lines)-headTailLines:]

	var out []string
	out = append(out, head...)
	out = append(out, "...")
	out = append(out, tail...)
	return strings.Join(out, "\n")
}
