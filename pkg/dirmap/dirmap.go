// Package dirmap renders the directory-map branch of the host dispatch
// rule. Spec.md marks directory-map rendering fully out of scope, so this
// is intentionally a shallow, depth-bounded file/folder listing rather than
// a per-file outline aggregate — just enough for `Run` to have something to
// return when a query resolves to a directory.
package dirmap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDepth bounds how many directory levels Generate descends when the
// caller passes no explicit depth.
const DefaultDepth = 2

// Generate lists root's contents depth levels deep, directories first then
// files, alphabetically within each group, with two-space indent per level.
func Generate(root string, depth int) (string, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("dirmap: stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("dirmap: %q is not a directory", root)
	}

	var b strings.Builder
	b.WriteString(filepath.Base(root))
	b.WriteString("/\n")
	if err := list(&b, root, depth, 1); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func list(b *strings.Builder, dir string, maxDepth, level int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("dirmap: read %q: %w", dir, err)
	}

	var dirs, files []os.DirEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	indent := strings.Repeat("  ", level)
	for _, d := range dirs {
		fmt.Fprintf(b, "%s%s/\n", indent, d.Name())
		if level < maxDepth {
			if err := list(b, filepath.Join(dir, d.Name()), maxDepth, level+1); err != nil {
				return err
			}
		}
	}
	for _, f := range files {
		fmt.Fprintf(b, "%s%s\n", indent, f.Name())
	}
	return nil
}
