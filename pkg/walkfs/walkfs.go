// Package walkfs discovers the files a directory-wide symbol search or
// outline scope walk should visit: a sorted, deduplicated list of absolute
// paths, filtered by doublestar include/exclude globs.
package walkfs

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExclude covers the directories that are never worth descending
// into for a source-outline scan: VCS metadata, dependency trees, and
// build output across the languages the engine recognizes.
var DefaultExclude = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/target/**",
	"**/dist/**",
	"**/build/**",
	"**/.venv/**",
	"**/vendor/**",
	"**/_build/**",
	"**/.stack-work/**",
}

// Options controls a Discover walk.
type Options struct {
	// Include restricts the walk to paths matching at least one pattern.
	// An empty slice means every non-excluded file is included.
	Include []string
	// Exclude skips any path (file or directory) matching a pattern. When
	// nil, DefaultExclude is used; pass an explicit empty slice to disable
	// exclusion entirely.
	Exclude []string
}

// Discover walks root and returns a sorted slice of absolute file paths
// matching opts. Errors from individual directory entries are swallowed so
// that one unreadable subtree doesn't abort the whole scope.
func Discover(root string, opts Options) ([]string, error) {
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("walkfs: invalid exclude pattern %q", pattern)
		}
	}
	for _, pattern := range opts.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("walkfs: invalid include pattern %q", pattern)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("walkfs: resolve root %q: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(opts.Include) > 0 {
			matched := false
			for _, pattern := range opts.Include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
