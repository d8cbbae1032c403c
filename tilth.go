// Package tilth is the root dispatcher: given a text query, a scope
// directory, and display limits, it decides whether the query names a file
// (outline it), a directory (map it), or a symbol (search for it), per
// §6's dispatch rule. It is the single entry point both the CLI and the
// MCP server call.
package tilth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tilth-dev/tilth/pkg/cache"
	"github.com/tilth-dev/tilth/pkg/dirmap"
	"github.com/tilth-dev/tilth/pkg/outline"
	"github.com/tilth-dev/tilth/pkg/search"
	"github.com/tilth-dev/tilth/pkg/sourcecache"
	"github.com/tilth-dev/tilth/pkg/tilthtypes"
	"github.com/tilth-dev/tilth/pkg/walkfs"
	"github.com/tilth-dev/tilth/pkg/walkjob"
)

// DefaultOutlineLines bounds how many lines Run prints for a file outline
// when the caller passes a nil limit.
const DefaultOutlineLines = 200

// DefaultDirDepth is the directory-map depth used when the caller passes a
// nil depth.
const DefaultDirDepth = dirmap.DefaultDepth

// Run implements the host dispatch rule. scope defaults to the current
// working directory when empty. limit and depth are optional (nil uses the
// package defaults); cache may be nil, in which case outlines are rendered
// uncached.
func Run(query, scope string, limit, depth *int, outlineCache *cache.OutlineCache) (string, error) {
	if scope == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("tilth: resolve working directory: %w", err)
		}
		scope = wd
	}
	scope, err := filepath.Abs(scope)
	if err != nil {
		return "", fmt.Errorf("tilth: resolve scope %q: %w", scope, err)
	}

	candidate := query
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(scope, query)
	}

	if info, statErr := os.Stat(candidate); statErr == nil {
		if info.IsDir() {
			d := DefaultDirDepth
			if depth != nil {
				d = *depth
			}
			return dirmap.Generate(candidate, d)
		}
		return outlineFile(candidate, limit, outlineCache)
	}

	return searchSymbol(query, scope)
}

func outlineFile(path string, limit *int, outlineCache *cache.OutlineCache) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("tilth: read %q: %w", path, err)
	}

	maxLines := DefaultOutlineLines
	if limit != nil {
		maxLines = *limit
	}

	hash := contentHash(content)
	if outlineCache != nil {
		if cached, ok := outlineCache.Get(path, hash); ok {
			return cached, nil
		}
	}

	lang := tilthtypes.ParseLangFromExt(path)
	rendered := outline.Outline(string(content), lang, maxLines, path)

	if outlineCache != nil {
		outlineCache.Put(path, hash, rendered)
	}
	return rendered, nil
}

func searchSymbol(query, scope string) (string, error) {
	paths, err := walkfs.Discover(scope, walkfs.Options{})
	if err != nil {
		return "", fmt.Errorf("tilth: discover files under %q: %w", scope, err)
	}

	src := sourcecache.New(nil)
	defer src.Close()

	results := walkjob.Run(paths, tilthtypes.ParseLangFromExt, src, 0, nil)

	var matches []search.Match
	for _, r := range results {
		if r.Err != nil || r.Source == "" {
			continue
		}
		matches = append(matches, search.ClassifyFile(query, r.Path, r.Source, r.Entries, r.FlatDefs)...)
	}

	return search.Rank(matches, scope), nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
