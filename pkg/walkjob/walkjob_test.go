package walkjob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilth-dev/tilth/pkg/sourcecache"
	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunParsesEveryFile(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTemp(t, dir, "a.go", "package a\n\nfunc Foo() {}\n"),
		writeTemp(t, dir, "b.go", "package b\n\nfunc Bar() {}\n"),
	}

	cache := sourcecache.New(nil)
	defer cache.Close()

	results := Run(paths, func(string) tilthtypes.Lang { return tilthtypes.LangGo }, cache, 2, nil)

	require.Len(t, results, 2)
	byPath := map[string]FileResult{}
	for _, r := range results {
		require.NoError(t, r.Err)
		byPath[r.Path] = r
	}
	assert.NotEmpty(t, byPath[paths[0]].Entries)
	assert.NotEmpty(t, byPath[paths[1]].Entries)
}

func TestRunReportsReadErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.go")

	cache := sourcecache.New(nil)
	defer cache.Close()

	results := Run([]string{missing}, func(string) tilthtypes.Lang { return tilthtypes.LangGo }, cache, 1, nil)

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestRunFallsBackForUngrammaredLanguage(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "Main.swift", "struct Main {}\n")

	cache := sourcecache.New(nil)
	defer cache.Close()

	results := Run([]string{path}, func(string) tilthtypes.Lang { return tilthtypes.LangSwift }, cache, 1, nil)

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Empty(t, results[0].Entries)
	assert.NotEmpty(t, results[0].Source)
}
