package walkfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverFindsFiles(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "main.go", "package main")
	writeFile(t, tmp, "sub/helper.go", "package sub")

	files, err := Discover(tmp, Options{})
	require.NoError(t, err)

	names := baseNames(files)
	assert.Contains(t, names, "main.go")
	assert.Contains(t, names, "helper.go")
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f))
	}
}

func TestDiscoverSkipsDefaultExcludes(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "main.go", "package main")
	writeFile(t, tmp, "node_modules/pkg/index.js", "module.exports = {}")
	writeFile(t, tmp, ".git/HEAD", "ref: refs/heads/main")
	writeFile(t, tmp, "vendor/dep/dep.go", "package dep")

	files, err := Discover(tmp, Options{})
	require.NoError(t, err)

	names := baseNames(files)
	assert.Contains(t, names, "main.go")
	assert.NotContains(t, names, "index.js")
	assert.NotContains(t, names, "HEAD")
	assert.NotContains(t, names, "dep.go")
}

func TestDiscoverHonorsInclude(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "a.go", "package a")
	writeFile(t, tmp, "b.rs", "fn main() {}")

	files, err := Discover(tmp, Options{Include: []string{"**/*.rs"}})
	require.NoError(t, err)

	names := baseNames(files)
	assert.Contains(t, names, "b.rs")
	assert.NotContains(t, names, "a.go")
}

func TestDiscoverOutputIsSorted(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "zeta.go", "package z")
	writeFile(t, tmp, "alpha.go", "package a")
	writeFile(t, tmp, "mid/beta.go", "package m")

	files, err := Discover(tmp, Options{})
	require.NoError(t, err)
	require.Len(t, files, 3)
	for i := 1; i < len(files); i++ {
		assert.LessOrEqual(t, files[i-1], files[i])
	}
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	tmp := t.TempDir()
	files, err := Discover(tmp, Options{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverRejectsInvalidGlob(t *testing.T) {
	tmp := t.TempDir()
	_, err := Discover(tmp, Options{Exclude: []string{"[invalid"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
