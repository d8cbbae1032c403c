package tilth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilth-dev/tilth/pkg/cache"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunOutlinesAFile(t *testing.T) {
	scope := t.TempDir()
	writeFile(t, scope, "main.go", "package main\n\nfunc Greet() {}\n")

	out, err := Run("main.go", scope, nil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "fn Greet")
}

func TestRunCachesRepeatedOutlineCalls(t *testing.T) {
	scope := t.TempDir()
	writeFile(t, scope, "main.go", "package main\n\nfunc Greet() {}\n")

	c := cache.New()
	first, err := Run("main.go", scope, nil, nil, c)
	require.NoError(t, err)
	second, err := Run("main.go", scope, nil, nil, c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunMapsADirectory(t *testing.T) {
	scope := t.TempDir()
	writeFile(t, scope, "sub/main.go", "package sub\n")

	out, err := Run(".", scope, nil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "sub/")
}

func TestRunSearchesASymbolWhenQueryIsNotAPath(t *testing.T) {
	scope := t.TempDir()
	writeFile(t, scope, "main.go", "package main\n\nfunc Greet() {\n\tGreet()\n}\n")

	out, err := Run("Greet", scope, nil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "[definition]")
}
