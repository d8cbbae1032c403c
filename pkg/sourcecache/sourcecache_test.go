package sourcecache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetReturnsFileContents(t *testing.T) {
	path := writeTemp(t, "main.go", "package main\n\nfunc main() {}\n")

	c := New(nil)
	defer c.Close()

	got, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", got)
}

func TestGetIsCachedOnSecondCall(t *testing.T) {
	path := writeTemp(t, "a.go", "hello")

	c := New(nil)
	defer c.Close()

	_, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	got, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 1, c.Len())
}

func TestGetEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.go", "")

	c := New(nil)
	defer c.Close()

	got, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestGetMissingFileErrors(t *testing.T) {
	c := New(nil)
	defer c.Close()

	_, err := c.Get(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}

func TestCloseClearsEntries(t *testing.T) {
	path := writeTemp(t, "d.go", "data")

	c := New(nil)
	_, err := c.Get(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.Len())
}
