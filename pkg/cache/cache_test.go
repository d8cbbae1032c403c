package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPutRoundTrip(t *testing.T) {
	c := New()

	_, ok := c.Get("main.go", "abc123")
	assert.False(t, ok)

	c.Put("main.go", "abc123", "fn main\n")
	got, ok := c.Get("main.go", "abc123")
	assert.True(t, ok)
	assert.Equal(t, "fn main\n", got)
}

func TestPutIsLastWriterWins(t *testing.T) {
	c := New()

	c.Put("main.go", "abc123", "first")
	c.Put("main.go", "abc123", "second")

	got, ok := c.Get("main.go", "abc123")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestDifferentHashesAreDifferentKeys(t *testing.T) {
	c := New()

	c.Put("main.go", "hash1", "v1")
	c.Put("main.go", "hash2", "v2")

	got1, _ := c.Get("main.go", "hash1")
	got2, _ := c.Get("main.go", "hash2")
	assert.Equal(t, "v1", got1)
	assert.Equal(t, "v2", got2)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *OutlineCache
	_, ok := c.Get("x", "y")
	assert.False(t, ok)
	c.Put("x", "y", "z") // must not panic
}
