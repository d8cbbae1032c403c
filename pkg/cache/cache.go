// Package cache implements the outline cache: an in-process, concurrency-safe
// get/put store keyed by (path, content hash) with last-writer-wins
// semantics. It stores rendered outline strings, not entries — the content-
// hash cache never holds parser state.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of rendered outlines kept resident. Outlines are
// small strings, so a generous size costs little memory.
const DefaultSize = 4096

// OutlineCache exposes the get/put contract described by the resource model:
// safe for concurrent read/insert, last-writer-wins on a colliding key.
type OutlineCache struct {
	lru *lru.Cache[string, string]
}

// New creates an outline cache with DefaultSize capacity.
func New() *OutlineCache {
	c, _ := lru.New[string, string](DefaultSize)
	return &OutlineCache{lru: c}
}

// NewWithSize creates an outline cache with an explicit capacity.
func NewWithSize(size int) *OutlineCache {
	c, _ := lru.New[string, string](size)
	return &OutlineCache{lru: c}
}

func key(path, contentHash string) string {
	return path + "@" + contentHash
}

// Get returns the cached rendered outline for (path, contentHash), if present.
func (c *OutlineCache) Get(path, contentHash string) (string, bool) {
	if c == nil || c.lru == nil {
		return "", false
	}
	return c.lru.Get(key(path, contentHash))
}

// Put stores the rendered outline for (path, contentHash). A later Put for
// the same key overwrites an earlier one (last-writer-wins); concurrent
// calls are serialized by the underlying LRU's own locking.
func (c *OutlineCache) Put(path, contentHash, rendered string) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(key(path, contentHash), rendered)
}
