// Package sourcecache provides a memory-mapped file cache so that a
// directory-wide symbol search doesn't re-os.ReadFile the same source
// repeatedly within one Run call. Get returns a string copy of the mapped
// bytes, so a file's pages are all read on each Get.
package sourcecache

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// Cache is a thread-safe, lazily populated store of mmap'd file contents,
// keyed by absolute path. Reads don't block each other; loading a new file
// takes an exclusive lock.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *slog.Logger
}

type entry struct {
	data mmap.MMap // nil for fallback entries
	raw  []byte    // set instead of data when mmap failed
	file *os.File
}

func (e *entry) bytes() []byte {
	if e.data != nil {
		return e.data
	}
	return e.raw
}

// New creates an empty cache. If logger is nil, slog.Default() is used.
func New(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Get returns the full text of path, loading and mapping it on first access.
func (c *Cache) Get(path string) (string, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return string(e.bytes()), nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok {
		return string(e.bytes()), nil
	}

	e, err := c.load(path)
	if err != nil {
		return "", err
	}
	c.entries[path] = e
	return string(e.bytes()), nil
}

// load must be called while holding mu.
func (c *Cache) load(path string) (*entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sourcecache: open %q: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sourcecache: stat %q: %w", path, err)
	}
	if stat.Size() == 0 {
		f.Close()
		return &entry{raw: []byte{}}, nil
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		c.logger.Warn("sourcecache: mmap failed, falling back to ReadFile", "path", path, "error", err)
		data, readErr := os.ReadFile(path)
		f.Close()
		if readErr != nil {
			return nil, fmt.Errorf("sourcecache: read %q: %w", path, readErr)
		}
		return &entry{raw: data}, nil
	}

	return &entry{data: mapped, file: f}, nil
}

// Close unmaps every cached file and closes its descriptor. Safe to call
// once at the end of a Run invocation that built a scoped cache.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for path, e := range c.entries {
		if e.data != nil {
			if err := e.data.Unmap(); err != nil {
				errs = append(errs, fmt.Errorf("unmap %q: %w", path, err))
			}
		}
		if e.file != nil {
			if err := e.file.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %q: %w", path, err))
			}
		}
	}
	c.entries = make(map[string]*entry)

	if len(errs) > 0 {
		return fmt.Errorf("sourcecache: close errors: %v", errs)
	}
	return nil
}

// Len returns the number of files currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
