package translate

import (
	"encoding/hex"
	"sync"

	"github.com/zeebo/blake3"
)

// Cache memoizes translations by source, target and a digest of the full
// text. It is safe for concurrent use. After Close every lookup misses and
// Put reports ErrCacheClosed.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	closed  bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func cacheKey(source, target, text string) string {
	sum := blake3.Sum256([]byte(text))
	return source + "|" + target + "|" + hex.EncodeToString(sum[:])
}

// Get returns the cached translation of text.
func (c *Cache) Get(source, target, text string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return "", false
	}
	v, ok := c.entries[cacheKey(source, target, text)]
	return v, ok
}

// Put stores a translation.
func (c *Cache) Put(source, target, text, translated string) error {
	if c == nil {
		return ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	c.entries[cacheKey(source, target, text)] = translated
	return nil
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry. A closed cache stays closed.
func (c *Cache) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.entries = make(map[string]string)
	}
}

// Close releases the entries. Close is idempotent.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = nil
	return nil
}
