package spec

import (
	"encoding/hex"
	"os"
	"sync"

	"github.com/zeebo/blake3"
)

// Cache memoizes loaded documents keyed by root path, validated by a
// blake3 hash over the content of every file the document was assembled
// from. A completion request arriving while the spec is unchanged skips
// the re-parse; any edit to the root or an included file invalidates the
// entry. Re-loading is idempotent, so a stale check simply falls through
// to Load.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	hash string
	doc  *Document
}

// NewCache creates an empty document cache
func NewCache() *Cache {
	return &Cache{entries: map[string]cacheEntry{}}
}

// Load returns the document for path, reusing the cached copy when the
// underlying files are unchanged. The boolean reports a cache hit.
func (c *Cache) Load(path string) (*Document, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if ok {
		if hash, err := hashFiles(entry.doc.Files); err == nil && hash == entry.hash {
			return entry.doc, true, nil
		}
	}

	doc, err := Load(path)
	if err != nil {
		return nil, false, err
	}

	hash, err := hashFiles(doc.Files)
	if err == nil {
		c.mu.Lock()
		c.entries[path] = cacheEntry{hash: hash, doc: doc}
		c.mu.Unlock()
	}
	return doc, false, nil
}

// hashFiles computes a blake3 digest over the concatenated content of
// the given files, in order.
func hashFiles(files []string) (string, error) {
	h := blake3.New()
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", err
		}
		_, _ = h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
