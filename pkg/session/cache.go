package session

import "sync"

// indexCache holds the last enumeration result until the directory watcher
// invalidates it. Purely an optimization; correctness never depends on it.
type indexCache struct {
	mu      sync.RWMutex
	records []Record
	valid   bool
}

func newIndexCache() *indexCache {
	return &indexCache{}
}

// Get returns the cached records and whether they are still valid.
func (c *indexCache) Get() ([]Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out, true
}

// Set replaces the cached records.
func (c *indexCache) Set(records []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make([]Record, len(records))
	copy(c.records, records)
	c.valid = true
}

// Invalidate drops the cache; the next enumeration re-reads the directory.
func (c *indexCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	c.valid = false
}
