// Package cache memoizes derived values keyed by the ledger's mutation
// version. Reports are pure functions of the snapshot, so a cached value
// stays valid until the next mutation bumps the version.
package cache

import "sync"

// Versioned holds at most one value together with the version it was
// computed for. Safe for concurrent use.
type Versioned[T any] struct {
	mu      sync.RWMutex
	version uint64
	value   T
	valid   bool
}

// Get returns the cached value when it was computed for exactly this
// version.
func (c *Versioned[T]) Get(version uint64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid || c.version != version {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Put stores the value computed for the given version, replacing whatever
// was cached before.
func (c *Versioned[T]) Put(version uint64, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version = version
	c.value = value
	c.valid = true
}

// Invalidate drops the cached value.
func (c *Versioned[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
