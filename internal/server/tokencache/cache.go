// Package tokencache provides the in-memory fast path for session-token
// version lookups. The cache is injected into the token store rather than
// being package-level state, so tests can swap it out and the durable store
// stays the source of truth.
package tokencache

import "sync"

// Cache maps token id → currently valid version.
type Cache interface {
	Get(tokenID string) (int64, bool)
	Set(tokenID string, version int64)
	Delete(tokenID string)
}

// Memory is a mutex-guarded map cache. Writes replace the stored value;
// increments happen in durable storage, never here.
type Memory struct {
	mu   sync.RWMutex
	data map[string]int64
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]int64)}
}

func (c *Memory) Get(tokenID string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[tokenID]
	return v, ok
}

func (c *Memory) Set(tokenID string, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[tokenID] = version
}

func (c *Memory) Delete(tokenID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, tokenID)
}
