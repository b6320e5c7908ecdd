// Package core provides the group tier of groupx.
// derivedCache memoises quotient groups and subgroup groups per subgroup
// index. Thread-safe for concurrent access.
package core

import "sync"

type derivedCache struct {
	mu        sync.RWMutex
	quotients map[int]*Quotient
	embedded  map[int]*Embedded
}

func newDerivedCache() *derivedCache {
	return &derivedCache{
		quotients: make(map[int]*Quotient),
		embedded:  make(map[int]*Embedded),
	}
}

func (c *derivedCache) quotient(i int) (*Quotient, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotients[i]
	return q, ok
}

// storeQuotient records q unless another goroutine got there first, and
// returns the stored value.
func (c *derivedCache) storeQuotient(i int, q *Quotient) *Quotient {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.quotients[i]; ok {
		return prev
	}
	c.quotients[i] = q
	return q
}

func (c *derivedCache) embedding(i int) (*Embedded, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.embedded[i]
	return e, ok
}

func (c *derivedCache) storeEmbedding(i int, e *Embedded) *Embedded {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.embedded[i]; ok {
		return prev
	}
	c.embedded[i] = e
	return e
}
