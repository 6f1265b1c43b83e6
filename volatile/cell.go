// Package volatile provides the storage used for fields declared volatile:
// every Load observes the most recent Store from any goroutine.
package volatile

import "sync"

// Cell holds one volatile value. The zero value holds the zero T.
type Cell[T any] struct {
	mu sync.RWMutex
	v  T
}

func (c *Cell[T]) Load() T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.v
}

func (c *Cell[T]) Store(v T) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// LoadAny is Load for callers that only know the cell dynamically.
func (c *Cell[T]) LoadAny() any {
	return c.Load()
}

// StoreAny stores v, which must be a T or nil for the zero T.
func (c *Cell[T]) StoreAny(v any) {
	if v == nil {
		var zero T
		c.Store(zero)
		return
	}

	c.Store(v.(T))
}

// Accessor is implemented by *Cell[T] for every T.
type Accessor interface {
	LoadAny() any
	StoreAny(v any)
}
