package bundle

import (
	"context"
	"sync"
)

// LoadFunc produces the bundle for one process lifetime, typically by
// loading a trip source and calling Build.
type LoadFunc func(ctx context.Context) (*Bundle, error)

// Cache computes the bundle exactly once and serves the result for the
// rest of the process. The one-shot initialization is the only
// synchronization the pipeline needs: after the first Get returns, the
// bundle is read-only. A failed load is cached too; batch runs fail
// outright rather than retry.
type Cache struct {
	load LoadFunc

	once   sync.Once
	bundle *Bundle
	err    error
}

// NewCache creates an unprimed cache around load.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Get returns the cached bundle, computing it on first call. Callers
// wanting startup-time precomputation call Get once during boot.
func (c *Cache) Get(ctx context.Context) (*Bundle, error) {
	c.once.Do(func() {
		c.bundle, c.err = c.load(ctx)
	})
	return c.bundle, c.err
}
