package synth

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	synthesizer string
	name        string
	fingerprint uint64
}

func (k cacheKey) String() string {
	return k.synthesizer + "\x00" + k.name + "\x00" + strconv.FormatUint(k.fingerprint, 16)
}

// Cache holds synthesized types for the life of the process. Entries are never
// evicted or replaced, and failed syntheses are never stored. A Cache may be
// shared between factories; types of different synthesizers never collide.
type Cache struct {
	mu    sync.RWMutex
	types map[cacheKey]*Type
	group singleflight.Group

	hits, misses, syntheses atomic.Int64
}

// CacheStats counts cache traffic.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Syntheses int64
}

func NewCache() *Cache {
	return &Cache{types: make(map[cacheKey]*Type)}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.types)
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Syntheses: c.syntheses.Load(),
	}
}

func (c *Cache) lookup(key cacheKey) (*Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.types[key]

	return t, ok
}

// getOrCreate returns the cached type for key or runs create once for all
// concurrent callers. The boolean reports a cache hit.
func (c *Cache) getOrCreate(key cacheKey, create func() (*Type, error)) (*Type, bool, error) {
	if t, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return t, true, nil
	}

	c.misses.Add(1)

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		if t, ok := c.lookup(key); ok {
			return t, nil
		}

		c.syntheses.Add(1)

		t, err := create()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.types[key] = t
		c.mu.Unlock()

		return t, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.(*Type), false, nil
}
