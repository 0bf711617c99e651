// Package resource is the host resource system used by LOD-managed objects. Resources
// are ref-counted by key and released lazily: dropping the last reference only marks
// an entry unused, and the memory is freed by a later bulk reclaim.
package resource

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// LoaderFunc loads the value backing a resource key.
type LoaderFunc func(key string) (any, error)

// ReleaserFunc frees the value backing a resource key.
type ReleaserFunc func(key string, value any)

// Stats is a snapshot of a Cache's counters.
type Stats struct {
	Entries   int    // entries currently resident
	Unused    int    // resident entries with no references
	Loads     uint64 // total successful loads
	Reclaimed uint64 // total entries freed by reclaim
	Reclaims  uint64 // total reclaim passes run
}

type entry struct {
	value any
	refs  int
}

// Cache defines the interface for a ref-counted resource cache with deferred bulk reclaim.
// Thread-safe for concurrent access.
type Cache interface {
	// Acquire returns the value for key, loading it if it is not resident, and adds a reference.
	//
	// Parameters:
	//   - key: the resource key
	//
	// Returns:
	//   - any: the resource value
	//   - error: error if the loader fails
	Acquire(key string) (any, error)

	// Release drops one reference to key. The entry stays resident until reclaimed.
	//
	// Parameters:
	//   - key: the resource key
	Release(key string)

	// Refs returns the current reference count for key, 0 if it is not resident.
	//
	// Parameters:
	//   - key: the resource key
	//
	// Returns:
	//   - int: the reference count
	Refs(key string) int

	// Resident reports whether key currently has a loaded value.
	//
	// Parameters:
	//   - key: the resource key
	//
	// Returns:
	//   - bool: true if resident
	Resident(key string) bool

	// ReclaimUnused frees every unreferenced entry on a background goroutine and returns
	// immediately.
	ReclaimUnused()

	// ReclaimUnusedSync frees every unreferenced entry before returning.
	//
	// Returns:
	//   - int: number of entries freed
	ReclaimUnusedSync() int

	// Wait blocks until all background reclaims issued so far have finished.
	Wait()

	// Stats returns a snapshot of the cache counters.
	//
	// Returns:
	//   - Stats: the counters
	Stats() Stats
}

type cache struct {
	mu      *sync.Mutex
	entries map[string]*entry

	loader   LoaderFunc
	releaser ReleaserFunc

	loads     atomic.Uint64
	reclaimed atomic.Uint64
	reclaims  atomic.Uint64

	reclaimWG sync.WaitGroup
}

// Ensure cache implements Cache interface.
var _ Cache = &cache{}

// NewCache creates a Cache configured with the given options. Without a loader the
// key itself is stored as the value.
//
// Parameters:
//   - options: functional options to configure the cache
//
// Returns:
//   - Cache: the newly created cache
func NewCache(options ...CacheBuilderOption) Cache {
	c := &cache{
		mu:      &sync.Mutex{},
		entries: make(map[string]*entry),
		loader: func(key string) (any, error) {
			return key, nil
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cache) Acquire(key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.refs++
		return e.value, nil
	}
	value, err := c.loader(key)
	if err != nil {
		return nil, fmt.Errorf("resource: load %q: %w", key, err)
	}
	c.entries[key] = &entry{value: value, refs: 1}
	c.loads.Add(1)
	return value, nil
}

func (c *cache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.refs > 0 {
		e.refs--
	}
}

func (c *cache) Refs(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.refs
	}
	return 0
}

func (c *cache) Resident(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func (c *cache) ReclaimUnused() {
	c.reclaimWG.Add(1)
	go func() {
		defer c.reclaimWG.Done()
		if freed := c.ReclaimUnusedSync(); freed > 0 {
			log.Printf("[Resource] reclaimed %d unused entries", freed)
		}
	}()
}

func (c *cache) ReclaimUnusedSync() int {
	c.mu.Lock()
	var freed []string
	var values []any
	for key, e := range c.entries {
		if e.refs == 0 {
			freed = append(freed, key)
			values = append(values, e.value)
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()

	// Releasers may be slow, so they run outside the lock.
	if c.releaser != nil {
		for i, key := range freed {
			c.releaser(key, values[i])
		}
	}
	c.reclaims.Add(1)
	c.reclaimed.Add(uint64(len(freed)))
	return len(freed)
}

func (c *cache) Wait() {
	c.reclaimWG.Wait()
}

func (c *cache) Stats() Stats {
	c.mu.Lock()
	s := Stats{Entries: len(c.entries)}
	for _, e := range c.entries {
		if e.refs == 0 {
			s.Unused++
		}
	}
	c.mu.Unlock()

	s.Loads = c.loads.Load()
	s.Reclaimed = c.reclaimed.Load()
	s.Reclaims = c.reclaims.Load()
	return s
}
