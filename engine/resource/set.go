package resource

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
)

// Set is the resource ownership of one scene object: the original detailed resources
// (material, mesh, textures) it can drop while not rendered, and a shared lightweight
// substitute that stays referenced for the life of the set.
type Set struct {
	mu *sync.Mutex

	c          Cache
	originals  []string
	substitute string

	loaded        bool
	substituteRef bool
}

var (
	_ lod.ResourceSet  = &Set{}
	_ lod.ResourceHost = &cache{}
)

// NewSet creates a Set over the given keys and acquires both the originals and the
// substitute. An empty substitute key means the object has no substitute.
//
// Parameters:
//   - c: the cache resources are acquired from
//   - substitute: key of the shared lightweight resource, may be empty
//   - originals: keys of the detailed resources
//
// Returns:
//   - *Set: the loaded set
//   - error: error if any resource fails to load
func NewSet(c Cache, substitute string, originals ...string) (*Set, error) {
	s := &Set{
		mu:         &sync.Mutex{},
		c:          c,
		originals:  append([]string(nil), originals...),
		substitute: substitute,
	}
	if substitute != "" {
		if _, err := c.Acquire(substitute); err != nil {
			return nil, err
		}
		s.substituteRef = true
	}
	if err := s.Load(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Originals returns the keys of the detailed resources.
func (s *Set) Originals() []string {
	return append([]string(nil), s.originals...)
}

// Substitute returns the key of the shared lightweight resource.
func (s *Set) Substitute() string {
	return s.substitute
}

func (s *Set) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load acquires every original resource. On failure the resources acquired so far
// are released and the set stays unloaded.
func (s *Set) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	for i, key := range s.originals {
		if _, err := s.c.Acquire(key); err != nil {
			for _, acquired := range s.originals[:i] {
				s.c.Release(acquired)
			}
			return err
		}
	}
	s.loaded = true
	return nil
}

// Unload releases every original resource. The memory is freed by the next reclaim.
func (s *Set) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return
	}
	for _, key := range s.originals {
		s.c.Release(key)
	}
	s.loaded = false
}

// Close unloads the originals and drops the substitute reference. Called when the
// owning object is destroyed.
func (s *Set) Close() {
	s.Unload()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.substituteRef {
		s.c.Release(s.substitute)
		s.substituteRef = false
	}
}
