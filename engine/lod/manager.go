// Package lod decides, for a large population of placed objects, how much rendering
// detail each deserves given its planar distance to an observer. Objects are processed
// in fixed-size windows, one window per tick, with the distance evaluation of each
// window running on a worker pool while the tick goroutine moves on.
package lod

import (
	"fmt"
	"log"
	"reflect"
	"sync"

	"github.com/Carmen-Shannon/oxy-lod/common"
)

// Stats is a snapshot of a Manager's counters.
type Stats struct {
	Registered  int    // objects currently tracked
	Ticks       uint64 // calls to Tick
	Dispatches  uint64 // distance evaluations dispatched
	Updates     uint64 // per-object LOD updates applied
	Transitions uint64 // tier transitions fired
	StaleSkips  uint64 // dead handles skipped during refresh or apply
	Cycles      uint64 // completed full passes over the registry
	Reclaims    uint64 // bulk reclaim requests issued
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Registered:  s.Registered + o.Registered,
		Ticks:       s.Ticks + o.Ticks,
		Dispatches:  s.Dispatches + o.Dispatches,
		Updates:     s.Updates + o.Updates,
		Transitions: s.Transitions + o.Transitions,
		StaleSkips:  s.StaleSkips + o.StaleSkips,
		Cycles:      s.Cycles + o.Cycles,
		Reclaims:    s.Reclaims + o.Reclaims,
	}
}

// Manager is the batched, pipelined LOD scheduler. Each Tick joins the previous
// window's distance evaluation, applies its results through the per-object state
// machine, then refreshes and dispatches the next window without waiting for it.
// Register and Unregister always join the outstanding dispatch before the registry's
// mirror buffers are reallocated.
// Thread-safe for concurrent access.
type Manager interface {
	// Register starts tracking obj. Registering a tracked object is a no-op. Invalid
	// thresholds reject the object and return a wrapped threshold error.
	//
	// Parameters:
	//   - obj: the host object (must be comparable, typically a pointer)
	//   - thresholds: 2 or 3 strictly ascending, positive squared distances
	//   - enabled: false to track the object without ever switching its tier
	//
	// Returns:
	//   - error: ErrNilObject or a threshold error, nil otherwise
	Register(obj Object, thresholds Thresholds, enabled bool) error

	// Unregister stops tracking obj. Unregistering an untracked object is a no-op.
	//
	// Parameters:
	//   - obj: the host object
	Unregister(obj Object)

	// Tick applies the previous window's results and dispatches the next window.
	Tick()

	// Flush joins the outstanding dispatch, if any, and applies its results.
	Flush()

	// Count returns the number of tracked objects.
	//
	// Returns:
	//   - int: the registry length
	Count() int

	// Cycles returns the number of completed full passes over the registry.
	//
	// Returns:
	//   - int: completed cycles
	Cycles() int

	// Tier returns the current tier of obj, or TierUnset if it is not tracked or has
	// not been updated yet.
	//
	// Parameters:
	//   - obj: the host object
	//
	// Returns:
	//   - Tier: the object's tier
	Tier(obj Object) Tier

	// Observer returns the observer distances are measured from.
	Observer() Observer

	// SetObserver replaces the observer. Takes effect on the next dispatch.
	//
	// Parameters:
	//   - o: the new observer (must not be nil)
	SetObserver(o Observer)

	// Stats returns a snapshot of the manager's counters.
	//
	// Returns:
	//   - Stats: the counters
	Stats() Stats

	// Close flushes the outstanding dispatch and stops the worker pool the manager
	// created. Later calls to Tick are no-ops. Safe to call more than once.
	Close()
}

type dispatch struct {
	start, end int
	handle     Handle
	farClipSqr float32
}

type manager struct {
	mu *sync.Mutex

	observer  Observer
	registry  *Registry
	cursor    *BatchCursor
	reclaimer *Reclaimer
	pmap      ParallelMap
	ownsPmap  bool
	closed    bool

	// pending is the dispatch whose results have not been applied yet.
	pending *dispatch

	batchSize            int
	cyclesBetweenReclaim int
	workers              int
	pipelined            bool
	farClip              float32 // overrides observer.Far() when > 0
	resourceHost         ResourceHost

	onUpdate     func(obj Object, distSqr, farClipSqr float32)
	onTransition func(obj Object, from, to Tier)

	stats Stats
}

// Ensure manager implements Manager interface.
var _ Manager = &manager{}

// NewManager creates a Manager measuring distances from the given observer.
// Panics if observer is nil.
//
// Parameters:
//   - observer: the reference position (must not be nil)
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the newly created manager
func NewManager(observer Observer, options ...ManagerBuilderOption) Manager {
	if observer == nil {
		panic("lod: NewManager requires a non-nil Observer")
	}

	m := &manager{
		mu:                   &sync.Mutex{},
		observer:             observer,
		registry:             NewRegistry(),
		batchSize:            DefaultBatchSize,
		cyclesBetweenReclaim: DefaultCyclesBetweenReclaim,
		pipelined:            true,
	}

	for _, option := range options {
		option(m)
	}

	// Built after options so the With* overrides apply.
	m.cursor = NewBatchCursor(m.batchSize)
	m.reclaimer = NewReclaimer(m.resourceHost, m.cyclesBetweenReclaim)
	if m.pmap == nil {
		m.pmap = NewPoolMap(m.workers)
		m.ownsPmap = true
	}

	return m
}

func (m *manager) Register(obj Object, thresholds Thresholds, enabled bool) error {
	if isNil(obj) {
		return fmt.Errorf("lod: register object: %w", ErrNilObject)
	}
	if err := thresholds.Validate(); err != nil {
		log.Printf("[LOD] rejected %T: %v", obj, err)
		return fmt.Errorf("lod: register %T: %w", obj, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registry.Contains(obj) {
		return nil
	}
	m.complete()
	m.registry.Add(obj, thresholds, enabled)
	return nil
}

func (m *manager) Unregister(obj Object) {
	if isNil(obj) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registry.Contains(obj) {
		return
	}
	m.complete()
	m.registry.Remove(obj)
}

func (m *manager) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.stats.Ticks++
	m.complete()

	start, end, wrapped := m.cursor.Next(m.registry.Len())
	if end <= start {
		return
	}
	if wrapped {
		m.stats.Cycles++
		if m.reclaimer.OnCycleComplete() {
			m.stats.Reclaims++
		}
	}

	m.stats.StaleSkips += uint64(m.registry.RefreshPositions(start, end))

	observer := common.Planar(m.observer.Position())
	positions := m.registry.Positions(start, end)
	out := m.registry.DistSqr(start, end)

	m.registry.inFlight = true
	handle := m.pmap.Map(end-start, func(lo, hi int) {
		EvaluateDistances(observer, positions[lo:hi], out[lo:hi])
	})
	m.pending = &dispatch{
		start:      start,
		end:        end,
		handle:     handle,
		farClipSqr: m.farClipSqr(),
	}
	m.stats.Dispatches++

	if !m.pipelined {
		m.complete()
	}
}

func (m *manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.complete()
}

func (m *manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.complete()
	m.closed = true
	if c, ok := m.pmap.(interface{ Close() }); ok && m.ownsPmap {
		c.Close()
	}
}

// complete joins the pending dispatch and applies its results, one UpdateLOD per
// object in the window. Must be called with mu held.
func (m *manager) complete() {
	d := m.pending
	if d == nil {
		return
	}
	m.pending = nil
	d.handle.Join()
	m.registry.inFlight = false

	end := min(d.end, m.registry.Len())
	if d.start >= end {
		return
	}
	distSqr := m.registry.DistSqr(d.start, end)
	for i, ds := range distSqr {
		t := m.registry.At(d.start + i)
		obj := t.Object()
		if !obj.Alive() {
			m.stats.StaleSkips++
			continue
		}

		from, changed := t.UpdateLOD(ds, d.farClipSqr)
		m.stats.Updates++
		if m.onUpdate != nil {
			m.onUpdate(obj, ds, d.farClipSqr)
		}
		if changed {
			m.stats.Transitions++
			if m.onTransition != nil {
				m.onTransition(obj, from, t.Tier())
			}
		}
	}
}

// isNil reports whether obj is nil or an interface holding a nil pointer. A typed
// nil handle would panic on its first Alive call during refresh.
func isNil(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// farClipSqr returns the squared far clip distance, 0 if gating is disabled.
func (m *manager) farClipSqr() float32 {
	far := m.farClip
	if far <= 0 {
		far = m.observer.Far()
	}
	if far <= 0 {
		return 0
	}
	return common.Square(far)
}

func (m *manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Len()
}

func (m *manager) Cycles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor.Cycles()
}

func (m *manager) Tier(obj Object) Tier {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.registry.Lookup(obj)
	if t == nil {
		return TierUnset
	}
	return t.Tier()
}

func (m *manager) Observer() Observer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.observer
}

func (m *manager) SetObserver(o Observer) {
	if o == nil {
		panic("lod: SetObserver requires a non-nil Observer")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = o
}

func (m *manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Registered = m.registry.Len()
	return s
}
