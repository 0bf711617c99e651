package lod

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-lod/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Registry owns the insertion-ordered set of tracked objects and two index-aligned
// mirror buffers: planar positions and squared distances. The mirrors are reallocated
// whenever the population changes and are never resized in place.
//
// Registry is not safe for concurrent use; the Manager serializes access to it.
type Registry struct {
	objects []*TrackedObject
	index   map[Object]int

	positions []mgl32.Vec2
	distSqr   []float32

	// inFlight is set while a dispatch holds views into the mirror buffers.
	inFlight bool
}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - *Registry: the new registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[Object]int),
	}
}

// Len returns the number of tracked objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Contains reports whether obj is tracked.
func (r *Registry) Contains(obj Object) bool {
	_, ok := r.index[obj]
	return ok
}

// At returns the tracked object at index i.
func (r *Registry) At(i int) *TrackedObject {
	return r.objects[i]
}

// Lookup returns the tracked object for obj, or nil if it is not registered.
func (r *Registry) Lookup(obj Object) *TrackedObject {
	i, ok := r.index[obj]
	if !ok {
		return nil
	}
	return r.objects[i]
}

// Add appends obj and reallocates the mirror buffers. Adding an already tracked
// object is a no-op. Object handles must be comparable (typically pointers).
//
// Parameters:
//   - obj: the host object
//   - thresholds: validated squared-distance thresholds
//   - enabled: whether LOD switching is enabled for the object
//
// Returns:
//   - bool: true if the object was added
func (r *Registry) Add(obj Object, thresholds Thresholds, enabled bool) bool {
	if _, ok := r.index[obj]; ok {
		return false
	}
	r.assertIdle()
	r.index[obj] = len(r.objects)
	r.objects = append(r.objects, newTrackedObject(obj, thresholds, enabled))
	r.reallocate(-1)
	return true
}

// Remove deletes obj, preserving the order of the remaining objects, and reallocates
// the mirror buffers. Removing an untracked object is a no-op.
//
// Parameters:
//   - obj: the host object
//
// Returns:
//   - bool: true if the object was removed
func (r *Registry) Remove(obj Object) bool {
	i, ok := r.index[obj]
	if !ok {
		return false
	}
	r.assertIdle()
	r.objects = slices.Delete(r.objects, i, i+1)
	delete(r.index, obj)
	for j := i; j < len(r.objects); j++ {
		r.index[r.objects[j].obj] = j
	}
	r.reallocate(i)
	return true
}

// reallocate replaces both mirror buffers with new ones sized to the population.
// Surviving slots keep their last-known values; removed is the index dropped from the
// old buffers, or -1 for an append.
func (r *Registry) reallocate(removed int) {
	n := len(r.objects)
	positions := make([]mgl32.Vec2, n)
	distSqr := make([]float32, n)
	if removed < 0 {
		copy(positions, r.positions)
		copy(distSqr, r.distSqr)
	} else {
		copy(positions, r.positions[:removed])
		copy(positions[removed:], r.positions[removed+1:])
		copy(distSqr, r.distSqr[:removed])
		copy(distSqr[removed:], r.distSqr[removed+1:])
	}
	r.positions = positions
	r.distSqr = distSqr
	r.checkInvariant()
}

// RefreshPositions copies the planar projection of each live object's position into
// the mirror buffer for the half-open range [start, end). Dead handles keep their
// last-known value.
//
// Parameters:
//   - start: first index (inclusive)
//   - end: last index (exclusive), clamped to Len
//
// Returns:
//   - int: number of stale objects skipped
func (r *Registry) RefreshPositions(start, end int) int {
	r.checkInvariant()
	end = min(end, len(r.objects))
	stale := 0
	for i := start; i < end; i++ {
		obj := r.objects[i].obj
		if obj == nil || !obj.Alive() {
			stale++
			continue
		}
		r.positions[i] = common.Planar(obj.Position())
	}
	return stale
}

// Positions returns a view of the position mirror for [start, end).
func (r *Registry) Positions(start, end int) []mgl32.Vec2 {
	r.checkInvariant()
	return r.positions[start:end]
}

// DistSqr returns a view of the squared-distance mirror for [start, end).
func (r *Registry) DistSqr(start, end int) []float32 {
	r.checkInvariant()
	return r.distSqr[start:end]
}

// assertIdle panics if a dispatch still holds views into the mirror buffers.
func (r *Registry) assertIdle() {
	if r.inFlight {
		panic("lod: registry resized while a dispatch is in flight")
	}
}

// checkInvariant panics if the mirror buffers are out of step with the population.
func (r *Registry) checkInvariant() {
	if len(r.positions) != len(r.objects) || len(r.distSqr) != len(r.objects) {
		panic(fmt.Sprintf("lod: mirror buffer length mismatch (objects=%d positions=%d distSqr=%d)",
			len(r.objects), len(r.positions), len(r.distSqr)))
	}
}
