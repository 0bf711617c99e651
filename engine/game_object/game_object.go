package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
)

type gameObject struct {
	id uint64

	mu       *sync.RWMutex
	position [3]float32

	enabled       atomic.Bool
	destroyed     atomic.Bool
	castShadows   bool // original capability, fixed at construction
	shadowCasting atomic.Bool
	appearance    atomic.Int32

	resources lod.ResourceSet
}

// GameObject defines the interface for a scene entity whose rendering detail is driven
// by an LOD Manager. The scene owns its position and lifetime; the LOD primitives
// only change how it is drawn.
type GameObject interface {
	lod.Object

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetPosition moves the object in world space.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// Enabled returns whether the object's renderer is enabled.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// ShadowCasting returns the object's current shadow-casting mode.
	//
	// Returns:
	//   - bool: true if currently casting shadows
	ShadowCasting() bool

	// Appearance returns the active appearance.
	//
	// Returns:
	//   - lod.Appearance: the appearance currently rendered
	Appearance() lod.Appearance

	// Destroy marks the object dead and releases its resources. A destroyed object
	// that is still registered with a Manager is skipped on every tick.
	Destroy()
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options. Objects
// start enabled, with the detailed appearance and shadows matching their capability.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:          &sync.RWMutex{},
		castShadows: true,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.shadowCasting.Store(obj.castShadows)
	obj.appearance.Store(int32(lod.AppearanceDetailed))
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) Alive() bool {
	return !g.destroyed.Load()
}

func (g *gameObject) CastsShadows() bool {
	return g.castShadows
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetRenderingEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) ShadowCasting() bool {
	return g.shadowCasting.Load()
}

func (g *gameObject) SetShadowCasting(enabled bool) {
	g.shadowCasting.Store(enabled)
}

func (g *gameObject) Appearance() lod.Appearance {
	return lod.Appearance(g.appearance.Load())
}

func (g *gameObject) SetAppearance(a lod.Appearance) {
	g.appearance.Store(int32(a))
}

func (g *gameObject) Resources() lod.ResourceSet {
	return g.resources
}

func (g *gameObject) Destroy() {
	if g.destroyed.Swap(true) {
		return
	}
	g.enabled.Store(false)
	if c, ok := g.resources.(interface{ Close() }); ok {
		c.Close()
	}
}
