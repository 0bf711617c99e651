package lod

// Appearance selects which resource set and shading features a host object renders with.
type Appearance int

const (
	// AppearanceDetailed is the original material with every shading feature enabled.
	AppearanceDetailed Appearance = iota
	// AppearanceReduced is the original material with normal mapping disabled.
	AppearanceReduced
	// AppearanceLightweight is the shared substitute material with reduced vertex cost.
	AppearanceLightweight
)

func (a Appearance) String() string {
	switch a {
	case AppearanceDetailed:
		return "detailed"
	case AppearanceReduced:
		return "reduced"
	case AppearanceLightweight:
		return "lightweight"
	default:
		return "unknown"
	}
}

// Object is the host scene entity tracked by a Manager. The host owns the object's
// lifetime and position; the Manager only reads the position and drives the
// rendering primitives when a tier transition fires.
type Object interface {
	// Position returns the object's live world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Alive reports whether the handle still refers to a live scene object. A dead
	// handle that was never unregistered is skipped rather than treated as a fault.
	//
	// Returns:
	//   - bool: false once the host has destroyed the object
	Alive() bool

	// CastsShadows returns the object's original shadow-casting capability.
	//
	// Returns:
	//   - bool: true if the object casts shadows at full detail
	CastsShadows() bool

	// SetRenderingEnabled turns the object's renderer on or off.
	//
	// Parameters:
	//   - enabled: true to render the object
	SetRenderingEnabled(enabled bool)

	// SetAppearance swaps the active appearance resources.
	//
	// Parameters:
	//   - a: the appearance to activate
	SetAppearance(a Appearance)

	// SetShadowCasting sets the object's current shadow-casting mode.
	//
	// Parameters:
	//   - enabled: true to cast shadows
	SetShadowCasting(enabled bool)

	// Resources returns the object's owned resource handles, or nil if it has none.
	//
	// Returns:
	//   - ResourceSet: the resource set or nil
	Resources() ResourceSet
}

// ResourceSet is the set of non-essential resources (detailed textures, meshes) an
// object can release while it is not rendered.
type ResourceSet interface {
	// Loaded reports whether the resources are currently held.
	Loaded() bool

	// Load acquires the resources. Loading an already loaded set is a no-op.
	//
	// Returns:
	//   - error: error if a resource could not be loaded
	Load() error

	// Unload releases the resources. Unloading an unloaded set is a no-op.
	Unload()
}

// ResourceHost is the host resource system that frees memory backing resources no
// longer referenced. ReclaimUnused must return without waiting for the reclaim to finish.
type ResourceHost interface {
	ReclaimUnused()
}

// Observer is the reference point distances are measured from.
type Observer interface {
	// Position returns the observer's world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Far returns the far clip distance. Values <= 0 disable far-clip visibility gating.
	//
	// Returns:
	//   - float32: far clip distance (not squared)
	Far() float32
}
