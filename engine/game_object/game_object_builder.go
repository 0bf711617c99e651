package game_object

import "github.com/Carmen-Shannon/oxy-lod/engine/lod"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject's renderer starts enabled.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithCastShadows sets the object's original shadow-casting capability. Defaults to true.
//
// Parameters:
//   - cast: true if the object casts shadows at full detail
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow capability
func WithCastShadows(cast bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castShadows = cast
	}
}

// WithResources attaches the resource set the object unloads while disabled.
// Sets that also implement Close() are closed on Destroy.
//
// Parameters:
//   - rs: the resource set
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the resources
func WithResources(rs lod.ResourceSet) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.resources = rs
	}
}
