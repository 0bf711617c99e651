package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithTickCallback registers the game logic callback during construction.
//
// Parameters:
//   - callback: function to call each tick, receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithManager registers an LOD manager at the given key during engine construction.
// Managers tick in ascending key order.
//
// Parameters:
//   - key: the ordering key
//   - m: the Manager to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithManager(key int, m lod.Manager) EngineBuilderOption {
	return func(e *engine) {
		e.managers[key] = m
	}
}
