package lod

// ManagerBuilderOption is a functional option for configuring a Manager.
// Use the With* functions to create options.
type ManagerBuilderOption func(m *manager)

// WithBatchSize sets the number of objects processed per tick. Defaults to
// DefaultBatchSize (50). Values <= 0 keep the default.
//
// Parameters:
//   - n: objects per window
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithBatchSize(n int) ManagerBuilderOption {
	return func(m *manager) {
		if n > 0 {
			m.batchSize = n
		}
	}
}

// WithCyclesBetweenReclaim sets how many completed cycles pass between bulk resource
// reclaims. Defaults to DefaultCyclesBetweenReclaim (5). Values <= 0 keep the default.
//
// Parameters:
//   - n: cycles per reclaim
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithCyclesBetweenReclaim(n int) ManagerBuilderOption {
	return func(m *manager) {
		if n > 0 {
			m.cyclesBetweenReclaim = n
		}
	}
}

// WithResourceHost sets the resource system that receives bulk reclaim requests.
// Without one, reclaims are still counted but go nowhere.
//
// Parameters:
//   - host: the resource system
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithResourceHost(host ResourceHost) ManagerBuilderOption {
	return func(m *manager) {
		m.resourceHost = host
	}
}

// WithWorkers sets the number of pool goroutines used by the distance evaluator.
// Defaults to runtime.NumCPU()-1. Ignored when WithParallelMap is also given.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithWorkers(n int) ManagerBuilderOption {
	return func(m *manager) {
		if n < 1 {
			n = 1
		}
		m.workers = n
	}
}

// WithParallelMap injects the execution engine used for distance evaluation, for
// example SerialMap{} to keep every dispatch on the tick goroutine.
//
// Parameters:
//   - p: the parallel map capability
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithParallelMap(p ParallelMap) ManagerBuilderOption {
	return func(m *manager) {
		m.pmap = p
	}
}

// WithPipelining selects between the two-tick pipeline (default) and a synchronous
// mode in which every Tick joins and applies its own dispatch before returning.
//
// Parameters:
//   - enabled: true to observe results one tick late without blocking mid-tick
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithPipelining(enabled bool) ManagerBuilderOption {
	return func(m *manager) {
		m.pipelined = enabled
	}
}

// WithFarClip overrides the observer's far plane for visibility gating.
//
// Parameters:
//   - far: far clip distance (not squared), <= 0 to use the observer's Far
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithFarClip(far float32) ManagerBuilderOption {
	return func(m *manager) {
		m.farClip = far
	}
}

// WithUpdateCallback registers a hook invoked once for every object update the
// scheduler applies. The hook runs on the ticking goroutine with the manager locked
// and must not call back into the Manager.
//
// Parameters:
//   - fn: receives the object, its squared distance and the squared far clip
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithUpdateCallback(fn func(obj Object, distSqr, farClipSqr float32)) ManagerBuilderOption {
	return func(m *manager) {
		m.onUpdate = fn
	}
}

// WithTransitionCallback registers a hook invoked whenever an object changes tier.
// Same locking rules as WithUpdateCallback.
//
// Parameters:
//   - fn: receives the object and its previous and new tier
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithTransitionCallback(fn func(obj Object, from, to Tier)) ManagerBuilderOption {
	return func(m *manager) {
		m.onTransition = fn
	}
}
