package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
	"github.com/Carmen-Shannon/oxy-lod/engine/profiler"
)

// engine implements the Engine interface.
// Drives game logic and every registered LOD manager from one fixed-rate tick goroutine.
type engine struct {
	mu *sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	managers map[int]lod.Manager
}

// Engine is the main entry point for the engine.
// It owns the tick loop that advances the LOD managers.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, before the LOD
	// managers tick. Use this for game logic that moves objects or the observer.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddManager registers an LOD manager at the given key.
	// Managers tick in ascending key order.
	//
	// Parameters:
	//   - key: the ordering key
	//   - m: the Manager to register
	AddManager(key int, m lod.Manager)

	// RemoveManager removes the manager at the given key and closes it, flushing its
	// pending dispatch and stopping its worker pool.
	//
	// Parameters:
	//   - key: the key of the manager to remove
	RemoveManager(key int)

	// Manager retrieves the manager registered at the given key.
	// Returns nil if no manager exists at that key.
	//
	// Parameters:
	//   - key: the key of the manager to retrieve
	//
	// Returns:
	//   - lod.Manager: the manager at the key, or nil if not found
	Manager(key int) lod.Manager

	// Managers returns a copy of all registered managers keyed by ordering key.
	//
	// Returns:
	//   - map[int]lod.Manager: a copy of the managers map
	Managers() map[int]lod.Manager

	// Run starts the engine tick loop and blocks until Quit is called.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.RWMutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		managers:         make(map[int]lod.Manager),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
	e.wg.Wait()

	// Apply whatever the last tick dispatched so no evaluation is left in flight.
	for _, m := range e.orderedManagers() {
		m.Flush()
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit
// channel is closed. Recovers from panics and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick runs one engine tick: game logic, then every manager in key order, then the profiler.
func (e *engine) tick(dt float32) {
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	var total lod.Stats
	for _, m := range e.orderedManagers() {
		m.Tick()
		if e.profilingEnabled {
			total = total.Add(m.Stats())
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(total)
	}
}

// orderedManagers returns the registered managers sorted by key.
func (e *engine) orderedManagers() []lod.Manager {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.managers))
	for k := range e.managers {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]lod.Manager, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.managers[k])
	}
	return out
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.RLock()
	running := e.running
	e.mu.RUnlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddManager(key int, m lod.Manager) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.managers[key] = m
}

func (e *engine) RemoveManager(key int) {
	e.mu.Lock()
	m, ok := e.managers[key]
	delete(e.managers, key)
	e.mu.Unlock()

	if ok {
		m.Close()
	}
}

func (e *engine) Manager(key int) lod.Manager {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.managers[key]
}

func (e *engine) Managers() map[int]lod.Manager {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]lod.Manager, len(e.managers))
	for k, v := range e.managers {
		cp[k] = v
	}
	return cp
}
