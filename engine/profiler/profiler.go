package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
)

// Profiler tracks tick rate, memory and LOD scheduler statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	lastLOD        lod.Stats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often statistics are logged.
//
// Parameters:
//   - d: the logging interval (ignored if <= 0)
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Tick should be called once per engine tick with the summed stats of every LOD manager.
// Logs statistics when the update interval has elapsed: ticks/s, heap usage,
// allocation rate, and LOD updates, transitions, stale skips and reclaims since the
// last report.
//
// Parameters:
//   - stats: cumulative LOD stats
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats lod.Stats) bool {
	p.tickCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	tps := float64(p.tickCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	log.Printf("[Profiler] TPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | Objects: %d | Updates: %d | Transitions: %d | Stale: %d | Cycles: %d | Reclaims: %d",
		tps, allocMB, allocRateMB, stats.Registered,
		stats.Updates-p.lastLOD.Updates,
		stats.Transitions-p.lastLOD.Transitions,
		stats.StaleSkips-p.lastLOD.StaleSkips,
		stats.Cycles-p.lastLOD.Cycles,
		stats.Reclaims-p.lastLOD.Reclaims)

	p.tickCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastLOD = stats
	return true
}
