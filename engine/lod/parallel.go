package lod

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// minGrain is the smallest sub-range handed to a single worker task.
const minGrain = 16

// Handle tracks one asynchronous Map invocation.
type Handle interface {
	// Join blocks until every sub-range of the Map has completed. Safe to call more than once.
	Join()
}

// ParallelMap runs fn over [0, n) split into disjoint sub-ranges, possibly on
// several workers, and returns without waiting for completion.
type ParallelMap interface {
	// Map schedules fn over [0, n).
	//
	// Parameters:
	//   - n: length of the range
	//   - fn: called with disjoint half-open sub-ranges [lo, hi) covering [0, n)
	//
	// Returns:
	//   - Handle: joins the scheduled work
	Map(n int, fn func(lo, hi int)) Handle
}

// SerialMap runs the whole range inline on the caller's goroutine.
type SerialMap struct{}

var _ ParallelMap = SerialMap{}

type doneHandle struct{}

func (doneHandle) Join() {}

// Map runs fn(0, n) before returning.
func (SerialMap) Map(n int, fn func(lo, hi int)) Handle {
	if n > 0 {
		fn(0, n)
	}
	return doneHandle{}
}

// poolMap fans sub-ranges out to a persistent worker pool. Workers are reused across
// ticks so a dispatch does not pay goroutine spawn cost.
type poolMap struct {
	pool    worker.DynamicWorkerPool
	workers int
}

var _ ParallelMap = &poolMap{}

type poolHandle struct {
	wg *sync.WaitGroup
}

func (h poolHandle) Join() {
	h.wg.Wait()
}

// NewPoolMap creates a ParallelMap backed by a bounded worker pool.
//
// Parameters:
//   - workers: number of pool goroutines, <= 0 for runtime.NumCPU()-1 (minimum 1)
//
// Returns:
//   - ParallelMap: the pool-backed map
func NewPoolMap(workers int) ParallelMap {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &poolMap{
		// Queue size leaves room for a few dispatches worth of chunks.
		pool:    worker.NewDynamicWorkerPool(workers, workers*8, 1*time.Second),
		workers: workers,
	}
}

// Close stops the pool's workers. Every dispatched Map must be joined first; the
// map must not be used afterwards.
func (p *poolMap) Close() {
	p.pool.Stop()
}

// Map splits [0, n) into at most one chunk per worker, each at least minGrain long,
// and submits every chunk as a pool task. A WaitGroup is the completion barrier since
// the pool's own Wait blocks until workers idle out.
func (p *poolMap) Map(n int, fn func(lo, hi int)) Handle {
	wg := &sync.WaitGroup{}
	if n <= 0 {
		return poolHandle{wg: wg}
	}

	chunks := min(p.workers, max(n/minGrain, 1))
	size := (n + chunks - 1) / chunks
	id := 0
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		wg.Add(1)
		loCap, hiCap := lo, hi
		p.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(loCap, hiCap)
				return nil, nil
			},
		})
		id++
	}
	return poolHandle{wg: wg}
}
