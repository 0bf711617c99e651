package lod

// DefaultBatchSize is the number of objects processed per tick when no batch size is configured.
const DefaultBatchSize = 50

// BatchCursor partitions the registry into fixed-size windows and advances one window
// per call to Next. Windows are constant in object count, not in cost.
type BatchCursor struct {
	batchIndex int
	batchSize  int
	cycleCount int
}

// NewBatchCursor creates a cursor with the given window width. Non-positive sizes
// fall back to DefaultBatchSize.
//
// Parameters:
//   - batchSize: number of objects per window
//
// Returns:
//   - *BatchCursor: the new cursor
func NewBatchCursor(batchSize int) *BatchCursor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchCursor{batchSize: batchSize}
}

// BatchSize returns the configured window width.
func (c *BatchCursor) BatchSize() int {
	return c.batchSize
}

// BatchIndex returns the index of the window the next call to Next will return.
func (c *BatchCursor) BatchIndex() int {
	return c.batchIndex
}

// Cycles returns the number of completed full passes.
func (c *BatchCursor) Cycles() int {
	return c.cycleCount
}

// Next returns the half-open window [start, end) for this tick and advances the
// cursor. The end is clamped to n; if the population shrank below the current window
// the cursor restarts at window 0. When the window reaches the end of the population
// the cursor wraps and wrapped is true. An empty population returns an empty window
// and does not advance.
//
// Parameters:
//   - n: current registry length
//
// Returns:
//   - start, end: the window bounds
//   - wrapped: true if this window completed a cycle
func (c *BatchCursor) Next(n int) (start, end int, wrapped bool) {
	if n <= 0 {
		return 0, 0, false
	}
	start = c.batchIndex * c.batchSize
	if start >= n {
		c.batchIndex = 0
		start = 0
	}
	end = min(start+c.batchSize, n)
	if end >= n {
		c.batchIndex = 0
		c.cycleCount++
		return start, end, true
	}
	c.batchIndex++
	return start, end, false
}
