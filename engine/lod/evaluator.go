package lod

import (
	"github.com/Carmen-Shannon/oxy-lod/common"
	"github.com/go-gl/mathgl/mgl32"
)

// EvaluateDistances writes the squared planar distance from observer to positions[i]
// into out[i] for every index. Indices are independent, so disjoint sub-ranges may be
// evaluated concurrently. Panics if the slices differ in length.
//
// Parameters:
//   - observer: planar observer position
//   - positions: read-only window of the position mirror
//   - out: writable window of the squared-distance mirror
func EvaluateDistances(observer mgl32.Vec2, positions []mgl32.Vec2, out []float32) {
	if len(positions) != len(out) {
		panic("lod: distance evaluator window length mismatch")
	}
	for i, p := range positions {
		out[i] = common.DistanceSqr(observer, p)
	}
}
