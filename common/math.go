package common

import "github.com/go-gl/mathgl/mgl32"

// Planar projects a world-space position onto the horizontal x/z plane.
// The y component is dropped so height never contributes to LOD distance.
//
// Parameters:
//   - x, y, z: world-space position components
//
// Returns:
//   - mgl32.Vec2: the (x, z) projection
func Planar(x, _, z float32) mgl32.Vec2 {
	return mgl32.Vec2{x, z}
}

// DistanceSqr returns the squared length of b - a. No square root is taken, so the
// result must only ever be compared against squared thresholds.
//
// Parameters:
//   - a, b: planar positions
//
// Returns:
//   - float32: |b - a|²
func DistanceSqr(a, b mgl32.Vec2) float32 {
	d := b.Sub(a)
	return d.Dot(d)
}

// Square returns v*v. Used to convert configured distances to the squared form.
func Square(v float32) float32 {
	return v * v
}
