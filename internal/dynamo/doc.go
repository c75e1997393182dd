// Package dynamo provides the shared primitives used by the granular
// simulation packages.
//
// The package is intentionally small:
//
//   - [Affine]: 2-D affine map used to move contour and particle geometry
//     from world space into an output space (screen, SVG, braille canvas)
//   - [ParallelFor]: chunked data-parallel loop over [0, n)
//   - [SimError] and the sentinel errors in errors.go
//
// # Example
//
//	view := dynamo.ScaleTranslate(2, r2.Vec{X: 320, Y: 240})
//	screen := view.Apply(r2.Vec{X: 10, Y: -4})
//	inv, _ := view.Invert()
//	world := inv.Apply(screen)
//
// # Thread Safety
//
// [Affine] is a value type and safe to share. [ParallelFor] only gives
// disjoint index ranges to its workers; callers must keep their writes
// inside the range they are handed.
package dynamo
