package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Affine maps p to (A*p + B) where A is the 2x2 matrix
// [[XX, XY], [YX, YY]] and B the translation.
type Affine struct {
	XX, XY float64
	YX, YY float64
	B      r2.Vec
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{XX: 1, YY: 1}
}

// ScaleTranslate returns the uniform zoom followed by a pan to origin,
// the canvas mapping used by the viewers.
func ScaleTranslate(zoom float64, origin r2.Vec) Affine {
	return Affine{XX: zoom, YY: zoom, B: origin}
}

// Apply maps p through the transform.
func (a Affine) Apply(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.XX*p.X + a.XY*p.Y + a.B.X,
		Y: a.YX*p.X + a.YY*p.Y + a.B.Y,
	}
}

// Det returns the determinant of the linear part.
func (a Affine) Det() float64 {
	return a.XX*a.YY - a.XY*a.YX
}

// Scale returns the mean linear scale factor, used to size radii.
func (a Affine) Scale() float64 {
	return math.Sqrt(math.Abs(a.Det()))
}

// Invert returns the inverse transform. A singular transform yields
// ErrSingular and the identity.
func (a Affine) Invert() (Affine, error) {
	det := a.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), ErrSingular
	}
	inv := Affine{
		XX: a.YY / det,
		XY: -a.XY / det,
		YX: -a.YX / det,
		YY: a.XX / det,
	}
	inv.B = r2.Vec{
		X: -(inv.XX*a.B.X + inv.XY*a.B.Y),
		Y: -(inv.YX*a.B.X + inv.YY*a.B.Y),
	}
	return inv, nil
}

// Then returns the transform that applies a first and b second.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		XX: b.XX*a.XX + b.XY*a.YX,
		XY: b.XX*a.XY + b.XY*a.YY,
		YX: b.YX*a.XX + b.YY*a.YX,
		YY: b.YX*a.XY + b.YY*a.YY,
		B:  b.Apply(a.B),
	}
}

// IsFinite reports whether v has no NaN or Inf component.
func IsFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
