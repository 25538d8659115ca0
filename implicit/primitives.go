package implicit

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Sphere is the SDF of a sphere centered at Center with radius Radius
// (spec 4.6 table).
type Sphere[T vec3.Real] struct {
	Center vec3.Vec[T]
	Radius T
}

func (s Sphere[T]) Value(p vec3.Vec[T]) T {
	return p.Sub(s.Center).Length() - s.Radius
}

// Box is the SDF of an axis-aligned box from Lo to Hi (spec 4.6 table,
// "standard box SDF").
type Box[T vec3.Real] struct {
	Lo, Hi vec3.Vec[T]
}

func (b Box[T]) Value(p vec3.Vec[T]) T {
	center := b.Lo.Add(b.Hi).Mul(0.5)
	half := b.Hi.Sub(b.Lo).Mul(0.5)
	d := abs3(p.Sub(center)).Sub(half)

	outside := vec3.New(maxScalar(d.X, 0), maxScalar(d.Y, 0), maxScalar(d.Z, 0)).Length()
	inside := minScalar(maxScalar(d.X, maxScalar(d.Y, d.Z)), 0)
	return outside + inside
}

// Plane is the SDF of an infinite plane through P0 with (outward) normal N.
type Plane[T vec3.Real] struct {
	P0, N vec3.Vec[T]
}

func (pl Plane[T]) Value(p vec3.Vec[T]) T {
	return pl.N.Dot(p.Sub(pl.P0))
}

// Torus is the SDF of a torus centered at the origin of its local frame,
// lying in the XZ plane (axis along Y), with major radius MajorR and minor (tube) radius
// MinorR. Closed form per the standard torus distance field (not present
// in original_source, which ships only Sphere; see DESIGN.md).
type Torus[T vec3.Real] struct {
	MajorR, MinorR T
}

func (t Torus[T]) Value(p vec3.Vec[T]) T {
	qx := math.Hypot(float64(p.X), float64(p.Z)) - float64(t.MajorR)
	qy := float64(p.Y)
	return T(math.Hypot(qx, qy)) - t.MinorR
}

// Cylinder is the SDF of a capped cylinder of radius R and half-height H,
// axis along Y, centered at the origin of its local frame.
type Cylinder[T vec3.Real] struct {
	R, H T
}

func (c Cylinder[T]) Value(p vec3.Vec[T]) T {
	dRadial := T(math.Hypot(float64(p.X), float64(p.Z))) - c.R
	dHeight := absT(p.Y) - c.H
	outside := vec3.New(maxScalar(dRadial, 0), maxScalar(dHeight, 0), T(0)).Length()
	inside := minScalar(maxScalar(dRadial, dHeight), 0)
	return outside + inside
}

// Cone is the SDF of a capped cone with apex at the origin opening downward
// along -Y, with half-angle Angle (radians) and height Height. Closed form
// per the standard exact capped-cone distance field (not present in
// original_source, which ships only Sphere; see DESIGN.md).
type Cone[T vec3.Real] struct {
	Angle, Height T
}

func (c Cone[T]) Value(p vec3.Vec[T]) T {
	sinA := float64(T(math.Sin(float64(c.Angle))))
	cosA := float64(T(math.Cos(float64(c.Angle))))
	h := float64(c.Height)

	qx := h * sinA / cosA
	qy := -h

	wx := math.Hypot(float64(p.X), float64(p.Z))
	wy := float64(p.Y)

	qDotQ := qx*qx + qy*qy
	wDotQ := wx*qx + wy*qy
	t := clampF(wDotQ/qDotQ, 0, 1)
	ax, ay := wx-qx*t, wy-qy*t

	tb := clampF(wx/qx, 0, 1)
	bx, by := wx-qx*tb, wy-qy

	k := 1.0
	if qy < 0 {
		k = -1.0
	}
	d := math.Min(ax*ax+ay*ay, bx*bx+by*by)
	s := math.Max(k*(wx*qy-wy*qx), k*(wy-qy))

	sign := 1.0
	if s < 0 {
		sign = -1.0
	}
	return T(math.Sqrt(d) * sign)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Capsule is the SDF of a capsule (swept sphere) between A and B with
// radius R.
type Capsule[T vec3.Real] struct {
	A, B vec3.Vec[T]
	R    T
}

func (c Capsule[T]) Value(p vec3.Vec[T]) T {
	ab := c.B.Sub(c.A)
	denom := ab.LengthSquared()
	var t T
	if denom > 0 {
		t = clampT(p.Sub(c.A).Dot(ab)/denom, T(0), T(1))
	}
	closest := c.A.Add(ab.Mul(t))
	return p.Sub(closest).Length() - c.R
}

func abs3[T vec3.Real](v vec3.Vec[T]) vec3.Vec[T] {
	return vec3.New(absT(v.X), absT(v.Y), absT(v.Z))
}

func absT[T vec3.Real](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

func maxScalar[T vec3.Real](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func minScalar[T vec3.Real](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func clampT[T vec3.Real](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
