package bv

import (
	"fmt"
	"math"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

// AABB is an axis-aligned bounding box (Lo, Hi) with Lo[d] <= Hi[d] for
// every axis d.
type AABB[T vec3.Real] struct {
	Lo, Hi vec3.Vec[T]
}

// EncloseAABBPoints returns the smallest AABB enclosing every point in pts.
// An empty slice returns a degenerate (zero) box.
func EncloseAABBPoints[T vec3.Real](pts []vec3.Vec[T]) AABB[T] {
	if len(pts) == 0 {
		return AABB[T]{}
	}
	lo, hi := vec3.Min[T](), vec3.Max[T]()
	for _, p := range pts {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return AABB[T]{Lo: lo, Hi: hi}
}

// EncloseBounds returns the union AABB of every box in boxes.
func EncloseBounds[T vec3.Real](boxes []AABB[T]) AABB[T] {
	if len(boxes) == 0 {
		return AABB[T]{}
	}
	lo, hi := vec3.Min[T](), vec3.Max[T]()
	for _, b := range boxes {
		lo = lo.Min(b.Lo)
		hi = hi.Max(b.Hi)
	}
	return AABB[T]{Lo: lo, Hi: hi}
}

// UnionAABB returns the smallest AABB enclosing both a and b.
func (a AABB[T]) UnionAABB(b AABB[T]) AABB[T] {
	return AABB[T]{Lo: a.Lo.Min(b.Lo), Hi: a.Hi.Max(b.Hi)}
}

// Union implements Bound[T]; other must also be an AABB[T].
func (a AABB[T]) Union(other Bound[T]) Bound[T] {
	b, ok := other.(AABB[T])
	if !ok {
		panic(fmt.Sprintf("bv: AABB.Union given incompatible bound type %T", other))
	}
	return a.UnionAABB(b)
}

// Contains reports whether p lies within the closed box.
func (a AABB[T]) Contains(p vec3.Vec[T]) bool {
	return p.X >= a.Lo.X && p.X <= a.Hi.X &&
		p.Y >= a.Lo.Y && p.Y <= a.Hi.Y &&
		p.Z >= a.Lo.Z && p.Z <= a.Hi.Z
}

// Centroid returns the box's geometric center.
func (a AABB[T]) Centroid() vec3.Vec[T] {
	return a.Lo.Add(a.Hi).Mul(0.5)
}

// Volume returns the product of the per-axis extents.
func (a AABB[T]) Volume() T {
	d := a.Hi.Sub(a.Lo)
	return d.X * d.Y * d.Z
}

// Area returns the total surface area of the box.
func (a AABB[T]) Area() T {
	d := a.Hi.Sub(a.Lo)
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Intersects reports whether a and other (which must also be an AABB[T] or
// an *AABB[T]) overlap, including touching at a boundary.
func (a AABB[T]) Intersects(other Bound[T]) bool {
	b, ok := other.(AABB[T])
	if !ok {
		if bp, ok := other.(*AABB[T]); ok {
			b = *bp
		} else {
			panic(fmt.Sprintf("bv: AABB.Intersects given incompatible bound type %T", other))
		}
	}
	return a.Lo.X <= b.Hi.X && a.Hi.X >= b.Lo.X &&
		a.Lo.Y <= b.Hi.Y && a.Hi.Y >= b.Lo.Y &&
		a.Lo.Z <= b.Hi.Z && a.Hi.Z >= b.Lo.Z
}

// Distance returns the Euclidean distance from p to the box: zero if p is
// inside, otherwise computed by clamping p to the box on each axis and
// measuring the distance to the clamped point.
func (a AABB[T]) Distance(p vec3.Vec[T]) T {
	dx := axisGap(p.X, a.Lo.X, a.Hi.X)
	dy := axisGap(p.Y, a.Lo.Y, a.Hi.Y)
	dz := axisGap(p.Z, a.Lo.Z, a.Hi.Z)
	return T(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

func axisGap[T vec3.Real](x, lo, hi T) T {
	if x < lo {
		return lo - x
	}
	if x > hi {
		return x - hi
	}
	return 0
}

// OverlappingVolume returns the volume of the intersection of a and other
// (which must also be an AABB[T]): the product of the per-axis clamped
// overlaps.
func (a AABB[T]) OverlappingVolume(other Bound[T]) T {
	b, ok := other.(AABB[T])
	if !ok {
		panic(fmt.Sprintf("bv: AABB.OverlappingVolume given incompatible bound type %T", other))
	}
	ox := overlap1D(a.Lo.X, a.Hi.X, b.Lo.X, b.Hi.X)
	oy := overlap1D(a.Lo.Y, a.Hi.Y, b.Lo.Y, b.Hi.Y)
	oz := overlap1D(a.Lo.Z, a.Hi.Z, b.Lo.Z, b.Hi.Z)
	return ox * oy * oz
}

func overlap1D[T vec3.Real](aLo, aHi, bLo, bHi T) T {
	lo := aLo
	if bLo > lo {
		lo = bLo
	}
	hi := aHi
	if bHi < hi {
		hi = bHi
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Corners returns the 8 corners of the box, used by EncloseSpheres to
// reduce a sphere union to a Ritter fit over AABB corners.
func (a AABB[T]) Corners() [8]vec3.Vec[T] {
	return [8]vec3.Vec[T]{
		{a.Lo.X, a.Lo.Y, a.Lo.Z},
		{a.Hi.X, a.Lo.Y, a.Lo.Z},
		{a.Lo.X, a.Hi.Y, a.Lo.Z},
		{a.Hi.X, a.Hi.Y, a.Lo.Z},
		{a.Lo.X, a.Lo.Y, a.Hi.Z},
		{a.Hi.X, a.Lo.Y, a.Hi.Z},
		{a.Lo.X, a.Hi.Y, a.Hi.Z},
		{a.Hi.X, a.Hi.Y, a.Hi.Z},
	}
}
