package bv

import (
	"fmt"
	"math"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Sphere is a bounding sphere (Center, Radius).
type Sphere[T vec3.Real] struct {
	Center vec3.Vec[T]
	Radius T
}

// ritterInflation is the final radius inflation Ritter's algorithm applies
// for numerical safety, so that points exactly on the computed boundary are
// still reliably classified as enclosed.
const ritterInflation = 1.01

// EnclosePoints builds a bounding sphere over pts using Ritter's two-pass
// algorithm: find an approximate diameter from an extremal pair, then grow
// the sphere to cover any point still outside it.
func EnclosePoints[T vec3.Real](pts []vec3.Vec[T]) Sphere[T] {
	if len(pts) == 0 {
		return Sphere[T]{}
	}
	if len(pts) == 1 {
		return Sphere[T]{Center: pts[0], Radius: 0}
	}

	// Pass 1: find an extremal pair by walking axis extremes.
	minPt, maxPt := [3]vec3.Vec[T]{}, [3]vec3.Vec[T]{}
	minVal, maxVal := [3]T{}, [3]T{}
	for d := 0; d < 3; d++ {
		minVal[d] = T(math.Inf(1))
		maxVal[d] = T(math.Inf(-1))
	}
	for _, p := range pts {
		for d := 0; d < 3; d++ {
			c := p.Component(d)
			if c < minVal[d] {
				minVal[d] = c
				minPt[d] = p
			}
			if c > maxVal[d] {
				maxVal[d] = c
				maxPt[d] = p
			}
		}
	}

	// Pick the axis with the largest extremal-pair separation.
	bestD := 0
	bestSpan := T(-1)
	for d := 0; d < 3; d++ {
		span := maxPt[d].Sub(minPt[d]).LengthSquared()
		if span > bestSpan {
			bestSpan = span
			bestD = d
		}
	}

	center := minPt[bestD].Add(maxPt[bestD]).Mul(0.5)
	radius := maxPt[bestD].Sub(minPt[bestD]).Length() * 0.5

	// Pass 2: grow the sphere to cover any remaining outlier.
	for _, p := range pts {
		d := p.Sub(center).Length()
		if d > radius {
			newRadius := (radius + d) * 0.5
			k := (newRadius - radius) / d
			center = center.Add(p.Sub(center).Mul(k))
			radius = newRadius
		}
	}

	return Sphere[T]{Center: center, Radius: radius * ritterInflation}
}

// EncloseSpheres builds a bounding sphere over a union of spheres by
// reducing to Ritter's algorithm over the 8 AABB corners of each input
// sphere (spec "Bounding sphere").
func EncloseSpheres[T vec3.Real](spheres []Sphere[T]) Sphere[T] {
	var pts []vec3.Vec[T]
	for _, s := range spheres {
		half := vec3.New(s.Radius, s.Radius, s.Radius)
		box := AABB[T]{Lo: s.Center.Sub(half), Hi: s.Center.Add(half)}
		corners := box.Corners()
		pts = append(pts, corners[:]...)
	}
	return EnclosePoints(pts)
}

// Union implements Bound[T]; other must also be a Sphere[T].
func (s Sphere[T]) Union(other Bound[T]) Bound[T] {
	o, ok := other.(Sphere[T])
	if !ok {
		panic(fmt.Sprintf("bv: Sphere.Union given incompatible bound type %T", other))
	}
	return EncloseSpheres([]Sphere[T]{s, o})
}

// Centroid returns the sphere's center.
func (s Sphere[T]) Centroid() vec3.Vec[T] {
	return s.Center
}

// Volume returns 4/3 * pi * r^3.
func (s Sphere[T]) Volume() T {
	r := float64(s.Radius)
	return T(4.0 / 3.0 * math.Pi * r * r * r)
}

// Area returns the sphere's surface area, 4*pi*r^2.
func (s Sphere[T]) Area() T {
	r := float64(s.Radius)
	return T(4.0 * math.Pi * r * r)
}

// Intersects reports whether s and other (which must also be a Sphere[T])
// overlap.
func (s Sphere[T]) Intersects(other Bound[T]) bool {
	o, ok := other.(Sphere[T])
	if !ok {
		panic(fmt.Sprintf("bv: Sphere.Intersects given incompatible bound type %T", other))
	}
	d := s.Center.Sub(o.Center).Length()
	return d <= s.Radius+o.Radius
}

// Distance returns the Euclidean distance from p to the sphere's surface:
// zero if p is inside.
func (s Sphere[T]) Distance(p vec3.Vec[T]) T {
	d := p.Sub(s.Center).Length() - s.Radius
	if d < 0 {
		return 0
	}
	return d
}

// OverlappingVolume returns the lens volume of the intersection of s and
// other (which must also be a Sphere[T]).
func (s Sphere[T]) OverlappingVolume(other Bound[T]) T {
	o, ok := other.(Sphere[T])
	if !ok {
		panic(fmt.Sprintf("bv: Sphere.OverlappingVolume given incompatible bound type %T", other))
	}
	d := float64(s.Center.Sub(o.Center).Length())
	r1, r2 := float64(s.Radius), float64(o.Radius)
	if d >= r1+r2 {
		return 0
	}
	if d <= math.Abs(r1-r2) {
		// One sphere fully contains the other.
		rMin := math.Min(r1, r2)
		return T(4.0 / 3.0 * math.Pi * rMin * rMin * rMin)
	}
	// Closed-form spherical-cap lens volume.
	num := math.Pi * math.Pow(r1+r2-d, 2) *
		(d*d + 2*d*r2 - 3*r2*r2 + 2*d*r1 + 6*r1*r2 - 3*r1*r1)
	return T(num / (12 * d))
}
