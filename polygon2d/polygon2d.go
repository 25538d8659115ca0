// Package polygon2d implements the inside/outside tests used by a DCEL
// face's 2D projection (spec "Polygon 2D projection"): crossing number,
// winding number, and subtended angle, all operating on the same 2D vertex
// loop.
package polygon2d

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cutcellgeo/ebgeometry/vec2"
)

// Algorithm selects which inside/outside test Inside runs.
type Algorithm int

const (
	// CrossingNumber counts rightward-ray edge crossings; inside iff odd.
	// This is the default (spec 4.5).
	CrossingNumber Algorithm = iota
	// WindingNumber sums signed edge crossings via a left-of test; inside
	// iff the total is nonzero.
	WindingNumber
	// SubtendedAngle sums the signed angle each edge subtends at the test
	// point; inside iff the total rounds to +/-2*pi.
	SubtendedAngle
)

// Projection is a face's vertex loop projected into 2D, cached at mesh
// reconcile time.
type Projection[T vec2.Real] struct {
	Vertices []vec2.Vec[T]
}

// Inside reports whether p lies within proj's polygon under the selected
// algorithm.
func Inside[T vec2.Real](proj Projection[T], p vec2.Vec[T], algo Algorithm) bool {
	switch algo {
	case WindingNumber:
		return windingNumber(proj.Vertices, p) != 0
	case SubtendedAngle:
		return subtendedAngle(proj.Vertices, p)
	default:
		return crossingNumber(proj.Vertices, p)
	}
}

// crossingNumber implements the standard half-open (y1 <= y < y2) ray-cast
// test: count edges crossed by a rightward ray from p; inside iff odd.
func crossingNumber[T vec2.Real](verts []vec2.Vec[T], p vec2.Vec[T]) bool {
	n := len(verts)
	inside := false
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		crossesY := (a.Y <= p.Y && p.Y < b.Y) || (b.Y <= p.Y && p.Y < a.Y)
		if !crossesY {
			continue
		}
		// x coordinate where the edge crosses the horizontal line y = p.Y
		t := (p.Y - a.Y) / (b.Y - a.Y)
		xCross := a.X + t*(b.X-a.X)
		if p.X < xCross {
			inside = !inside
		}
	}
	return inside
}

// windingNumber sums signed edge crossings via a left-of test; the polygon
// contains p iff the total winding number is nonzero.
func windingNumber[T vec2.Real](verts []vec2.Vec[T], p vec2.Vec[T]) int {
	n := len(verts)
	wn := 0
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		if a.Y <= p.Y {
			if b.Y > p.Y && isLeft(a, b, p) > 0 {
				wn++
			}
		} else {
			if b.Y <= p.Y && isLeft(a, b, p) < 0 {
				wn--
			}
		}
	}
	return wn
}

// isLeft returns >0 if p is left of the line a->b, <0 if right, 0 if on it.
func isLeft[T vec2.Real](a, b, p vec2.Vec[T]) T {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// subtendedAngle sums the signed angle each polygon edge subtends at p,
// normalized to [-pi, pi]; inside iff the absolute total rounds to 2*pi.
func subtendedAngle[T vec2.Real](verts []vec2.Vec[T], p vec2.Vec[T]) bool {
	n := len(verts)
	total := 0.0
	for i := 0; i < n; i++ {
		a := verts[i].Sub(p)
		b := verts[(i+1)%n].Sub(p)
		angle := math.Atan2(float64(a.Cross(b)), float64(a.Dot(b)))
		total += angle
	}
	return floats.EqualWithinAbs(math.Abs(total), 2*math.Pi, 1e-6*float64(n+1))
}
