// Package csg implements constructive solid geometry composition over
// implicit.Function nodes: union, intersection, difference, complement,
// and their smooth variants (spec 4.6 table, 4.6 "Smooth min/max", 8 "CSG
// identities").
package csg

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/implicit"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Union is the N-ary CSG union: value(p) = min_i children[i].Value(p).
type Union[T vec3.Real] struct {
	Children []implicit.Function[T]
}

func (u Union[T]) Value(p vec3.Vec[T]) T {
	best := T(math.Inf(1))
	for _, c := range u.Children {
		v := c.Value(p)
		if v < best {
			best = v
		}
	}
	return best
}

// Intersection is the N-ary CSG intersection: value(p) = max_i
// children[i].Value(p).
type Intersection[T vec3.Real] struct {
	Children []implicit.Function[T]
}

func (i Intersection[T]) Value(p vec3.Vec[T]) T {
	best := T(math.Inf(-1))
	for _, c := range i.Children {
		v := c.Value(p)
		if v > best {
			best = v
		}
	}
	return best
}

// Difference is the binary CSG difference A minus B: value(p) = max(A(p),
// -B(p)). Equal to Intersection(A, Complement(B)) (spec 8 CSG identity).
type Difference[T vec3.Real] struct {
	A, B implicit.Function[T]
}

func (d Difference[T]) Value(p vec3.Vec[T]) T {
	a := d.A.Value(p)
	b := -d.B.Value(p)
	if a > b {
		return a
	}
	return b
}

// Complement flips inside and outside: value(p) = -A(p).
type Complement[T vec3.Real] struct {
	A implicit.Function[T]
}

func (c Complement[T]) Value(p vec3.Vec[T]) T {
	return -c.A.Value(p)
}
