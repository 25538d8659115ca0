// Package octree implements the adaptive bounding-volume fitters of spec
// 4.8: FitAABB and FitSphere recursively subdivide a region into octants
// around an implicit function's zero level set, narrowing the bound to
// just the octants whose cube could contain a sign change, until either a
// target cell size or a maximum depth is reached.
package octree

import (
	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/implicit"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Params controls the octree subdivision's termination and pruning margin.
type Params[T vec3.Real] struct {
	MaxDepth  int
	MinExtent T // stop subdividing a cube once its side length is <= MinExtent
	Safety    T // widen the Lipschitz-1 pruning test by a factor of (1+Safety)
}

// FitAABB narrows lo/hi around f's zero level set by recursively splitting
// into 8 octants and keeping only those whose cube could contain a sign
// change (a cube can be discarded once f's value at its center exceeds
// (1+Safety) times its circumscribing-sphere radius in magnitude, a
// Lipschitz-1 pruning rule with a caller-tunable safety margin — spec 4.8).
func FitAABB[T vec3.Real](f implicit.Function[T], lo, hi vec3.Vec[T], p Params[T]) bv.AABB[T] {
	kept := subdivide(f, lo, hi, p, 0)
	if len(kept) == 0 {
		return bv.AABB[T]{Lo: lo, Hi: hi}
	}
	return bv.EncloseBounds(kept)
}

// FitSphere is FitAABB followed by a Ritter fit over the resulting boxes'
// corners, giving a tighter sphere bound than enclosing the full region.
func FitSphere[T vec3.Real](f implicit.Function[T], lo, hi vec3.Vec[T], p Params[T]) bv.Sphere[T] {
	kept := subdivide(f, lo, hi, p, 0)
	if len(kept) == 0 {
		kept = []bv.AABB[T]{{Lo: lo, Hi: hi}}
	}
	var corners []vec3.Vec[T]
	for _, box := range kept {
		c := box.Corners()
		corners = append(corners, c[:]...)
	}
	return bv.EnclosePoints(corners)
}

func subdivide[T vec3.Real](f implicit.Function[T], lo, hi vec3.Vec[T], p Params[T], depth int) []bv.AABB[T] {
	box := bv.AABB[T]{Lo: lo, Hi: hi}
	extent := hi.Sub(lo)
	maxExtent := extent.X
	if extent.Y > maxExtent {
		maxExtent = extent.Y
	}
	if extent.Z > maxExtent {
		maxExtent = extent.Z
	}

	if depth >= p.MaxDepth || maxExtent <= p.MinExtent {
		if !couldContainSurface(f, box, p.Safety) {
			return nil
		}
		return []bv.AABB[T]{box}
	}

	if !couldContainSurface(f, box, p.Safety) {
		return nil
	}

	mid := lo.Add(hi).Mul(0.5)
	var kept []bv.AABB[T]
	for octant := 0; octant < 8; octant++ {
		childLo, childHi := octantBounds(lo, mid, hi, octant)
		kept = append(kept, subdivide(f, childLo, childHi, p, depth+1)...)
	}
	return kept
}

// couldContainSurface applies the standard Lipschitz-1 SDF pruning rule,
// widened by a safety margin: a cube centered at c with circumscribing
// radius r cannot contain the zero level set if |f(c)| > (1+safety)*r.
func couldContainSurface[T vec3.Real](f implicit.Function[T], box bv.AABB[T], safety T) bool {
	c := box.Centroid()
	r := box.Hi.Sub(c).Length()
	v := f.Value(c)
	if v < 0 {
		v = -v
	}
	return v <= r+safety*r
}

func octantBounds[T vec3.Real](lo, mid, hi vec3.Vec[T], octant int) (vec3.Vec[T], vec3.Vec[T]) {
	var cLo, cHi vec3.Vec[T]
	if octant&1 == 0 {
		cLo.X, cHi.X = lo.X, mid.X
	} else {
		cLo.X, cHi.X = mid.X, hi.X
	}
	if octant&2 == 0 {
		cLo.Y, cHi.Y = lo.Y, mid.Y
	} else {
		cLo.Y, cHi.Y = mid.Y, hi.Y
	}
	if octant&4 == 0 {
		cLo.Z, cHi.Z = lo.Z, mid.Z
	} else {
		cLo.Z, cHi.Z = mid.Z, hi.Z
	}
	return cLo, cHi
}
