// Package bv implements the bounding-volume contracts the BVH relies on for
// sound pruning: AABB and bounding sphere, both satisfying
//
//	distance(p) >= 0
//	distance(p) == 0 iff p is inside the volume
//	distance(p) is a lower bound on the distance from p to any primitive
//	enclosed by the volume
package bv

import "github.com/cutcellgeo/ebgeometry/vec3"

// Bound is the contract every bounding-volume type must satisfy (spec
// "Bounding-volume contracts"). AABB and Sphere both implement it.
type Bound[T vec3.Real] interface {
	Centroid() vec3.Vec[T]
	Volume() T
	Area() T
	Intersects(other Bound[T]) bool
	Distance(p vec3.Vec[T]) T
	// OverlappingVolume returns the closed-form volume of the intersection
	// of two bounds of the *same* concrete kind. Mixing kinds panics, since
	// the contract only defines same-kind overlap (spec 4.1).
	OverlappingVolume(other Bound[T]) T
	// Union returns the smallest bound of the same concrete kind enclosing
	// both this bound and other. Used by the BVH build to fold a node's
	// children bounds into its own.
	Union(other Bound[T]) Bound[T]
}
