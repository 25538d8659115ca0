// Package implicit defines the implicit-function core: an abstract
// value-only query over Vec3, analytic primitives, and the transform nodes
// composed on top of them. CSG composition lives in package csg; the
// BVH-accelerated union lives in package fastunion. Keeping those concerns
// split mirrors spec's component-design table splitting "Implicit function
// base + transforms" from "CSG" from "BVH-accelerated CSG".
package implicit

import "github.com/cutcellgeo/ebgeometry/vec3"

// Function is the one contract every implicit-function node satisfies.
type Function[T vec3.Real] interface {
	Value(p vec3.Vec[T]) T
}

// SDF documents the stronger Lipschitz contract a true signed-distance
// function satisfies: |f(x) - f(y)| <= |x - y|, with magnitude equal to the
// distance to the zero set. It is the same interface as Function — the
// distinction is semantic, not structural (spec 6: "signed_distance ==
// value for true distance fields").
type SDF[T vec3.Real] = Function[T]

// Func adapts a plain function to the Function interface.
type Func[T vec3.Real] func(p vec3.Vec[T]) T

// Value implements Function.
func (f Func[T]) Value(p vec3.Vec[T]) T { return f(p) }
