// Package vec2 implements fixed-size 2D vector algebra, used only for the
// DCEL face's projection plane and the polygon2d inside/outside tests.
package vec2

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Real is the set of scalar types the kernel can be instantiated over.
type Real = vec3.Real

// Vec is an ordered pair (X, Y) of T.
type Vec[T Real] struct {
	X, Y T
}

// New builds a Vec from two components.
func New[T Real](x, y T) Vec[T] {
	return Vec[T]{X: x, Y: y}
}

// Add returns v + w.
func (v Vec[T]) Add(w Vec[T]) Vec[T] {
	return Vec[T]{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec[T]) Sub(w Vec[T]) Vec[T] {
	return Vec[T]{v.X - w.X, v.Y - w.Y}
}

// Mul returns v scaled by s.
func (v Vec[T]) Mul(s T) Vec[T] {
	return Vec[T]{v.X * s, v.Y * s}
}

// Dot returns v . w.
func (v Vec[T]) Dot(w Vec[T]) T {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the scalar (Z-component) cross product v x w.
func (v Vec[T]) Cross(w Vec[T]) T {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the Euclidean norm of v.
func (v Vec[T]) Length() T {
	return T(math.Sqrt(float64(v.Dot(v))))
}
