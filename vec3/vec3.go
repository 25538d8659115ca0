// Package vec3 implements fixed-size 3D vector algebra over a generic real
// scalar type, in the style of the teacher's vec/v3.Vec (a plain struct of
// named fields with value-receiver methods), generalized with Go generics so
// the kernel can be built in either single or double precision.
package vec3

import "math"

// Real is the set of scalar types the kernel can be instantiated over.
type Real interface {
	~float32 | ~float64
}

// Vec is an ordered triple (X, Y, Z) of T.
type Vec[T Real] struct {
	X, Y, Z T
}

// New builds a Vec from three components.
func New[T Real](x, y, z T) Vec[T] {
	return Vec[T]{X: x, Y: y, Z: z}
}

// Zero is the additive identity.
func Zero[T Real]() Vec[T] {
	return Vec[T]{}
}

// One is the vector of all ones.
func One[T Real]() Vec[T] {
	return Vec[T]{X: 1, Y: 1, Z: 1}
}

// Unit returns the standard basis vector along axis d (0=X, 1=Y, 2=Z).
func Unit[T Real](d int) Vec[T] {
	var v Vec[T]
	switch d {
	case 0:
		v.X = 1
	case 1:
		v.Y = 1
	case 2:
		v.Z = 1
	}
	return v
}

// Min returns a vector whose components are all +infinity, used to seed an
// AABB lower corner before reducing over a point set.
func Min[T Real]() Vec[T] {
	inf := T(math.Inf(1))
	return Vec[T]{X: inf, Y: inf, Z: inf}
}

// Max returns a vector whose components are all -infinity, used to seed an
// AABB upper corner before reducing over a point set.
func Max[T Real]() Vec[T] {
	inf := T(math.Inf(-1))
	return Vec[T]{X: inf, Y: inf, Z: inf}
}

// Infinity returns a vector whose components are all +infinity.
func Infinity[T Real]() Vec[T] {
	inf := T(math.Inf(1))
	return Vec[T]{X: inf, Y: inf, Z: inf}
}

// Component returns the d-th component (0=X, 1=Y, 2=Z).
func (v Vec[T]) Component(d int) T {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Add returns v + w.
func (v Vec[T]) Add(w Vec[T]) Vec[T] {
	return Vec[T]{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec[T]) Sub(w Vec[T]) Vec[T] {
	return Vec[T]{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Mul returns v scaled by s.
func (v Vec[T]) Mul(s T) Vec[T] {
	return Vec[T]{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v with every component divided by s.
func (v Vec[T]) Div(s T) Vec[T] {
	return Vec[T]{v.X / s, v.Y / s, v.Z / s}
}

// MulElem returns the component-wise (Hadamard) product of v and w.
func (v Vec[T]) MulElem(w Vec[T]) Vec[T] {
	return Vec[T]{v.X * w.X, v.Y * w.Y, v.Z * w.Z}
}

// Neg returns -v.
func (v Vec[T]) Neg() Vec[T] {
	return Vec[T]{-v.X, -v.Y, -v.Z}
}

// Dot returns v . w.
func (v Vec[T]) Dot(w Vec[T]) T {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns v x w.
func (v Vec[T]) Cross(w Vec[T]) Vec[T] {
	return Vec[T]{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// LengthSquared returns v . v.
func (v Vec[T]) LengthSquared() T {
	return v.Dot(v)
}

// Length returns the Euclidean norm of v.
func (v Vec[T]) Length() T {
	return T(math.Sqrt(float64(v.LengthSquared())))
}

// Normalize returns v scaled to unit length. If v is near zero, the length
// is clamped to the smallest representable positive T to avoid a NaN,
// matching the kernel's NumericEdge policy of epsilon-clamping rather than
// failing.
func (v Vec[T]) Normalize() Vec[T] {
	l := v.Length()
	if l < smallestPositive[T]() {
		l = smallestPositive[T]()
	}
	return v.Div(l)
}

func smallestPositive[T Real]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(math.SmallestNonzeroFloat32)
	default:
		return T(math.SmallestNonzeroFloat64)
	}
}

// Min returns the component-wise minimum of v and w.
func (v Vec[T]) Min(w Vec[T]) Vec[T] {
	return Vec[T]{minT(v.X, w.X), minT(v.Y, w.Y), minT(v.Z, w.Z)}
}

// Max returns the component-wise maximum of v and w.
func (v Vec[T]) Max(w Vec[T]) Vec[T] {
	return Vec[T]{maxT(v.X, w.X), maxT(v.Y, w.Y), maxT(v.Z, w.Z)}
}

func minT[T Real](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T Real](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// MinDir returns the axis (0,1,2) holding the smallest component of v. If
// byAbs is true, components are compared by magnitude.
func (v Vec[T]) MinDir(byAbs bool) int {
	x, y, z := v.X, v.Y, v.Z
	if byAbs {
		x, y, z = absT(x), absT(y), absT(z)
	}
	d := 0
	m := x
	if y < m {
		m, d = y, 1
	}
	if z < m {
		d = 2
	}
	return d
}

// MaxDir returns the axis (0,1,2) holding the largest component of v. If
// byAbs is true, components are compared by magnitude.
func (v Vec[T]) MaxDir(byAbs bool) int {
	x, y, z := v.X, v.Y, v.Z
	if byAbs {
		x, y, z = absT(x), absT(y), absT(z)
	}
	d := 0
	m := x
	if y > m {
		m, d = y, 1
	}
	if z > m {
		d = 2
	}
	return d
}

func absT[T Real](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Equal reports whether v and w are identical component-wise.
func (v Vec[T]) Equal(w Vec[T]) bool {
	return v.X == w.X && v.Y == w.Y && v.Z == w.Z
}

// Less provides a total order (lexicographic x, then y, then z) used by the
// soup compression pass to sort-and-scan for duplicate vertices.
func (v Vec[T]) Less(w Vec[T]) bool {
	if v.X != w.X {
		return v.X < w.X
	}
	if v.Y != w.Y {
		return v.Y < w.Y
	}
	return v.Z < w.Z
}
