package csg

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/implicit"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// SmoothKind selects the smooth min/max formula.
type SmoothKind int

const (
	// Polynomial is the default quadratic smooth min/max (spec 4.6).
	Polynomial SmoothKind = iota
	// Exponential is the exponential-min variant: -s*log(e^(-a/s) +
	// e^(-b/s)).
	Exponential
)

// clampSmoothing enforces the spec's "clamped to at least the floating
// point minimum positive value" rule, avoiding a division by zero.
func clampSmoothing[T vec3.Real](s T) T {
	eps := smallestPositive[T]()
	if s < eps {
		return eps
	}
	return s
}

func smallestPositive[T vec3.Real]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(math.SmallestNonzeroFloat32)
	default:
		return T(math.SmallestNonzeroFloat64)
	}
}

// SmoothMin returns the smooth minimum of a and b with smoothing length s.
func SmoothMin[T vec3.Real](a, b, s T, kind SmoothKind) T {
	s = clampSmoothing(s)
	if kind == Exponential {
		return -s * T(math.Log(math.Exp(-float64(a)/float64(s))+math.Exp(-float64(b)/float64(s))))
	}
	h := maxT(s-absT(a-b), 0) / s
	m := minT(a, b)
	return m - h*h*s/4
}

// SmoothMax returns the smooth maximum of a and b with smoothing length s.
func SmoothMax[T vec3.Real](a, b, s T, kind SmoothKind) T {
	s = clampSmoothing(s)
	if kind == Exponential {
		return s * T(math.Log(math.Exp(float64(a)/float64(s))+math.Exp(float64(b)/float64(s))))
	}
	h := maxT(s-absT(a-b), 0) / s
	m := maxT(a, b)
	return m + h*h*s/4
}

func minT[T vec3.Real](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T vec3.Real](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func absT[T vec3.Real](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// SmoothUnion is the N-ary smooth union: evaluate every child, smooth-min
// the two smallest values (spec 4.6, "the standard two-nearest
// approximation" — the smoothing zone is localised to the nearest pair).
type SmoothUnion[T vec3.Real] struct {
	Children []implicit.Function[T]
	S        T
	Kind     SmoothKind
}

func (u SmoothUnion[T]) Value(p vec3.Vec[T]) T {
	a, b := twoSmallest(u.Children, p)
	return SmoothMin(a, b, u.S, u.Kind)
}

// twoSmallest evaluates every child and returns its two smallest values
// a <= b in a single pass.
func twoSmallest[T vec3.Real](children []implicit.Function[T], p vec3.Vec[T]) (a, b T) {
	a, b = T(math.Inf(1)), T(math.Inf(1))
	for _, c := range children {
		v := c.Value(p)
		switch {
		case v < a:
			b = a
			a = v
		case v < b:
			b = v
		}
	}
	return a, b
}

// SmoothIntersection is smoothMax(A, B, s).
type SmoothIntersection[T vec3.Real] struct {
	A, B implicit.Function[T]
	S    T
	Kind SmoothKind
}

func (i SmoothIntersection[T]) Value(p vec3.Vec[T]) T {
	return SmoothMax(i.A.Value(p), i.B.Value(p), i.S, i.Kind)
}

// SmoothDifference is smoothMax(A, -B, s).
type SmoothDifference[T vec3.Real] struct {
	A, B implicit.Function[T]
	S    T
	Kind SmoothKind
}

func (d SmoothDifference[T]) Value(p vec3.Vec[T]) T {
	return SmoothMax(d.A.Value(p), -d.B.Value(p), d.S, d.Kind)
}
