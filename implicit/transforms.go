package implicit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Translate shifts A by S: value(p) = A(p - S).
type Translate[T vec3.Real] struct {
	A Function[T]
	S vec3.Vec[T]
}

func (t Translate[T]) Value(p vec3.Vec[T]) T {
	return t.A.Value(p.Sub(t.S))
}

// Rotate rotates A by Theta radians about Axis: value(p) = A(R^-1 p), with
// R the rotation matrix built from Axis/Theta via Rodrigues' formula. The
// 3x3 matrix itself is assembled with gonum.org/v1/gonum/mat, then its
// inverse is read back into a plain [3][3]float64 once at construction — Rotate nodes are
// built once and queried many times, so paying mat's allocation overhead a
// single time per node is the right trade.
type Rotate[T vec3.Real] struct {
	A          Function[T]
	inverseRot [3][3]float64
}

// NewRotate builds a Rotate node rotating A by theta radians about axis
// (which need not be normalized).
func NewRotate[T vec3.Real](a Function[T], theta T, axis vec3.Vec[T]) Rotate[T] {
	u := axis.Normalize()
	ux, uy, uz := float64(u.X), float64(u.Y), float64(u.Z)
	th := float64(theta)
	c, s := math.Cos(th), math.Sin(th)
	k := 1 - c

	// Rodrigues' rotation formula, assembled as a dense gonum matrix.
	r := mat.NewDense(3, 3, []float64{
		c + ux*ux*k, ux*uy*k - uz*s, ux*uz*k + uy*s,
		uy*ux*k + uz*s, c + uy*uy*k, uy*uz*k - ux*s,
		uz*ux*k - uy*s, uz*uy*k + ux*s, c + uz*uz*k,
	})

	// The inverse of a rotation matrix is its transpose.
	var inv mat.Dense
	inv.CloneFrom(r.T())

	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = inv.At(i, j)
		}
	}
	return Rotate[T]{A: a, inverseRot: m}
}

func (r Rotate[T]) Value(p vec3.Vec[T]) T {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	m := r.inverseRot
	rx := m[0][0]*x + m[0][1]*y + m[0][2]*z
	ry := m[1][0]*x + m[1][1]*y + m[1][2]*z
	rz := m[2][0]*x + m[2][1]*y + m[2][2]*z
	return r.A.Value(vec3.New(T(rx), T(ry), T(rz)))
}

// Scale scales A by K: value(p) = K * A(p / K).
type Scale[T vec3.Real] struct {
	A Function[T]
	K T
}

func (s Scale[T]) Value(p vec3.Vec[T]) T {
	return s.K * s.A.Value(p.Div(s.K))
}

// Offset shifts A's zero level set by D: value(p) = A(p) - D.
type Offset[T vec3.Real] struct {
	A Function[T]
	D T
}

func (o Offset[T]) Value(p vec3.Vec[T]) T {
	return o.A.Value(p) - o.D
}

// Annular turns A's surface into a shell of half-thickness Delta:
// value(p) = |A(p)| - Delta.
type Annular[T vec3.Real] struct {
	A     Function[T]
	Delta T
}

func (a Annular[T]) Value(p vec3.Vec[T]) T {
	v := a.A.Value(p)
	if v < 0 {
		v = -v
	}
	return v - a.Delta
}

// Elongate stretches A along each axis by clamping p into [-H, H] before
// subtracting: value(p) = A(p - clamp(p, -H, H)).
type Elongate[T vec3.Real] struct {
	A Function[T]
	H vec3.Vec[T]
}

func (e Elongate[T]) Value(p vec3.Vec[T]) T {
	clamped := vec3.New(
		clampT(p.X, -e.H.X, e.H.X),
		clampT(p.Y, -e.H.Y, e.H.Y),
		clampT(p.Z, -e.H.Z, e.H.Z),
	)
	return e.A.Value(p.Sub(clamped))
}

// Blur softens A by averaging its value at p with its values at p+D and
// p-D: value(p) = Alpha*A(p) + (1-Alpha)/2*(A(p+D) + A(p-D)).
type Blur[T vec3.Real] struct {
	A     Function[T]
	D     vec3.Vec[T]
	Alpha T
}

func (b Blur[T]) Value(p vec3.Vec[T]) T {
	return b.Alpha*b.A.Value(p) + (1-b.Alpha)/2*(b.A.Value(p.Add(b.D))+b.A.Value(p.Sub(b.D)))
}

// KernelSample is one precomputed sample offset/weight pair for Mollify.
type KernelSample[T vec3.Real] struct {
	Offset vec3.Vec[T]
	Weight T
}

// Mollify smooths A by a weighted sum of samples around p: value(p) =
// sum_i w_i * A(p + s_i), with sample points and weights precomputed from
// a kernel (spec 4.6).
type Mollify[T vec3.Real] struct {
	A       Function[T]
	Samples []KernelSample[T]
}

func (m Mollify[T]) Value(p vec3.Vec[T]) T {
	var sum T
	for _, s := range m.Samples {
		sum += s.Weight * m.A.Value(p.Add(s.Offset))
	}
	return sum
}

// GaussianKernel precomputes a Mollify sample set approximating convolution
// with an isotropic Gaussian of standard deviation sigma, sampled on a
// (2*radius+1)^3 grid of spacing step and normalized to unit total weight.
func GaussianKernel[T vec3.Real](sigma, step T, radius int) []KernelSample[T] {
	var samples []KernelSample[T]
	sig := float64(sigma)
	st := float64(step)
	total := 0.0
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			for k := -radius; k <= radius; k++ {
				dx, dy, dz := float64(i)*st, float64(j)*st, float64(k)*st
				w := math.Exp(-(dx*dx + dy*dy + dz*dz) / (2 * sig * sig))
				samples = append(samples, KernelSample[T]{
					Offset: vec3.New(T(dx), T(dy), T(dz)),
					Weight: T(w),
				})
				total += w
			}
		}
	}
	for i := range samples {
		samples[i].Weight = T(float64(samples[i].Weight) / total)
	}
	return samples
}
