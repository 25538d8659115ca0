package implicit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

func TestTranslateShiftsSurface(t *testing.T) {
	s := Sphere[float64]{Center: vec3.Zero[float64](), Radius: 1.0}
	tr := Translate[float64]{A: s, S: vec3.New(5.0, 0.0, 0.0)}
	assert.InDelta(t, 0.0, tr.Value(vec3.New(6.0, 0.0, 0.0)), 1e-9)
}

func TestRotateAboutZPreservesSphere(t *testing.T) {
	s := Sphere[float64]{Center: vec3.Zero[float64](), Radius: 1.0}
	r := NewRotate[float64](s, math.Pi/2, vec3.New(0.0, 0.0, 1.0))
	// A sphere at the origin is invariant under any rotation about its
	// center.
	assert.InDelta(t, 0.0, r.Value(vec3.New(1.0, 0.0, 0.0)), 1e-9)
	assert.InDelta(t, 0.0, r.Value(vec3.New(0.0, 1.0, 0.0)), 1e-9)
}

func TestRotateMapsOffsetSphere(t *testing.T) {
	s := Sphere[float64]{Center: vec3.New(1.0, 0.0, 0.0), Radius: 0.5}
	r := NewRotate[float64](s, math.Pi/2, vec3.New(0.0, 0.0, 1.0))
	// Rotating the frame 90 degrees about Z moves the sphere's apparent
	// center from (1,0,0) to (0,1,0).
	assert.InDelta(t, 0.0, r.Value(vec3.New(0.0, 1.5, 0.0)), 1e-6)
}

func TestScaleScalesDistance(t *testing.T) {
	s := Sphere[float64]{Center: vec3.Zero[float64](), Radius: 1.0}
	sc := Scale[float64]{A: s, K: 2.0}
	assert.InDelta(t, 0.0, sc.Value(vec3.New(2.0, 0.0, 0.0)), 1e-9)
}

func TestOffsetShiftsLevelSet(t *testing.T) {
	s := Sphere[float64]{Center: vec3.Zero[float64](), Radius: 1.0}
	o := Offset[float64]{A: s, D: 0.5}
	assert.InDelta(t, 0.0, o.Value(vec3.New(1.5, 0.0, 0.0)), 1e-9)
}

func TestAnnularProducesShell(t *testing.T) {
	s := Sphere[float64]{Center: vec3.Zero[float64](), Radius: 2.0}
	ann := Annular[float64]{A: s, Delta: 0.2}
	// Inner and outer shell surfaces are both zero-level.
	assert.InDelta(t, 0.0, ann.Value(vec3.New(1.8, 0.0, 0.0)), 1e-9)
	assert.InDelta(t, 0.0, ann.Value(vec3.New(2.2, 0.0, 0.0)), 1e-9)
	// The shell interior (near the original surface) is inside.
	assert.Less(t, ann.Value(vec3.New(2.0, 0.0, 0.0)), 0.0)
}

func TestGaussianKernelWeightsNormalized(t *testing.T) {
	samples := GaussianKernel[float64](1.0, 0.5, 2)
	var total float64
	for _, s := range samples {
		total += s.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestMollifySmoothsConstantFunction(t *testing.T) {
	// Mollifying a constant function returns the same constant, since
	// weights sum to one.
	c := constFn{v: 3.0}
	m := Mollify[float64]{A: c, Samples: GaussianKernel[float64](1.0, 0.3, 1)}
	assert.InDelta(t, 3.0, m.Value(vec3.Zero[float64]()), 1e-9)
}

type constFn struct{ v float64 }

func (c constFn) Value(vec3.Vec[float64]) float64 { return c.v }
