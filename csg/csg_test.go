package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutcellgeo/ebgeometry/implicit"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

func sphere(cx, cy, cz, r float64) implicit.Sphere[float64] {
	return implicit.Sphere[float64]{Center: vec3.New(cx, cy, cz), Radius: r}
}

func TestUnionIsMinimum(t *testing.T) {
	u := Union[float64]{Children: []implicit.Function[float64]{sphere(0, 0, 0, 1), sphere(5, 0, 0, 1)}}
	p := vec3.New(2.5, 0.0, 0.0)
	want := sphere(0, 0, 0, 1).Value(p)
	if v := sphere(5, 0, 0, 1).Value(p); v < want {
		want = v
	}
	assert.Equal(t, want, u.Value(p))
}

func TestIntersectionIsMaximum(t *testing.T) {
	i := Intersection[float64]{Children: []implicit.Function[float64]{sphere(0, 0, 0, 2), sphere(1, 0, 0, 2)}}
	p := vec3.New(0.5, 0.0, 0.0)
	want := sphere(0, 0, 0, 2).Value(p)
	if v := sphere(1, 0, 0, 2).Value(p); v > want {
		want = v
	}
	assert.Equal(t, want, i.Value(p))
}

func TestDifferenceEqualsIntersectWithComplement(t *testing.T) {
	a, b := sphere(0, 0, 0, 2), sphere(0, 0, 0, 1)
	d := Difference[float64]{A: a, B: b}
	alt := Intersection[float64]{Children: []implicit.Function[float64]{a, Complement[float64]{A: b}}}
	for _, p := range samplePoints() {
		assert.InDelta(t, alt.Value(p), d.Value(p), 1e-9)
	}
}

func TestComplementFlipsSign(t *testing.T) {
	s := sphere(0, 0, 0, 1)
	c := Complement[float64]{A: s}
	for _, p := range samplePoints() {
		assert.InDelta(t, -s.Value(p), c.Value(p), 1e-12)
	}
}

func TestSmoothMinApproachesMinAsSmoothingShrinks(t *testing.T) {
	a, b := 3.0, -1.0
	got := SmoothMin(a, b, 1e-6, Polynomial)
	assert.InDelta(t, -1.0, got, 1e-3)
}

func TestSmoothMinNeverExceedsMin(t *testing.T) {
	a, b := 2.0, 5.0
	got := SmoothMin(a, b, 1.0, Polynomial)
	assert.LessOrEqual(t, got, a)
}

func TestSmoothUnionMatchesUnionFarFromBoundary(t *testing.T) {
	children := []implicit.Function[float64]{sphere(0, 0, 0, 1), sphere(20, 0, 0, 1)}
	su := SmoothUnion[float64]{Children: children, S: 0.01, Kind: Polynomial}
	u := Union[float64]{Children: children}
	p := vec3.New(10.0, 0.0, 0.0)
	assert.InDelta(t, u.Value(p), su.Value(p), 1e-2)
}

func samplePoints() []vec3.Vec[float64] {
	return []vec3.Vec[float64]{
		vec3.New(0.0, 0.0, 0.0),
		vec3.New(1.5, 0.0, 0.0),
		vec3.New(-3.0, 2.0, 1.0),
		vec3.New(0.5, 0.5, 0.5),
	}
}
