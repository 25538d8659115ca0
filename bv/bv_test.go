package bv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutcellgeo/ebgeometry/vec3"
)

func TestAABBDistanceZeroInside(t *testing.T) {
	box := AABB[float64]{Lo: vec3.New(0.0, 0.0, 0.0), Hi: vec3.New(1.0, 1.0, 1.0)}
	assert.Equal(t, 0.0, box.Distance(vec3.New(0.5, 0.5, 0.5)))
	assert.Equal(t, 0.0, box.Distance(vec3.New(0.0, 0.0, 0.0)))
}

func TestAABBDistanceOutside(t *testing.T) {
	box := AABB[float64]{Lo: vec3.New(0.0, 0.0, 0.0), Hi: vec3.New(1.0, 1.0, 1.0)}
	d := box.Distance(vec3.New(2.0, 0.0, 0.0))
	assert.InDelta(t, 1.0, d, 1e-12)
}

func TestAABBDistanceIsLowerBoundForEnclosedPoints(t *testing.T) {
	pts := []vec3.Vec[float64]{
		vec3.New(0.1, 0.2, 0.3),
		vec3.New(0.9, 0.8, 0.1),
		vec3.New(0.4, 0.4, 0.9),
	}
	box := EncloseAABBPoints(pts)
	q := vec3.New(5.0, 5.0, 5.0)
	bound := box.Distance(q)
	for _, p := range pts {
		actual := q.Sub(p).Length()
		assert.LessOrEqual(t, bound, actual+1e-9)
	}
}

func TestAABBUnionEnclosesBoth(t *testing.T) {
	a := AABB[float64]{Lo: vec3.New(0.0, 0.0, 0.0), Hi: vec3.New(1.0, 1.0, 1.0)}
	b := AABB[float64]{Lo: vec3.New(2.0, 2.0, 2.0), Hi: vec3.New(3.0, 3.0, 3.0)}
	u := a.Union(b).(AABB[float64])
	assert.True(t, u.Contains(vec3.New(0.5, 0.5, 0.5)))
	assert.True(t, u.Contains(vec3.New(2.5, 2.5, 2.5)))
}

func TestSphereEnclosePointsContainsAll(t *testing.T) {
	pts := []vec3.Vec[float64]{
		vec3.New(1.0, 0.0, 0.0),
		vec3.New(-1.0, 0.0, 0.0),
		vec3.New(0.0, 1.0, 0.0),
		vec3.New(0.0, -1.0, 0.0),
		vec3.New(0.3, 0.3, 0.3),
	}
	s := EnclosePoints(pts)
	for _, p := range pts {
		d := p.Sub(s.Center).Length()
		assert.LessOrEqual(t, d, s.Radius+1e-9)
	}
}

func TestSphereDistanceLowerBound(t *testing.T) {
	pts := []vec3.Vec[float64]{
		vec3.New(1.0, 0.0, 0.0),
		vec3.New(0.0, 1.0, 0.0),
		vec3.New(0.0, 0.0, 1.0),
	}
	s := EnclosePoints(pts)
	q := vec3.New(10.0, 0.0, 0.0)
	bound := s.Distance(q)
	for _, p := range pts {
		actual := q.Sub(p).Length()
		assert.LessOrEqual(t, bound, actual+1e-9)
	}
}

func TestSphereDistanceZeroInside(t *testing.T) {
	s := Sphere[float64]{Center: vec3.Zero[float64](), Radius: 2.0}
	assert.Equal(t, 0.0, s.Distance(vec3.New(1.0, 0.0, 0.0)))
}

func TestOverlappingVolumeDisjointIsZero(t *testing.T) {
	a := AABB[float64]{Lo: vec3.New(0.0, 0.0, 0.0), Hi: vec3.New(1.0, 1.0, 1.0)}
	b := AABB[float64]{Lo: vec3.New(5.0, 5.0, 5.0), Hi: vec3.New(6.0, 6.0, 6.0)}
	assert.Equal(t, 0.0, a.OverlappingVolume(b))
}
