package fastunion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/bvh"
	"github.com/cutcellgeo/ebgeometry/csg"
	"github.com/cutcellgeo/ebgeometry/implicit"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

func spherePrimitive(cx, cy, cz, r float64) Primitive[float64] {
	s := implicit.Sphere[float64]{Center: vec3.New(cx, cy, cz), Radius: r}
	half := vec3.New(r, r, r)
	bound := bv.AABB[float64]{Lo: s.Center.Sub(half), Hi: s.Center.Add(half)}
	return Primitive[float64]{Func: s, Bound: bound}
}

func TestFastUnionMatchesCSGUnion(t *testing.T) {
	prims := []Primitive[float64]{
		spherePrimitive(0, 0, 0, 1),
		spherePrimitive(10, 0, 0, 1),
		spherePrimitive(0, 10, 0, 1),
		spherePrimitive(-10, -10, 0, 2),
	}
	fu, report := New[float64](prims, 2, bvh.TopDown)
	assert.True(t, report.OK())

	var children []implicit.Function[float64]
	for _, p := range prims {
		children = append(children, p.Func)
	}
	reference := csg.Union[float64]{Children: children}

	for _, q := range []vec3.Vec[float64]{
		vec3.New(0.5, 0.0, 0.0),
		vec3.New(5.0, 5.0, 0.0),
		vec3.New(-10.5, -10.0, 0.0),
		vec3.New(100.0, 100.0, 100.0),
	} {
		assert.InDelta(t, reference.Value(q), fu.Value(q), 1e-9)
	}
}

func TestFastSmoothUnionMatchesReferenceFarFromBoundary(t *testing.T) {
	prims := []Primitive[float64]{
		spherePrimitive(0, 0, 0, 1),
		spherePrimitive(20, 0, 0, 1),
	}
	fsu, _ := NewSmooth[float64](prims, 2, bvh.TopDown, 0.01, csg.Polynomial)

	var children []implicit.Function[float64]
	for _, p := range prims {
		children = append(children, p.Func)
	}
	reference := csg.SmoothUnion[float64]{Children: children, S: 0.01, Kind: csg.Polynomial}

	q := vec3.New(10.0, 0.0, 0.0)
	assert.InDelta(t, reference.Value(q), fsu.Value(q), 1e-6)
}
