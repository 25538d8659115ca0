package vec3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSubInverse(t *testing.T) {
	tests := []struct {
		name string
		v, w Vec[float64]
	}{
		{"origin", Zero[float64](), Zero[float64]()},
		{"general", New(1.0, 2.0, 3.0), New(-4.0, 5.0, -6.0)},
		{"unit axes", Unit[float64](0), Unit[float64](2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Add(tt.w).Sub(tt.w)
			assert.True(t, got.Equal(tt.v))
		})
	}
}

func TestDotCrossOrthogonality(t *testing.T) {
	// a x b is orthogonal to both a and b.
	a := New(1.0, 0.0, 0.0)
	b := New(0.0, 1.0, 0.0)
	c := a.Cross(b)
	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
	assert.True(t, c.Equal(New(0.0, 0.0, 1.0)))
}

func TestNormalizeUnitLength(t *testing.T) {
	v := New(3.0, 4.0, 0.0)
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
}

func TestNormalizeNearZeroDoesNotNaN(t *testing.T) {
	v := New(0.0, 0.0, 0.0)
	n := v.Normalize()
	assert.False(t, math.IsNaN(float64(n.X)))
	assert.False(t, math.IsNaN(float64(n.Y)))
	assert.False(t, math.IsNaN(float64(n.Z)))
}

func TestMinMaxComponentwise(t *testing.T) {
	a := New(1.0, 5.0, -2.0)
	b := New(3.0, 2.0, -9.0)
	assert.True(t, a.Min(b).Equal(New(1.0, 2.0, -9.0)))
	assert.True(t, a.Max(b).Equal(New(3.0, 5.0, -2.0)))
}

func TestMaxDirMinDir(t *testing.T) {
	v := New(-10.0, 2.0, 3.0)
	assert.Equal(t, 2, v.MaxDir(false)) // largest signed component is Z=3
	assert.Equal(t, 0, v.MaxDir(true))  // largest magnitude is |X|=10
	assert.Equal(t, 0, v.MinDir(false))
}

func TestLessTotalOrder(t *testing.T) {
	pts := []Vec[float64]{
		New(1, 2, 3),
		New(1, 2, 2),
		New(0, 9, 9),
		New(1, 1, 1),
	}
	for i := range pts {
		for j := range pts {
			if i == j {
				continue
			}
			li, lj := pts[i].Less(pts[j]), pts[j].Less(pts[i])
			assert.False(t, li && lj, "Less must not be symmetric for distinct points")
		}
	}
}

func TestFloat32Instantiation(t *testing.T) {
	v := New[float32](1, 2, 2)
	assert.InDelta(t, 3.0, float64(v.Length()), 1e-6)
}
