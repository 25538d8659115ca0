package bvh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

type point = int // primitive payload is just an index into a point array

func gridItems(n int) ([]Item[float64, point, bv.AABB[float64]], []vec3.Vec[float64]) {
	pts := make([]vec3.Vec[float64], n)
	items := make([]Item[float64, point, bv.AABB[float64]], n)
	for i := 0; i < n; i++ {
		p := vec3.New(float64(i), float64(i%3), float64((i*7)%5))
		pts[i] = p
		items[i] = Item[float64, point, bv.AABB[float64]]{
			Prim:  i,
			Bound: bv.AABB[float64]{Lo: p, Hi: p},
		}
	}
	return items, pts
}

func nearestPointBuild(t *testing.T, root *BuildNode[float64, point, bv.AABB[float64]], pts []vec3.Vec[float64], q vec3.Vec[float64]) (int, float64) {
	t.Helper()
	best := -1
	bestDist := math.Inf(1)

	metaUpdater := func(b bv.AABB[float64]) float64 { return b.Distance(q) }
	visiter := func(b bv.AABB[float64], bvDist float64) bool { return bvDist <= bestDist }
	updater := func(items []Item[float64, point, bv.AABB[float64]]) {
		for _, it := range items {
			d := pts[it.Prim].Sub(q).Length()
			if d < bestDist {
				bestDist = d
				best = it.Prim
			}
		}
	}
	TraverseBuild[float64, point, bv.AABB[float64], float64](root, metaUpdater, visiter, nil, updater)
	return best, bestDist
}

func bruteNearest(pts []vec3.Vec[float64], q vec3.Vec[float64]) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range pts {
		d := p.Sub(q).Length()
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}

func TestTopDownBuildNearestMatchesBruteForce(t *testing.T) {
	items, pts := gridItems(40)
	root, report := New[float64, point, bv.AABB[float64]](items, 4, TopDown, nil)
	require.True(t, report.OK())

	q := vec3.New(17.3, -2.0, 9.0)
	gotIdx, gotDist := nearestPointBuild(t, root, pts, q)
	wantIdx, wantDist := bruteNearest(pts, q)
	assert.InDelta(t, wantDist, gotDist, 1e-9)
	assert.Equal(t, wantIdx, gotIdx)
}

func TestMortonBottomUpBuildNearestMatchesBruteForce(t *testing.T) {
	items, pts := gridItems(50)
	root, _ := New[float64, point, bv.AABB[float64]](items, 4, Morton, nil)

	q := vec3.New(3.0, 3.0, 3.0)
	gotIdx, gotDist := nearestPointBuild(t, root, pts, q)
	wantIdx, wantDist := bruteNearest(pts, q)
	assert.InDelta(t, wantDist, gotDist, 1e-9)
	assert.Equal(t, wantIdx, gotIdx)
}

func TestNestedBottomUpBuildNearestMatchesBruteForce(t *testing.T) {
	items, pts := gridItems(33)
	root, _ := New[float64, point, bv.AABB[float64]](items, 3, Nested, nil)

	q := vec3.New(-5.0, 1.0, 2.0)
	gotIdx, gotDist := nearestPointBuild(t, root, pts, q)
	wantIdx, wantDist := bruteNearest(pts, q)
	assert.InDelta(t, wantDist, gotDist, 1e-9)
	assert.Equal(t, wantIdx, gotIdx)
}

func TestFlattenPreservesNearestQueryResult(t *testing.T) {
	items, pts := gridItems(30)
	root, _ := New[float64, point, bv.AABB[float64]](items, 4, TopDown, nil)
	linear := Flatten(root)

	q := vec3.New(12.0, 0.0, 4.0)
	wantIdx, wantDist := bruteNearest(pts, q)

	best := -1
	bestDist := math.Inf(1)
	metaUpdater := func(b bv.AABB[float64]) float64 { return b.Distance(q) }
	visiter := func(b bv.AABB[float64], bvDist float64) bool { return bvDist <= bestDist }
	updater := func(items []Item[float64, point, bv.AABB[float64]]) {
		for _, it := range items {
			d := pts[it.Prim].Sub(q).Length()
			if d < bestDist {
				bestDist = d
				best = it.Prim
			}
		}
	}
	TraverseLinear[float64, point, bv.AABB[float64], float64](linear, metaUpdater, visiter, nil, updater)

	assert.Equal(t, wantIdx, best)
	assert.InDelta(t, wantDist, bestDist, 1e-9)
}

func TestNewEmptyItemsRaisesEmptyInputDiagnostic(t *testing.T) {
	root, report := New[float64, point, bv.AABB[float64]](nil, 4, TopDown, nil)
	assert.NotNil(t, root)
	assert.Greater(t, len(report.Events), 0)
}

func TestNewClampsBranchingFactorBelowTwo(t *testing.T) {
	items, _ := gridItems(10)
	_, report := New[float64, point, bv.AABB[float64]](items, 1, TopDown, nil)
	assert.Greater(t, len(report.Events), 0)
}

func TestUnpartitionedRootFlattensAsSingleLeaf(t *testing.T) {
	items, _ := gridItems(2)
	root, _ := New[float64, point, bv.AABB[float64]](items, 4, TopDown, nil)
	require.False(t, root.Partitioned())

	linear := Flatten(root)
	require.Len(t, linear.Records, 1)
	assert.Equal(t, 2, linear.Records[0].NumPrimitives)
}
