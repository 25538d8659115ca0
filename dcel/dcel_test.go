package dcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/internal/soupio"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// tetrahedronSoup returns a watertight regular-tetrahedron soup, vertices
// centered at the origin, every facet wound outward (right-hand rule).
func tetrahedronSoup() soupio.Soup[float64] {
	verts := []vec3.Vec[float64]{
		vec3.New(1.0, 1.0, 1.0),
		vec3.New(1.0, -1.0, -1.0),
		vec3.New(-1.0, 1.0, -1.0),
		vec3.New(-1.0, -1.0, 1.0),
	}
	facets := [][]int{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
	return soupio.FromVertexFacetArrays(verts, facets)
}

func buildTetrahedron(t *testing.T) *Mesh[float64, struct{}] {
	t.Helper()
	mesh, report, err := BuildFromSoup[float64, struct{}](tetrahedronSoup())
	require.NoError(t, err)
	assert.Equal(t, 0, report.CountOf(diag.TopologyBroken))
	return mesh
}

func TestBuildFromSoupProducesWatertightTetrahedron(t *testing.T) {
	mesh := buildTetrahedron(t)
	assert.Len(t, mesh.Vertices, 4)
	assert.Len(t, mesh.Faces, 4)
	assert.Len(t, mesh.Edges, 12)

	sanity := SanityCheck(mesh)
	assert.True(t, sanity.OK(), "%v", sanity.Events)
}

func TestCompressDeduplicatesCoincidentVertices(t *testing.T) {
	verts := []vec3.Vec[float64]{
		vec3.New(0.0, 0.0, 0.0),
		vec3.New(1.0, 0.0, 0.0),
		vec3.New(0.0, 0.0, 0.0), // duplicate of index 0
	}
	positions, remap := compress(verts)
	assert.Len(t, positions, 2)
	assert.Equal(t, remap[0], remap[2])
	assert.NotEqual(t, remap[0], remap[1])
}

func TestSignedDistanceNegativeInsideTetrahedron(t *testing.T) {
	mesh := buildTetrahedron(t)
	d := mesh.SignedDistance(vec3.Zero[float64]())
	assert.Less(t, d, 0.0)
}

func TestSignedDistancePositiveOutsideTetrahedron(t *testing.T) {
	mesh := buildTetrahedron(t)
	d := mesh.SignedDistance(vec3.New(10.0, 10.0, 10.0))
	assert.Greater(t, d, 0.0)
}

func TestSignedDistanceZeroOnSurface(t *testing.T) {
	mesh := buildTetrahedron(t)
	// A mesh vertex lies exactly on the surface.
	d := mesh.SignedDistance(vec3.New(1.0, 1.0, 1.0))
	assert.InDelta(t, 0.0, d, 1e-6)
}

func TestDegenerateFacetIsSkippedNotPanicked(t *testing.T) {
	verts := []vec3.Vec[float64]{
		vec3.New(0.0, 0.0, 0.0),
		vec3.New(1.0, 0.0, 0.0),
		vec3.New(0.0, 1.0, 0.0),
	}
	facets := [][]int{
		{0, 1},    // fewer than 3 indices
		{0, 1, 1}, // coincident index
	}
	soup := soupio.FromVertexFacetArrays(verts, facets)
	mesh, report, err := BuildFromSoup[float64, struct{}](soup)
	require.NoError(t, err)
	assert.Equal(t, 2, report.CountOf(diag.InputDegenerate))
	assert.Empty(t, mesh.Faces)
}

func TestStrictSanityReturnsErrorOnNonWatertight(t *testing.T) {
	verts := []vec3.Vec[float64]{
		vec3.New(0.0, 0.0, 0.0),
		vec3.New(1.0, 0.0, 0.0),
		vec3.New(0.0, 1.0, 0.0),
	}
	facets := [][]int{{0, 1, 2}} // a single triangle is never watertight
	soup := soupio.FromVertexFacetArrays(verts, facets)
	_, _, err := BuildFromSoup[float64, struct{}](soup, WithStrictSanity(true))
	assert.Error(t, err)
}
