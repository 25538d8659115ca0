// Package soupio defines the vertex/facet soup — the only wire format the
// kernel itself owns (spec "External interfaces"). It deliberately contains
// no STL/PLY/VTK parser: file parsing is named only as an external
// collaborator's responsibility; the kernel's contract with that
// collaborator is this struct.
package soupio

import "github.com/cutcellgeo/ebgeometry/vec3"

// Soup is a raw list of vertex positions and facet index lists with no
// enforced topology. Winding order of a facet's indices encodes outward
// orientation via the right-hand rule.
type Soup[T vec3.Real] struct {
	// Vertices holds every vertex position, possibly with duplicates (a
	// parser producing one vertex per triangle corner, as STL does, is
	// expected and handled by dcel's compression pass).
	Vertices []vec3.Vec[T]
	// Facets holds, for each facet, the list of indices into Vertices that
	// make up its boundary, in winding order. Each facet must have at
	// least 3 indices to be non-degenerate.
	Facets [][]int
}

// FromVertexFacetArrays builds a Soup directly from a vertex array and a
// facet index array, the shape any soup producer (an STL/PLY/VTK parser,
// a procedural generator) is expected to hand the kernel.
func FromVertexFacetArrays[T vec3.Real](vertices []vec3.Vec[T], facets [][]int) Soup[T] {
	return Soup[T]{Vertices: vertices, Facets: facets}
}
