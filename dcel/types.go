// Package dcel implements a doubly-connected edge list (half-edge) surface
// mesh with exact signed-distance queries against an arbitrary closed
// triangulated surface, including edge/vertex pseudonormal computation and
// polygon point-in-face tests via a 2D projection.
//
// Per spec's "Cyclic DCEL references" design note, the Mesh arena
// exclusively owns every Vertex, HalfEdge, and Face; all cross-references
// are non-owning pointers into those owned slices. This breaks the
// vertex<->edge<->face reference cycle at the ownership level while still
// letting entities reference one another directly (no index indirection on
// the query hot path).
package dcel

import (
	"github.com/cutcellgeo/ebgeometry/polygon2d"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Vertex is one DCEL vertex.
type Vertex[T vec3.Real, Meta any] struct {
	Position vec3.Vec[T]
	Outgoing *HalfEdge[T, Meta]
	Normal   vec3.Vec[T]
	Faces    []*Face[T, Meta]
	Meta     Meta
}

// HalfEdge is one directed half-edge, running from Origin to Pair.Origin.
type HalfEdge[T vec3.Real, Meta any] struct {
	Origin *Vertex[T, Meta]
	Face   *Face[T, Meta]
	Next   *HalfEdge[T, Meta]
	Pair   *HalfEdge[T, Meta]
	Normal vec3.Vec[T]
}

// Destination returns the vertex this half-edge points to.
func (e *HalfEdge[T, Meta]) Destination() *Vertex[T, Meta] {
	return e.Next.Origin
}

// Face is one mesh polygon, referencing one of its bounding half-edges.
type Face[T vec3.Real, Meta any] struct {
	Edge      *HalfEdge[T, Meta]
	Normal    vec3.Vec[T]
	Centroid  vec3.Vec[T]
	Area      T
	Proj      polygon2d.Projection[T]
	ProjAxis  int // coordinate axis dropped to build Proj (0=X,1=Y,2=Z)
	Algorithm polygon2d.Algorithm
	Meta      Meta
}

// HalfEdges returns the face's half-edges in cyclic order, starting at
// f.Edge.
func (f *Face[T, Meta]) HalfEdges() []*HalfEdge[T, Meta] {
	var out []*HalfEdge[T, Meta]
	start := f.Edge
	e := start
	for {
		out = append(out, e)
		e = e.Next
		if e == start {
			break
		}
	}
	return out
}

// Vertices returns the face's vertices in the same cyclic order as
// HalfEdges.
func (f *Face[T, Meta]) Vertices() []*Vertex[T, Meta] {
	edges := f.HalfEdges()
	out := make([]*Vertex[T, Meta], len(edges))
	for i, e := range edges {
		out[i] = e.Origin
	}
	return out
}

// Mesh owns every Vertex, HalfEdge, and Face of a watertight (ideally)
// triangulated surface.
type Mesh[T vec3.Real, Meta any] struct {
	Vertices []*Vertex[T, Meta]
	Edges    []*HalfEdge[T, Meta]
	Faces    []*Face[T, Meta]
}

// Bounds returns the axis-aligned bound of every vertex position in the mesh.
func (m *Mesh[T, Meta]) Bounds() (lo, hi vec3.Vec[T]) {
	if len(m.Vertices) == 0 {
		return vec3.Zero[T](), vec3.Zero[T]()
	}
	lo, hi = vec3.Min[T](), vec3.Max[T]()
	for _, v := range m.Vertices {
		lo = lo.Min(v.Position)
		hi = hi.Max(v.Position)
	}
	return lo, hi
}
