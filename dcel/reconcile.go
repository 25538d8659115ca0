package dcel

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/polygon2d"
	"github.com/cutcellgeo/ebgeometry/vec2"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// degenerateCrossEpsilon is the squared-length threshold below which a
// candidate face-normal cross product is treated as degenerate.
const degenerateCrossEpsilon = 1e-20

// reconcile computes, in order, every cached quantity that depends on a
// prior one: face normal/centroid/area/projection, then edge normal
// (depends on face normals), then vertex normal (depends on face normals
// and, for AngleWeighted, on subtended angles computed from face geometry).
func reconcile[T vec3.Real, Meta any](mesh *Mesh[T, Meta], cfg options, report *diag.Report) {
	for _, f := range mesh.Faces {
		reconcileFace(f, cfg, report)
	}
	for _, e := range mesh.Edges {
		reconcileEdgeNormal(e, report)
	}
	for _, v := range mesh.Vertices {
		reconcileVertexNormal(v, cfg)
	}
}

func reconcileFace[T vec3.Real, Meta any](f *Face[T, Meta], cfg options, report *diag.Report) {
	verts := f.Vertices()
	f.Normal = faceNormal(verts, report)

	var centroid vec3.Vec[T]
	for _, v := range verts {
		centroid = centroid.Add(v.Position)
	}
	centroid = centroid.Div(T(len(verts)))
	f.Centroid = centroid

	f.Area = polygonArea(verts, f.Normal)

	f.ProjAxis = f.Normal.MaxDir(true)
	f.Proj = polygon2d.Projection[T]{Vertices: projectVertices(verts, f.ProjAxis)}
	f.Algorithm = cfg.polygonAlgo
}

// faceNormal finds any three consecutive facet vertices whose cross
// product is non-degenerate and returns its normalized value (spec 4.4
// "Face normal").
func faceNormal[T vec3.Real, Meta any](verts []*Vertex[T, Meta], report *diag.Report) vec3.Vec[T] {
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i].Position
		b := verts[(i+1)%n].Position
		c := verts[(i+2)%n].Position
		cross := b.Sub(a).Cross(c.Sub(a))
		if float64(cross.LengthSquared()) > degenerateCrossEpsilon {
			return cross.Normalize()
		}
	}
	if report != nil {
		report.Add(diag.NumericEdge, "dcel: face has no non-degenerate vertex triple, normal set to zero")
	}
	return vec3.Zero[T]()
}

// polygonArea computes a planar polygon's area via a centroid fan of
// cross products projected onto normal.
func polygonArea[T vec3.Real, Meta any](verts []*Vertex[T, Meta], normal vec3.Vec[T]) T {
	n := len(verts)
	if n < 3 {
		return 0
	}
	var centroid vec3.Vec[T]
	for _, v := range verts {
		centroid = centroid.Add(v.Position)
	}
	centroid = centroid.Div(T(n))

	var sum T
	for i := 0; i < n; i++ {
		a := verts[i].Position.Sub(centroid)
		b := verts[(i+1)%n].Position.Sub(centroid)
		sum += a.Cross(b).Dot(normal)
	}
	return sum / 2
}

// projectVertices drops the coordinate axis of the face normal's
// largest-magnitude component, retaining the other two (spec 4.5).
func projectVertices[T vec3.Real, Meta any](verts []*Vertex[T, Meta], dropAxis int) []vec2.Vec[T] {
	out := make([]vec2.Vec[T], len(verts))
	for i, v := range verts {
		out[i] = project2D(v.Position, dropAxis)
	}
	return out
}

func project2D[T vec3.Real](p vec3.Vec[T], dropAxis int) vec2.Vec[T] {
	switch dropAxis {
	case 0:
		return vec2.New(p.Y, p.Z)
	case 1:
		return vec2.New(p.X, p.Z)
	default:
		return vec2.New(p.X, p.Y)
	}
}

// reconcileEdgeNormal sets the cached edge normal as the average of the two
// incident face normals, normalized. An unpaired half-edge (non-watertight
// mesh) falls back to its own face's normal.
func reconcileEdgeNormal[T vec3.Real, Meta any](e *HalfEdge[T, Meta], report *diag.Report) {
	if e.Pair == nil {
		e.Normal = e.Face.Normal
		return
	}
	avg := e.Face.Normal.Add(e.Pair.Face.Normal).Normalize()
	e.Normal = avg
	e.Pair.Normal = avg
}

// reconcileVertexNormal computes the vertex pseudonormal: either the simple
// average of incident face normals, or the angle-weighted sum (spec 4.4,
// default).
func reconcileVertexNormal[T vec3.Real, Meta any](v *Vertex[T, Meta], cfg options) {
	if len(v.Faces) == 0 {
		v.Normal = vec3.Zero[T]()
		return
	}
	if cfg.normalMode == SimpleAverage {
		var sum vec3.Vec[T]
		for _, f := range v.Faces {
			sum = sum.Add(f.Normal)
		}
		v.Normal = sum.Normalize()
		return
	}

	var sum vec3.Vec[T]
	for _, f := range v.Faces {
		alpha := subtendedAngleAt(f, v)
		sum = sum.Add(f.Normal.Mul(T(alpha)))
	}
	v.Normal = sum.Normalize()
}

// subtendedAngleAt returns the angle face f subtends at vertex v: the angle
// between the two mesh edges of f meeting at v.
func subtendedAngleAt[T vec3.Real, Meta any](f *Face[T, Meta], v *Vertex[T, Meta]) float64 {
	edges := f.HalfEdges()
	n := len(edges)
	for i, e := range edges {
		if e.Origin != v {
			continue
		}
		prev := edges[(i-1+n)%n]
		a := prev.Origin.Position.Sub(v.Position)
		b := e.Next.Origin.Position.Sub(v.Position)
		cosTheta := float64(a.Dot(b)) / (float64(a.Length()) * float64(b.Length()))
		if cosTheta > 1 {
			cosTheta = 1
		}
		if cosTheta < -1 {
			cosTheta = -1
		}
		return math.Acos(cosTheta)
	}
	return 0
}
