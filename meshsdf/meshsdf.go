// Package meshsdf adapts a dcel.Mesh into an implicit.Function, in three
// forms of increasing query speed (spec 4.9): MeshSDF (brute-force, wraps
// Mesh.SignedDistance directly), FastMeshSDF (BVH-over-faces, nearest-face
// first), and FastCompactMeshSDF (BVH over a flattened LinearBVH, the form
// meant for long-lived read-only queries). FastMeshSDF additionally exposes
// a k-nearest-faces query, backed by a github.com/dhconnelly/rtreego index
// built alongside its BVH (rtreego ships a tuned k-nearest routine, and a
// second index over the same immutable face set is cheap to build once per
// mesh), and a pairwise face/face intersection query that reuses the BVH
// directly rather than a separate spatial index.
package meshsdf

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/bvh"
	"github.com/cutcellgeo/ebgeometry/dcel"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// MeshSDF is the baseline O(faces) adapter: value(p) = mesh.SignedDistance(p).
type MeshSDF[T vec3.Real, Meta any] struct {
	Mesh *dcel.Mesh[T, Meta]
}

func (m MeshSDF[T, Meta]) Value(p vec3.Vec[T]) T {
	return m.Mesh.SignedDistance(p)
}

// faceBound computes a face's conservative AABB bound from its vertex
// positions, to drive the accelerated forms below.
func faceBound[T vec3.Real, Meta any](f *dcel.Face[T, Meta]) bv.AABB[T] {
	verts := f.Vertices()
	lo, hi := verts[0].Position, verts[0].Position
	for _, v := range verts[1:] {
		lo = lo.Min(v.Position)
		hi = hi.Max(v.Position)
	}
	return bv.AABB[T]{Lo: lo, Hi: hi}
}

// FaceFaceTest decides whether a candidate pair of bound-overlapping faces
// counts as a genuine intersection. Bounding-box overlap only narrows the
// candidate set down; the exact test (triangle/triangle, coplanar overlap,
// ...) is the caller's to supply.
type FaceFaceTest[T vec3.Real, Meta any] func(a, b *dcel.Face[T, Meta]) bool

// FacePair is one confirmed intersecting pair: A from the mesh
// IntersectingFaces was called on, B from the mesh it was compared against.
type FacePair[T vec3.Real, Meta any] struct {
	A, B *dcel.Face[T, Meta]
}

// faceSpatial adapts a *dcel.Face to rtreego.Spatial so it can be indexed
// in an rtreego.Rtree.
type faceSpatial[T vec3.Real, Meta any] struct {
	face *dcel.Face[T, Meta]
	rect rtreego.Rect
}

func (s faceSpatial[T, Meta]) Bounds() rtreego.Rect { return s.rect }

// minRectSpan is the smallest side length rtreego.NewRect accepts; a
// perfectly flat face (zero-thickness along the axis it's coplanar with)
// gets inflated to this instead of being rejected.
const minRectSpan = 1e-9

func newFaceSpatial[T vec3.Real, Meta any](f *dcel.Face[T, Meta]) faceSpatial[T, Meta] {
	b := faceBound[T, Meta](f)
	lo, hi := b.Lo, b.Hi
	lengths := []float64{
		math.Max(float64(hi.X-lo.X), minRectSpan),
		math.Max(float64(hi.Y-lo.Y), minRectSpan),
		math.Max(float64(hi.Z-lo.Z), minRectSpan),
	}
	rect, _ := rtreego.NewRect(rtreego.Point{float64(lo.X), float64(lo.Y), float64(lo.Z)}, lengths)
	return faceSpatial[T, Meta]{face: f, rect: rect}
}

func buildFaceRtree[T vec3.Real, Meta any](faces []*dcel.Face[T, Meta]) *rtreego.Rtree {
	tree := rtreego.NewTree(3, 2, 8)
	for _, f := range faces {
		tree.Insert(newFaceSpatial[T, Meta](f))
	}
	return tree
}

// FastMeshSDF accelerates MeshSDF with a pointer-based BVH over faces,
// visiting faces in the order nearest-bound-first so the running best
// magnitude prunes far subtrees (spec 4.9, "nearest face first"). It also
// carries an rtreego index over the same faces, built once in
// NewFastMeshSDF, for KNearestFaces.
type FastMeshSDF[T vec3.Real, Meta any] struct {
	tree   *bvh.BuildNode[T, *dcel.Face[T, Meta], bv.AABB[T]]
	rindex *rtreego.Rtree
}

// NewFastMeshSDF builds a FastMeshSDF over mesh's faces with branching
// factor k.
func NewFastMeshSDF[T vec3.Real, Meta any](mesh *dcel.Mesh[T, Meta], k int, strategy bvh.Strategy) FastMeshSDF[T, Meta] {
	items := make([]bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]], len(mesh.Faces))
	for i, f := range mesh.Faces {
		items[i] = bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]{Prim: f, Bound: faceBound[T, Meta](f)}
	}
	root, _ := bvh.New[T, *dcel.Face[T, Meta], bv.AABB[T]](items, k, strategy, nil)
	return FastMeshSDF[T, Meta]{tree: root, rindex: buildFaceRtree[T, Meta](mesh.Faces)}
}

func (m FastMeshSDF[T, Meta]) Value(p vec3.Vec[T]) T {
	best := T(math.Inf(1))

	metaUpdater := func(b bv.AABB[T]) T { return b.Distance(p) }
	visiter := func(b bv.AABB[T], bvDist T) bool {
		return bvDist <= absT(best)
	}
	sorter := func(children []bvh.ChildEntry[T, *dcel.Face[T, Meta], bv.AABB[T], T]) []bvh.ChildEntry[T, *dcel.Face[T, Meta], bv.AABB[T], T] {
		sortFarthestFirst(children)
		return children
	}
	updater := func(items []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]) {
		for _, it := range items {
			d := it.Prim.SignedDistance(p)
			if absT(d) < absT(best) {
				best = d
			}
		}
	}

	bvh.TraverseBuild[T, *dcel.Face[T, Meta], bv.AABB[T], T](m.tree, metaUpdater, visiter, sorter, updater)
	return best
}

// KNearestFaces returns the k faces whose bounding boxes are nearest to p,
// ordered nearest first, using the rtreego index built alongside m's BVH.
func (m *FastMeshSDF[T, Meta]) KNearestFaces(p vec3.Vec[T], k int) []*dcel.Face[T, Meta] {
	pt := rtreego.Point{float64(p.X), float64(p.Y), float64(p.Z)}
	results := m.rindex.NearestNeighbors(k, pt)
	out := make([]*dcel.Face[T, Meta], 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, r.(faceSpatial[T, Meta]).face)
	}
	return out
}

// IntersectingFaces pairs every face of m against other's faces whose
// bounding boxes overlap, keeping the pairs where test(a, b) holds. m's own
// BVH drives the outer walk (via allFaces) and other's BVH prunes the inner
// search per candidate face, so the query reuses both meshes' existing
// trees instead of building a third structure. Self-intersection detection
// is the case other == m; pairs with a == b are skipped in that case.
func (m *FastMeshSDF[T, Meta]) IntersectingFaces(other *FastMeshSDF[T, Meta], test FaceFaceTest[T, Meta]) []FacePair[T, Meta] {
	self := other.tree == m.tree
	var pairs []FacePair[T, Meta]

	for _, itA := range allFaces(m.tree) {
		faceA, boundA := itA.Prim, itA.Bound

		metaUpdater := func(b bv.AABB[T]) bool { return b.Intersects(boundA) }
		visiter := func(_ bv.AABB[T], hit bool) bool { return hit }
		updater := func(items []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]) {
			for _, itB := range items {
				faceB := itB.Prim
				if self && faceA == faceB {
					continue
				}
				if !itB.Bound.Intersects(boundA) {
					continue
				}
				if test(faceA, faceB) {
					pairs = append(pairs, FacePair[T, Meta]{A: faceA, B: faceB})
				}
			}
		}

		bvh.TraverseBuild[T, *dcel.Face[T, Meta], bv.AABB[T], bool](other.tree, metaUpdater, visiter, nil, updater)
	}
	return pairs
}

// allFaces walks tree unconditionally and returns every item it owns, for
// callers (IntersectingFaces) that need the full face/bound list rather
// than a pruned traversal.
func allFaces[T vec3.Real, Meta any](tree *bvh.BuildNode[T, *dcel.Face[T, Meta], bv.AABB[T]]) []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]] {
	var out []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]
	metaUpdater := func(b bv.AABB[T]) struct{} { return struct{}{} }
	visiter := func(_ bv.AABB[T], _ struct{}) bool { return true }
	updater := func(items []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]) {
		out = append(out, items...)
	}
	bvh.TraverseBuild[T, *dcel.Face[T, Meta], bv.AABB[T], struct{}](tree, metaUpdater, visiter, nil, updater)
	return out
}

// FastCompactMeshSDF is FastMeshSDF over a flattened LinearBVH, the form
// meant for a tree built once and queried many times.
type FastCompactMeshSDF[T vec3.Real, Meta any] struct {
	tree   *bvh.LinearBVH[T, *dcel.Face[T, Meta], bv.AABB[T]]
	rindex *rtreego.Rtree
}

// NewFastCompactMeshSDF flattens a FastMeshSDF's build tree and carries its
// rtreego index forward unchanged.
func NewFastCompactMeshSDF[T vec3.Real, Meta any](mesh *dcel.Mesh[T, Meta], k int, strategy bvh.Strategy) FastCompactMeshSDF[T, Meta] {
	fast := NewFastMeshSDF(mesh, k, strategy)
	return FastCompactMeshSDF[T, Meta]{tree: bvh.Flatten(fast.tree), rindex: fast.rindex}
}

func (m FastCompactMeshSDF[T, Meta]) Value(p vec3.Vec[T]) T {
	best := T(math.Inf(1))

	metaUpdater := func(b bv.AABB[T]) T { return b.Distance(p) }
	visiter := func(b bv.AABB[T], bvDist T) bool {
		return bvDist <= absT(best)
	}
	sorter := func(children []bvh.ChildEntry[T, *dcel.Face[T, Meta], bv.AABB[T], T]) []bvh.ChildEntry[T, *dcel.Face[T, Meta], bv.AABB[T], T] {
		sortFarthestFirst(children)
		return children
	}
	updater := func(items []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]) {
		for _, it := range items {
			d := it.Prim.SignedDistance(p)
			if absT(d) < absT(best) {
				best = d
			}
		}
	}

	bvh.TraverseLinear[T, *dcel.Face[T, Meta], bv.AABB[T], T](m.tree, metaUpdater, visiter, sorter, updater)
	return best
}

// KNearestFaces mirrors FastMeshSDF.KNearestFaces, over the rtreego index
// carried forward from the build tree this compact form was flattened from.
func (m *FastCompactMeshSDF[T, Meta]) KNearestFaces(p vec3.Vec[T], k int) []*dcel.Face[T, Meta] {
	pt := rtreego.Point{float64(p.X), float64(p.Y), float64(p.Z)}
	results := m.rindex.NearestNeighbors(k, pt)
	out := make([]*dcel.Face[T, Meta], 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, r.(faceSpatial[T, Meta]).face)
	}
	return out
}

// IntersectingFaces mirrors FastMeshSDF.IntersectingFaces, driving the
// flattened LinearBVH instead of the pointer build tree.
func (m *FastCompactMeshSDF[T, Meta]) IntersectingFaces(other *FastCompactMeshSDF[T, Meta], test FaceFaceTest[T, Meta]) []FacePair[T, Meta] {
	self := other.tree == m.tree
	var pairs []FacePair[T, Meta]

	for _, itA := range allFacesLinear(m.tree) {
		faceA, boundA := itA.Prim, itA.Bound

		metaUpdater := func(b bv.AABB[T]) bool { return b.Intersects(boundA) }
		visiter := func(_ bv.AABB[T], hit bool) bool { return hit }
		updater := func(items []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]) {
			for _, itB := range items {
				faceB := itB.Prim
				if self && faceA == faceB {
					continue
				}
				if !itB.Bound.Intersects(boundA) {
					continue
				}
				if test(faceA, faceB) {
					pairs = append(pairs, FacePair[T, Meta]{A: faceA, B: faceB})
				}
			}
		}

		bvh.TraverseLinear[T, *dcel.Face[T, Meta], bv.AABB[T], bool](other.tree, metaUpdater, visiter, nil, updater)
	}
	return pairs
}

func allFacesLinear[T vec3.Real, Meta any](tree *bvh.LinearBVH[T, *dcel.Face[T, Meta], bv.AABB[T]]) []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]] {
	var out []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]
	metaUpdater := func(b bv.AABB[T]) struct{} { return struct{}{} }
	visiter := func(_ bv.AABB[T], _ struct{}) bool { return true }
	updater := func(items []bvh.Item[T, *dcel.Face[T, Meta], bv.AABB[T]]) {
		out = append(out, items...)
	}
	bvh.TraverseLinear[T, *dcel.Face[T, Meta], bv.AABB[T], struct{}](tree, metaUpdater, visiter, nil, updater)
	return out
}

func sortFarthestFirst[T vec3.Real, Meta any](children []bvh.ChildEntry[T, *dcel.Face[T, Meta], bv.AABB[T], T]) {
	for i := 1; i < len(children); i++ {
		for j := i; j > 0 && children[j].Meta > children[j-1].Meta; j-- {
			children[j], children[j-1] = children[j-1], children[j]
		}
	}
}

func absT[T vec3.Real](a T) T {
	if a < 0 {
		return -a
	}
	return a
}
