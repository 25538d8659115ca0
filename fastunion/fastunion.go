// Package fastunion implements the BVH-accelerated CSG union over many
// implicit-function primitives (spec 4.7): FastUnionIF and
// FastSmoothUnionIF, both built over a bvh.LinearBVH keyed by each
// primitive's bounding volume.
package fastunion

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/bvh"
	"github.com/cutcellgeo/ebgeometry/csg"
	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/implicit"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// Primitive pairs an implicit-function primitive with a conservative bound
// the BVH can prune against. Per spec 9's Open Question, the bound must
// conservatively enclose the primitive's zero set (and, for a transform or
// smoothed node, its transformed/smoothed surface) — the core does not
// verify this.
type Primitive[T vec3.Real] struct {
	Func  implicit.Function[T]
	Bound bv.Bound[T]
}

// FastUnionIF is the BVH-accelerated N-ary union over primitives: value(p)
// = min_i primitives[i].Func(p), computed without necessarily evaluating
// every primitive.
type FastUnionIF[T vec3.Real] struct {
	tree *bvh.LinearBVH[T, Primitive[T], bv.Bound[T]]
}

// New builds a FastUnionIF over primitives with branching factor k using
// strategy.
func New[T vec3.Real](primitives []Primitive[T], k int, strategy bvh.Strategy) (*FastUnionIF[T], diag.Report) {
	items := make([]bvh.Item[T, Primitive[T], bv.Bound[T]], len(primitives))
	for i, p := range primitives {
		items[i] = bvh.Item[T, Primitive[T], bv.Bound[T]]{Prim: p, Bound: p.Bound}
	}
	root, report := bvh.New[T, Primitive[T], bv.Bound[T]](items, k, strategy, nil)
	return &FastUnionIF[T]{tree: bvh.Flatten(root)}, report
}

// Value implements spec 4.7's accelerated union query: the visit predicate
// keeps a subtree if the query point lies inside its bound (bvDist <= 0,
// since a closer primitive could still lie on the far side of that
// subtree) or if the subtree's bound distance is no worse than the best
// value found so far (ordinary spatial pruning). Children are sorted
// farthest-first so the traversal stack visits the nearest child first,
// tightening bestSoFar quickly.
func (u *FastUnionIF[T]) Value(p vec3.Vec[T]) T {
	bestSoFar := T(math.Inf(1))

	metaUpdater := func(b bv.Bound[T]) T { return b.Distance(p) }
	visiter := func(b bv.Bound[T], bvDist T) bool {
		return bvDist <= 0 || bvDist <= bestSoFar
	}
	sorter := func(children []bvh.ChildEntry[T, Primitive[T], bv.Bound[T], T]) []bvh.ChildEntry[T, Primitive[T], bv.Bound[T], T] {
		sortFarthestFirst(children)
		return children
	}
	updater := func(items []bvh.Item[T, Primitive[T], bv.Bound[T]]) {
		for _, it := range items {
			v := it.Prim.Func.Value(p)
			if v < bestSoFar {
				bestSoFar = v
			}
		}
	}

	bvh.TraverseLinear[T, Primitive[T], bv.Bound[T], T](u.tree, metaUpdater, visiter, sorter, updater)
	return bestSoFar
}

func sortFarthestFirst[T vec3.Real](children []bvh.ChildEntry[T, Primitive[T], bv.Bound[T], T]) {
	// Simple insertion sort: children counts are small (the branching
	// factor K), so this is cheaper than paying for sort.Slice's overhead
	// on every node visited.
	for i := 1; i < len(children); i++ {
		for j := i; j > 0 && children[j].Meta > children[j-1].Meta; j-- {
			children[j], children[j-1] = children[j-1], children[j]
		}
	}
}

// FastSmoothUnionIF tracks the two smallest values across the entire
// traversal (spec 4.7 paragraph 2) and returns their smooth-min at the end.
// The visit predicate keeps a subtree whose bound distance is no worse than
// either of the two smallest distances found so far.
type FastSmoothUnionIF[T vec3.Real] struct {
	tree *bvh.LinearBVH[T, Primitive[T], bv.Bound[T]]
	S    T
	Kind csg.SmoothKind
}

// NewSmooth builds a FastSmoothUnionIF over primitives with branching
// factor k, smoothing length s, and smooth-min kind.
func NewSmooth[T vec3.Real](primitives []Primitive[T], k int, strategy bvh.Strategy, s T, kind csg.SmoothKind) (*FastSmoothUnionIF[T], diag.Report) {
	items := make([]bvh.Item[T, Primitive[T], bv.Bound[T]], len(primitives))
	for i, p := range primitives {
		items[i] = bvh.Item[T, Primitive[T], bv.Bound[T]]{Prim: p, Bound: p.Bound}
	}
	root, report := bvh.New[T, Primitive[T], bv.Bound[T]](items, k, strategy, nil)
	return &FastSmoothUnionIF[T]{tree: bvh.Flatten(root), S: s, Kind: kind}, report
}

func (u *FastSmoothUnionIF[T]) Value(p vec3.Vec[T]) T {
	a, b := T(math.Inf(1)), T(math.Inf(1))

	metaUpdater := func(bound bv.Bound[T]) T { return bound.Distance(p) }
	visiter := func(bound bv.Bound[T], bvDist T) bool {
		return bvDist <= 0 || bvDist <= a || bvDist <= b
	}
	sorter := func(children []bvh.ChildEntry[T, Primitive[T], bv.Bound[T], T]) []bvh.ChildEntry[T, Primitive[T], bv.Bound[T], T] {
		sortFarthestFirst(children)
		return children
	}
	updater := func(items []bvh.Item[T, Primitive[T], bv.Bound[T]]) {
		for _, it := range items {
			v := it.Prim.Func.Value(p)
			switch {
			case v < a:
				b = a
				a = v
			case v < b:
				b = v
			}
		}
	}

	bvh.TraverseLinear[T, Primitive[T], bv.Bound[T], T](u.tree, metaUpdater, visiter, sorter, updater)
	return csg.SmoothMin(a, b, u.S, u.Kind)
}
