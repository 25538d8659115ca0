// Package bvh implements a generic bounding-volume hierarchy over
// heterogeneous primitives, parameterized by scalar type T, primitive type
// P, and bounding-volume type BV. Branching factor K is carried as a
// runtime field rather than a type parameter, since Go generics have no
// value-level (non-type) parameters the way C++ templates do; see
// DESIGN.md for the corresponding Open Question resolution.
//
// Two representations are provided: BuildNode, a pointer-based tree built
// either top-down (recursive chunk partition) or bottom-up (space-filling
// curve sort), and LinearBVH, a flattened depth-first layout better suited
// to the many read-only queries performed once a tree is built. Both share
// a single generic Traverse implementation driven by four callbacks
// (metaUpdater, visiter, sorter, updater) — the one abstraction spec calls
// out as reusable across nearest-point search, k-nearest, intersection
// tests, and accelerated CSG union.
package bvh

import "github.com/cutcellgeo/ebgeometry/vec3"
import "github.com/cutcellgeo/ebgeometry/bv"

// Strategy selects the BVH construction algorithm.
type Strategy int

const (
	// TopDown recursively partitions primitives into K chunks along the
	// axis of maximum centroid extent.
	TopDown Strategy = iota
	// Morton builds bottom-up from Z-order (Morton) codes of primitive
	// centroids.
	Morton
	// Nested builds bottom-up from nested (block-index) codes of
	// primitive centroids.
	Nested
)

func (s Strategy) String() string {
	switch s {
	case TopDown:
		return "TopDown"
	case Morton:
		return "Morton"
	case Nested:
		return "Nested"
	default:
		return "Unknown"
	}
}

// Item pairs a primitive with its bounding volume.
type Item[T vec3.Real, P any, BV bv.Bound[T]] struct {
	Prim  P
	Bound BV
}

// StopPredicate lets a caller force a node to become a leaf before the
// default "fewer than K primitives" termination is reached.
type StopPredicate[T vec3.Real, P any, BV bv.Bound[T]] func(items []Item[T, P, BV]) bool

// node is the shape both BuildNode and the LinearBVH's node view must
// satisfy for the shared Traverse implementation below.
type node[T vec3.Real, P any, BV bv.Bound[T]] interface {
	IsLeaf() bool
	Bound() BV
	Primitives() []Item[T, P, BV]
	NumChildren() int
	Child(i int) node[T, P, BV]
}

// MetaUpdater computes node-local traversal data from a node's bound —
// typically the distance from the query point to the bound.
type MetaUpdater[T vec3.Real, BV bv.Bound[T], M any] func(b BV) M

// Visiter decides whether to descend into (or accept the primitives of) a
// node, given its bound and the meta computed for it.
type Visiter[BV any, M any] func(b BV, m M) bool

// Updater is called with a leaf's primitives once the leaf passes Visiter.
type Updater[T vec3.Real, P any, BV bv.Bound[T]] func(items []Item[T, P, BV])

// ChildEntry is one interior node's child, paired with its freshly computed
// meta, as seen by a Sorter.
type ChildEntry[T vec3.Real, P any, BV bv.Bound[T], M any] struct {
	Bound BV
	Meta  M
	node  node[T, P, BV]
}

// Sorter reorders an interior node's children before they are pushed onto
// the traversal stack. Because the stack pops last-pushed-first, a sorter
// that puts the most promising child last makes it the first one visited.
type Sorter[T vec3.Real, P any, BV bv.Bound[T], M any] func(children []ChildEntry[T, P, BV, M]) []ChildEntry[T, P, BV, M]

// traverse is the single iterative, stack-based, depth-first walk shared by
// BuildNode and LinearBVH.
func traverse[T vec3.Real, P any, BV bv.Bound[T], M any](
	root node[T, P, BV],
	metaUpdater MetaUpdater[T, BV, M],
	visiter Visiter[BV, M],
	sorter Sorter[T, P, BV, M],
	updater Updater[T, P, BV],
) {
	type stackEntry struct {
		n    node[T, P, BV]
		meta M
	}

	stack := []stackEntry{{root, metaUpdater(root.Bound())}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visiter(top.n.Bound(), top.meta) {
			continue
		}

		if top.n.IsLeaf() {
			updater(top.n.Primitives())
			continue
		}

		n := top.n.NumChildren()
		entries := make([]ChildEntry[T, P, BV, M], 0, n)
		for i := 0; i < n; i++ {
			c := top.n.Child(i)
			entries = append(entries, ChildEntry[T, P, BV, M]{
				Bound: c.Bound(),
				Meta:  metaUpdater(c.Bound()),
				node:  c,
			})
		}
		if sorter != nil {
			entries = sorter(entries)
		}
		for _, e := range entries {
			stack = append(stack, stackEntry{e.node, e.Meta})
		}
	}
}
