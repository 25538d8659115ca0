package bvh

import (
	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// LinearRecord is one flattened BVH node: a leaf if NumPrimitives > 0, an
// interior node otherwise.
type LinearRecord[T vec3.Real, BV bv.Bound[T]] struct {
	Bound             BV
	PrimitivesOffset  int
	NumPrimitives     int
	ChildOffsets      []int
}

// LinearBVH is the depth-first-linearised, cache-friendly form of a
// BuildNode tree: a flat array of records plus a flat array of primitives
// reordered into leaf-visit order.
type LinearBVH[T vec3.Real, P any, BV bv.Bound[T]] struct {
	Records    []LinearRecord[T, BV]
	Primitives []Item[T, P, BV]
	k          int
}

// Flatten walks root in depth-first order and emits the corresponding
// LinearBVH. An unpartitioned root flattens as a single leaf record (the
// Open Question spec leaves undocumented: flatten on a build tree that was
// never partitioned).
func Flatten[T vec3.Real, P any, BV bv.Bound[T]](root *BuildNode[T, P, BV]) *LinearBVH[T, P, BV] {
	lb := &LinearBVH[T, P, BV]{k: root.k}
	flattenNode(root, lb)
	return lb
}

// flattenNode appends root's subtree to lb and returns root's record index.
func flattenNode[T vec3.Real, P any, BV bv.Bound[T]](n *BuildNode[T, P, BV], lb *LinearBVH[T, P, BV]) int {
	idx := len(lb.Records)
	lb.Records = append(lb.Records, LinearRecord[T, BV]{Bound: n.enclosing})

	if n.IsLeaf() {
		offset := len(lb.Primitives)
		lb.Primitives = append(lb.Primitives, n.items...)
		lb.Records[idx].PrimitivesOffset = offset
		lb.Records[idx].NumPrimitives = len(n.items)
		return idx
	}

	childOffsets := make([]int, 0, len(n.children))
	for _, c := range n.children {
		childIdx := flattenNode(c, lb)
		childOffsets = append(childOffsets, childIdx)
	}
	lb.Records[idx].ChildOffsets = childOffsets
	return idx
}

// linearNodeView adapts one record of a LinearBVH to the shared node
// interface used by traverse.
type linearNodeView[T vec3.Real, P any, BV bv.Bound[T]] struct {
	tree *LinearBVH[T, P, BV]
	idx  int
}

func (v linearNodeView[T, P, BV]) IsLeaf() bool {
	return v.tree.Records[v.idx].NumPrimitives > 0 || len(v.tree.Records[v.idx].ChildOffsets) == 0
}

func (v linearNodeView[T, P, BV]) Bound() BV {
	return v.tree.Records[v.idx].Bound
}

func (v linearNodeView[T, P, BV]) Primitives() []Item[T, P, BV] {
	r := v.tree.Records[v.idx]
	return v.tree.Primitives[r.PrimitivesOffset : r.PrimitivesOffset+r.NumPrimitives]
}

func (v linearNodeView[T, P, BV]) NumChildren() int {
	return len(v.tree.Records[v.idx].ChildOffsets)
}

func (v linearNodeView[T, P, BV]) Child(i int) node[T, P, BV] {
	return linearNodeView[T, P, BV]{tree: v.tree, idx: v.tree.Records[v.idx].ChildOffsets[i]}
}

// TraverseLinear walks a LinearBVH iteratively and depth-first, driven by
// the four callbacks described in package bvh's doc comment.
func TraverseLinear[T vec3.Real, P any, BV bv.Bound[T], Meta any](
	root *LinearBVH[T, P, BV],
	metaUpdater MetaUpdater[T, BV, Meta],
	visiter Visiter[BV, Meta],
	sorter Sorter[T, P, BV, Meta],
	updater Updater[T, P, BV],
) {
	traverse[T, P, BV, Meta](linearNodeView[T, P, BV]{tree: root, idx: 0}, metaUpdater, visiter, sorter, updater)
}
