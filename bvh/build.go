package bvh

import (
	"sort"

	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/sfc"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// BuildNode is the pointer-based BVH build tree. A leaf owns a list of
// (primitive, bound) Items; an interior node owns K children and the union
// bound of their subtrees.
type BuildNode[T vec3.Real, P any, BV bv.Bound[T]] struct {
	enclosing   BV
	k           int
	partitioned bool
	items       []Item[T, P, BV]
	children    []*BuildNode[T, P, BV]
}

// Bound returns the node's own bounding volume.
func (n *BuildNode[T, P, BV]) Bound() BV { return n.enclosing }

// IsLeaf reports whether n owns primitives directly rather than children.
func (n *BuildNode[T, P, BV]) IsLeaf() bool { return !n.partitioned }

// Partitioned reports whether the build ever attempted to split this node.
// A node built from fewer than K items, or where the caller's StopPredicate
// fired, is a leaf with Partitioned() == false.
func (n *BuildNode[T, P, BV]) Partitioned() bool { return n.partitioned }

// Primitives returns the leaf's items. Calling this on an interior node
// returns nil.
func (n *BuildNode[T, P, BV]) Primitives() []Item[T, P, BV] { return n.items }

// NumChildren returns the number of children (0 for a leaf).
func (n *BuildNode[T, P, BV]) NumChildren() int { return len(n.children) }

// Child returns the i-th child as the shared node interface, so it can
// participate in Traverse.
func (n *BuildNode[T, P, BV]) Child(i int) node[T, P, BV] { return n.children[i] }

// ChildAt returns the i-th child's concrete *BuildNode.
func (n *BuildNode[T, P, BV]) ChildAt(i int) *BuildNode[T, P, BV] { return n.children[i] }

// TraverseBuild walks a build tree iteratively and depth-first, driven by
// the four callbacks described in package bvh's doc comment. Go methods
// cannot introduce a type parameter of their own (the Meta type here), so
// traversal is a package-level function rather than a *BuildNode method.
func TraverseBuild[T vec3.Real, P any, BV bv.Bound[T], Meta any](
	root *BuildNode[T, P, BV],
	metaUpdater MetaUpdater[T, BV, Meta],
	visiter Visiter[BV, Meta],
	sorter Sorter[T, P, BV, Meta],
	updater Updater[T, P, BV],
) {
	traverse[T, P, BV, Meta](root, metaUpdater, visiter, sorter, updater)
}

func enclose[T vec3.Real, P any, BV bv.Bound[T]](items []Item[T, P, BV]) BV {
	result := items[0].Bound
	for _, it := range items[1:] {
		result = result.Union(it.Bound).(BV)
	}
	return result
}

// New builds a BVH over items with branching factor k using strategy. stop
// may be nil. The returned Report carries any ConfigError/EmptyInput
// diagnostics raised during the build; it never aborts construction.
func New[T vec3.Real, P any, BV bv.Bound[T]](
	items []Item[T, P, BV],
	k int,
	strategy Strategy,
	stop StopPredicate[T, P, BV],
) (*BuildNode[T, P, BV], diag.Report) {
	var report diag.Report
	if len(items) == 0 {
		report.Add(diag.EmptyInput, "bvh: New called with zero items")
		return &BuildNode[T, P, BV]{k: k}, report
	}
	if k < 2 {
		report.Add(diag.ConfigError, "bvh: branching factor %d < 2, clamping to 2", k)
		k = 2
	}
	if len(items) < k {
		report.Add(diag.EmptyInput, "bvh: New called with %d items, fewer than K=%d, forming a single leaf", len(items), k)
		return leaf(items, k), report
	}

	switch strategy {
	case TopDown:
		root := buildTopDown(items, k, stop, &report)
		return root, report
	case Morton:
		root := buildBottomUp(items, k, sfc.Morton.Encode, &report)
		return root, report
	case Nested:
		root := buildBottomUp(items, k, sfc.Nested.Encode, &report)
		return root, report
	default:
		report.Add(diag.ConfigError, "bvh: unknown build strategy %v, falling back to TopDown", strategy)
		root := buildTopDown(items, k, stop, &report)
		return root, report
	}
}

func leaf[T vec3.Real, P any, BV bv.Bound[T]](items []Item[T, P, BV], k int) *BuildNode[T, P, BV] {
	return &BuildNode[T, P, BV]{
		enclosing:   enclose(items),
		k:           k,
		partitioned: false,
		items:       items,
	}
}

func buildTopDown[T vec3.Real, P any, BV bv.Bound[T]](
	items []Item[T, P, BV], k int, stop StopPredicate[T, P, BV], report *diag.Report,
) *BuildNode[T, P, BV] {
	if len(items) < k {
		return leaf(items, k)
	}
	if stop != nil && stop(items) {
		return leaf(items, k)
	}

	// Widest centroid-extent axis.
	lo, hi := vec3.Min[T](), vec3.Max[T]()
	for _, it := range items {
		c := it.Bound.Centroid()
		lo = lo.Min(c)
		hi = hi.Max(c)
	}
	axis := hi.Sub(lo).MaxDir(true)

	sorted := make([]Item[T, P, BV], len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Bound.Centroid().Component(axis) < sorted[j].Bound.Centroid().Component(axis)
	})

	chunks := splitChunks(sorted, k)

	node := &BuildNode[T, P, BV]{k: k, partitioned: true}
	node.children = make([]*BuildNode[T, P, BV], 0, len(chunks))
	bounds := make([]BV, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		child := buildTopDown(chunk, k, stop, report)
		node.children = append(node.children, child)
		bounds = append(bounds, child.enclosing)
	}
	node.enclosing = encloseBounds[T, BV](bounds)
	return node
}

// splitChunks splits sorted into K contiguous ranges of size ceil(n/K) or
// floor(n/K), with remainder distributed to the earliest chunks.
func splitChunks[T vec3.Real, P any, BV bv.Bound[T]](sorted []Item[T, P, BV], k int) [][]Item[T, P, BV] {
	n := len(sorted)
	base := n / k
	rem := n % k
	chunks := make([][]Item[T, P, BV], k)
	idx := 0
	for i := 0; i < k; i++ {
		size := base
		if i < rem {
			size++
		}
		chunks[i] = sorted[idx : idx+size]
		idx += size
	}
	return chunks
}

func encloseBounds[T vec3.Real, BV bv.Bound[T]](bounds []BV) BV {
	result := bounds[0]
	for _, b := range bounds[1:] {
		result = result.Union(b).(BV)
	}
	return result
}
