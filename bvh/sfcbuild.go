package bvh

import (
	"sort"

	"github.com/cutcellgeo/ebgeometry/bv"
	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/sfc"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// buildBottomUp implements the one-pass SFC build: normalize centroids to
// the 21-bit grid, encode and sort, place consecutive chunks into leaves,
// then group K siblings into a parent level by level until a single root
// remains.
func buildBottomUp[T vec3.Real, P any, BV bv.Bound[T]](
	items []Item[T, P, BV], k int, encode func(sfc.Index, *diag.Report) sfc.Code, report *diag.Report,
) *BuildNode[T, P, BV] {
	n := len(items)
	if n < k {
		report.Add(diag.EmptyInput, "bvh: SFC build has %d items, fewer than K=%d, forming leaf", n, k)
		return leaf(items, k)
	}

	codes := gridCodes(items, encode, report)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return codes[order[i]] < codes[order[j]] })

	sorted := make([]Item[T, P, BV], n)
	for i, idx := range order {
		sorted[i] = items[idx]
	}

	// Choose the smallest depth such that each leaf chunk holds fewer than
	// K primitives, matching the top-down termination rule.
	depth := 0
	leafCount := 1
	for ceilDiv(n, leafCount) >= k {
		depth++
		leafCount *= k
	}
	leafSize := ceilDiv(n, leafCount)

	level := make([]*BuildNode[T, P, BV], 0, leafCount)
	for i := 0; i < leafCount; i++ {
		lo := i * leafSize
		if lo >= n {
			break
		}
		hi := lo + leafSize
		if hi > n {
			hi = n
		}
		level = append(level, leaf(sorted[lo:hi], k))
	}

	for d := depth; d > 0; d-- {
		parentCount := ceilDiv(len(level), k)
		next := make([]*BuildNode[T, P, BV], 0, parentCount)
		for g := 0; g < parentCount; g++ {
			lo := g * k
			hi := lo + k
			if hi > len(level) {
				hi = len(level)
			}
			children := level[lo:hi]
			bounds := make([]BV, len(children))
			for i, c := range children {
				bounds[i] = c.enclosing
			}
			next = append(next, &BuildNode[T, P, BV]{
				k:           k,
				partitioned: true,
				children:    children,
				enclosing:   encloseBounds[T, BV](bounds),
			})
		}
		level = next
	}

	return level[0]
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// gridCodes maps each item's centroid onto the 21-bit SFC grid (normalized
// against the centroid bounding box of all items) and encodes it.
func gridCodes[T vec3.Real, P any, BV bv.Bound[T]](
	items []Item[T, P, BV], encode func(sfc.Index, *diag.Report) sfc.Code, report *diag.Report,
) []sfc.Code {
	lo, hi := vec3.Min[T](), vec3.Max[T]()
	for _, it := range items {
		c := it.Bound.Centroid()
		lo = lo.Min(c)
		hi = hi.Max(c)
	}
	span := hi.Sub(lo)

	const gridMax = float64((1 << 21) - 1)
	codes := make([]sfc.Code, len(items))
	for i, it := range items {
		c := it.Bound.Centroid()
		idx := sfc.Index{
			X: normalizeAxis(float64(c.X), float64(lo.X), float64(span.X), gridMax),
			Y: normalizeAxis(float64(c.Y), float64(lo.Y), float64(span.Y), gridMax),
			Z: normalizeAxis(float64(c.Z), float64(lo.Z), float64(span.Z), gridMax),
		}
		codes[i] = encode(idx, report)
	}
	return codes
}

func normalizeAxis(c, lo, span, gridMax float64) uint32 {
	if span <= 0 {
		return 0
	}
	t := (c - lo) / span
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint32(t * gridMax)
}
