package dcel

import (
	"sort"

	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/internal/soupio"
	"github.com/cutcellgeo/ebgeometry/polygon2d"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// NormalMode selects how vertex normals are computed during Reconcile.
type NormalMode int

const (
	// AngleWeighted uses the angle-weighted pseudonormal (the default):
	// sum over incident faces of (subtended angle at this vertex) * (face
	// normal). This gives correct signed distances at vertices for closed
	// manifold meshes.
	AngleWeighted NormalMode = iota
	// SimpleAverage averages incident face normals without angle weights.
	SimpleAverage
)

// options carries the BuildFromSoup tunables assembled by functional
// Options, in the teacher's RenderHex8/RenderMarchingCubes parameter-struct
// style.
type options struct {
	normalMode      NormalMode
	polygonAlgo     polygon2d.Algorithm
	strictSanity    bool
}

// Option configures BuildFromSoup.
type Option func(*options)

// WithNormalMode overrides the default angle-weighted vertex pseudonormal.
func WithNormalMode(m NormalMode) Option {
	return func(o *options) { o.normalMode = m }
}

// WithPolygonAlgorithm overrides the default crossing-number face
// inside/outside test. The selection is carried mesh-wide but stored
// per-Face, so a future caller can override a single face without an API
// break (spec's Open Question is resolved here as "mesh-wide by default,
// face-wide if the caller wants it").
func WithPolygonAlgorithm(a polygon2d.Algorithm) Option {
	return func(o *options) { o.polygonAlgo = a }
}

// WithStrictSanity makes BuildFromSoup return a non-nil error when the
// sanity pass finds any TopologyBroken diagnostic, instead of the default
// "diagnose and continue" policy (spec 9's caller-selectable policy note).
func WithStrictSanity(strict bool) Option {
	return func(o *options) { o.strictSanity = strict }
}

func defaultOptions() options {
	return options{normalMode: AngleWeighted, polygonAlgo: polygon2d.CrossingNumber}
}

// BuildFromSoup compresses a vertex/facet soup, wires its half-edge
// topology, reconciles normals/areas/projections, and runs the sanity
// pass. It never fails: even a degenerate or non-watertight input yields a
// usable (if degraded) Mesh plus a Report describing what went wrong,
// unless WithStrictSanity(true) is given and TopologyBroken events were
// raised, in which case a non-nil error is also returned.
func BuildFromSoup[T vec3.Real, Meta any](soup soupio.Soup[T], opts ...Option) (*Mesh[T, Meta], diag.Report, error) {
	cfg := defaultOptions()
	for _, o := range opts {
		o(&cfg)
	}

	var report diag.Report

	positions, remap := compress(soup.Vertices)

	mesh := &Mesh[T, Meta]{}
	vertices := make([]*Vertex[T, Meta], len(positions))
	for i, p := range positions {
		vertices[i] = &Vertex[T, Meta]{Position: p}
	}
	mesh.Vertices = vertices

	for _, facet := range soup.Facets {
		remapped := make([]int, len(facet))
		for i, idx := range facet {
			remapped[i] = remap[idx]
		}
		if degenerate(remapped) {
			report.Add(diag.InputDegenerate, "dcel: skipping degenerate facet %v", facet)
			continue
		}
		wireFacet(mesh, vertices, remapped)
	}

	pairEdges(mesh, &report)
	reconcile(mesh, cfg, &report)
	sanity := SanityCheck(mesh)
	report.Merge(sanity)

	if cfg.strictSanity && sanity.CountOf(diag.TopologyBroken) > 0 {
		return mesh, report, errNonWatertight
	}
	return mesh, report, nil
}

// compress deduplicates vertex positions via lexicographic sort-and-scan
// (spec "Compression"): build (position, original_index) pairs, sort by
// position, emit each distinct position once, and record a map from
// original index to new index.
func compress[T vec3.Real](verts []vec3.Vec[T]) (positions []vec3.Vec[T], remap []int) {
	type pair struct {
		pos vec3.Vec[T]
		idx int
	}
	pairs := make([]pair, len(verts))
	for i, v := range verts {
		pairs[i] = pair{pos: v, idx: i}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos.Less(pairs[j].pos)
	})

	remap = make([]int, len(verts))
	positions = make([]vec3.Vec[T], 0, len(verts))
	for i, p := range pairs {
		if i == 0 || !p.pos.Equal(pairs[i-1].pos) {
			positions = append(positions, p.pos)
		}
		remap[p.idx] = len(positions) - 1
	}
	return positions, remap
}

// degenerate reports whether a (already-remapped) facet has fewer than 3
// vertices or any two coincident (post-remap, meaning literally equal)
// vertex indices.
func degenerate(indices []int) bool {
	if len(indices) < 3 {
		return true
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if seen[idx] {
			return true
		}
		seen[idx] = true
	}
	return false
}

// wireFacet allocates the half-edges and face for one non-degenerate
// facet and wires next/origin/face (spec "Half-edge wiring" steps 1-5).
// Pair reconciliation happens afterward in pairEdges.
func wireFacet[T vec3.Real, Meta any](mesh *Mesh[T, Meta], vertices []*Vertex[T, Meta], indices []int) {
	n := len(indices)
	edges := make([]*HalfEdge[T, Meta], n)
	for i, vIdx := range indices {
		e := &HalfEdge[T, Meta]{Origin: vertices[vIdx]}
		edges[i] = e
		mesh.Edges = append(mesh.Edges, e)
	}
	for i := 0; i < n; i++ {
		edges[i].Next = edges[(i+1)%n]
	}

	face := &Face[T, Meta]{Edge: edges[0]}
	mesh.Faces = append(mesh.Faces, face)
	for _, e := range edges {
		e.Face = face
	}

	for _, vIdx := range indices {
		v := vertices[vIdx]
		v.Faces = append(v.Faces, face)
	}
	for i, vIdx := range indices {
		v := vertices[vIdx]
		if v.Outgoing == nil {
			v.Outgoing = edges[i]
		}
	}
}

// pairEdges reconciles half-edge pairs: for every half-edge e from u to v,
// search the incident faces of u for a half-edge from v to u.
func pairEdges[T vec3.Real, Meta any](mesh *Mesh[T, Meta], report *diag.Report) {
	for _, e := range mesh.Edges {
		if e.Pair != nil {
			continue
		}
		u := e.Origin
		v := e.Next.Origin
		found := false
		for _, f := range u.Faces {
			for _, cand := range f.HalfEdges() {
				if cand == e || cand.Pair != nil {
					continue
				}
				if cand.Origin == v && cand.Next.Origin == u {
					e.Pair = cand
					cand.Pair = e
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			report.Add(diag.TopologyBroken, "dcel: half-edge has no pair (mesh is not watertight)")
		}
	}
}

var errNonWatertight = nonWatertightError{}

type nonWatertightError struct{}

func (nonWatertightError) Error() string {
	return "dcel: mesh is not watertight (strict sanity policy requested)"
}
