package dcel

import (
	"github.com/cutcellgeo/ebgeometry/diag"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// SanityCheck verifies the DCEL invariants (spec "Invariants"): every
// half-edge's next/pair cycle is consistent and points at its face; every
// vertex has at least one incident face and a correctly rooted outgoing
// edge; and the mesh is watertight (no half-edge is missing its pair). It
// never panics — every violation is recorded as a diag.TopologyBroken
// event and checking continues.
func SanityCheck[T vec3.Real, Meta any](mesh *Mesh[T, Meta]) diag.Report {
	var report diag.Report

	for _, e := range mesh.Edges {
		if e.Face == nil {
			report.Add(diag.TopologyBroken, "dcel: half-edge has no face")
		}
		if e.Next == nil {
			report.Add(diag.TopologyBroken, "dcel: half-edge has no next")
			continue
		}
		if e.Pair == nil {
			report.Add(diag.TopologyBroken, "dcel: half-edge has no pair (non-watertight)")
			continue
		}
		if e.Pair.Pair != e {
			report.Add(diag.TopologyBroken, "dcel: half-edge pair is not involutive")
		}
		if e.Next.Origin != e.Pair.Origin {
			report.Add(diag.TopologyBroken, "dcel: half-edge next.origin != pair.origin")
		}
	}

	for _, f := range mesh.Faces {
		if f.Edge == nil {
			report.Add(diag.TopologyBroken, "dcel: face has no half-edge")
			continue
		}
		seen := make(map[*Vertex[T, Meta]]bool)
		for _, v := range f.Vertices() {
			if seen[v] {
				report.Add(diag.TopologyBroken, "dcel: face has a duplicate vertex")
			}
			seen[v] = true
		}
	}

	for _, v := range mesh.Vertices {
		if len(v.Faces) == 0 {
			report.Add(diag.TopologyBroken, "dcel: vertex has no incident face")
		}
		if v.Outgoing == nil {
			report.Add(diag.TopologyBroken, "dcel: vertex has no outgoing half-edge")
		} else if v.Outgoing.Origin != v {
			report.Add(diag.TopologyBroken, "dcel: vertex.outgoing.origin != vertex")
		}
	}

	return report
}
