package dcel

import (
	"math"

	"github.com/cutcellgeo/ebgeometry/polygon2d"
	"github.com/cutcellgeo/ebgeometry/vec3"
)

// SignedDistance implements spec 4.5's per-face signed distance: project p
// onto the face plane, test whether the projection lies inside the face's
// cached 2D projection, and if so return the signed plane distance;
// otherwise fall back to the nearest point on the face's boundary, signed
// by the appropriate vertex or edge pseudonormal.
func (f *Face[T, Meta]) SignedDistance(p vec3.Vec[T]) T {
	planeDist := f.Normal.Dot(p.Sub(f.Centroid))
	projected := p.Sub(f.Normal.Mul(planeDist))

	p2 := project2D(projected, f.ProjAxis)
	if polygon2d.Inside(f.Proj, p2, f.Algorithm) {
		return planeDist
	}

	edges := f.HalfEdges()
	best := T(math.Inf(1))
	for _, e := range edges {
		a := e.Origin.Position
		b := e.Next.Origin.Position
		ab := b.Sub(a)
		denom := ab.LengthSquared()
		var t T
		if denom > 0 {
			t = p.Sub(a).Dot(ab) / denom
		}

		var candidate T
		switch {
		case t <= 0:
			candidate = signedByNormal(p, a, e.Origin.Normal)
		case t >= 1:
			candidate = signedByNormal(p, b, e.Next.Origin.Normal)
		default:
			closest := a.Add(ab.Mul(t))
			candidate = signedByNormal(p, closest, e.Normal)
		}

		if absT(candidate) < absT(best) {
			best = candidate
		}
	}
	return best
}

func signedByNormal[T vec3.Real](p, closest, normal vec3.Vec[T]) T {
	diff := p.Sub(closest)
	mag := diff.Length()
	sign := normal.Dot(diff)
	if sign < 0 {
		return -mag
	}
	return mag
}

func absT[T vec3.Real](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// SignedDistance iterates every face and keeps the candidate of smallest
// magnitude (spec 4.5 "Mesh-level signed distance", baseline O(faces) form
// — the BVH-accelerated "nearest face first" path lives in package
// meshsdf's FastMeshSDF).
func (m *Mesh[T, Meta]) SignedDistance(p vec3.Vec[T]) T {
	best := T(math.Inf(1))
	for _, f := range m.Faces {
		d := f.SignedDistance(p)
		if absT(d) < absT(best) {
			best = d
		}
	}
	return best
}
