// Package sfc implements the space-filling-curve codes used by the bottom-up
// BVH build: Morton (Z-order) and Nested (block-index) codes. Morton is
// bijective on the 21-bit grid [0, 2^21)^3; Nested is bijective on it except
// at the maxCoord boundary documented on Nested.
package sfc

import "github.com/cutcellgeo/ebgeometry/diag"

// bits is the per-axis width of the valid grid; 3*21 = 63 bits fits in a
// 64-bit Code with one bit to spare.
const bits = 21

// maxCoord is the largest valid coordinate along any axis, 2^21 - 1.
const maxCoord = (1 << bits) - 1

// Index is a triple of 21-bit unsigned grid coordinates.
type Index struct {
	X, Y, Z uint32
}

// Code is a 64-bit space-filling-curve code.
type Code uint64

// InRange reports whether all of idx's components fit in the valid 21-bit
// span.
func (idx Index) InRange() bool {
	return idx.X <= maxCoord && idx.Y <= maxCoord && idx.Z <= maxCoord
}

func clamp(idx Index, report *diag.Report) Index {
	if idx.InRange() {
		return idx
	}
	if report != nil {
		report.Add(diag.ConfigError, "sfc: index %+v outside 21-bit span, clamping", idx)
	}
	return Index{
		X: clampCoord(idx.X),
		Y: clampCoord(idx.Y),
		Z: clampCoord(idx.Z),
	}
}

func clampCoord(c uint32) uint32 {
	if c > maxCoord {
		return maxCoord
	}
	return c
}

// Morton implements the Z-order curve via the standard magic-bits bit
// interleave.
var Morton mortonCurve

type mortonCurve struct{}

// Encode interleaves the bits of idx's three components into a single code.
// Out-of-range components are clamped and a diag.ConfigError is appended to
// report (report may be nil to discard the diagnostic).
func (mortonCurve) Encode(idx Index, report *diag.Report) Code {
	idx = clamp(idx, report)
	return Code(spreadBits3(uint64(idx.X)) |
		spreadBits3(uint64(idx.Y))<<1 |
		spreadBits3(uint64(idx.Z))<<2)
}

// Decode is the inverse of Encode.
func (mortonCurve) Decode(c Code) Index {
	return Index{
		X: uint32(compactBits3(uint64(c))),
		Y: uint32(compactBits3(uint64(c) >> 1)),
		Z: uint32(compactBits3(uint64(c) >> 2)),
	}
}

// spreadBits3 inserts two zero bits after each of the low 21 bits of x, the
// standard "magic bits" Morton interleave.
func spreadBits3(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

// compactBits3 is the inverse of spreadBits3: it extracts every third bit.
func compactBits3(x uint64) uint64 {
	x &= 0x1249249249249249
	x = (x | (x >> 2)) & 0x10c30c30c30c30c3
	x = (x | (x >> 4)) & 0x100f00f00f00f00f
	x = (x | (x >> 8)) & 0x1f0000ff0000ff
	x = (x | (x >> 16)) & 0x1f00000000ffff
	x = (x | (x >> 32)) & 0x1fffff
	return x
}

// Nested implements the nested (block-index) code x + y*N + z*N^2, with
// N = 2^21 - 1. The base N is one less than the grid width 2^21, so this
// formula (taken unchanged from the original C++) aliases at the top of the
// X and Y ranges: an index with X == maxCoord or Y == maxCoord does not
// round-trip through Encode and Decode (see the note on Encode/Decode
// below). Every other index round-trips exactly.
var Nested nestedCurve

type nestedCurve struct{}

const nestedN = uint64(maxCoord)

// Encode computes x + y*N + z*N^2. Out-of-range components are clamped and
// a diag.ConfigError is appended to report (report may be nil).
//
// Because N = maxCoord rather than maxCoord+1, the value x=N itself aliases
// with x=0, y=y+1: Encode({maxCoord,0,0}) and Decode of that code disagree
// (Decode recovers {0,1,0}). Likewise y=N carries into the Z term:
// Encode({0,maxCoord,z}) decodes to {0,0,z+1}. This is inherited from the
// original formula, not introduced here; every index with X < maxCoord and
// Y < maxCoord round-trips exactly. Z, the top term, has no such alias.
func (nestedCurve) Encode(idx Index, report *diag.Report) Code {
	idx = clamp(idx, report)
	x, y, z := uint64(idx.X), uint64(idx.Y), uint64(idx.Z)
	return Code(x + y*nestedN + z*nestedN*nestedN)
}

// Decode is the inverse of Encode, except at the boundary documented on
// Encode.
func (nestedCurve) Decode(c Code) Index {
	v := uint64(c)
	x := v % nestedN
	v /= nestedN
	y := v % nestedN
	z := v / nestedN
	return Index{X: uint32(x), Y: uint32(y), Z: uint32(z)}
}
