// Package physics provides the vector math and collision tests shared by all entities.
package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D world position or direction.
type Vec = r2.Vec

// Circle is a collision shape.
type Circle struct {
	Center Vec
	Radius float64
}

// Aim is the result of UnitAim.
type Aim struct {
	Unit Vec // Unit vector from the reference point toward the target (zero if degenerate)
	Raw  Vec // Reference minus target, unnormalized
}

// IsZero reports whether the aim is degenerate (reference and target coincide).
func (a Aim) IsZero() bool {
	return a.Unit.X == 0 && a.Unit.Y == 0
}

// Angle returns the orientation derived from the raw deltas, atan2(raw.Y, raw.X).
func (a Aim) Angle() float64 {
	return math.Atan2(a.Raw.Y, a.Raw.X)
}

// UnitAim computes the unit vector pointing from a toward b, along with the raw
// deltas a-b. When a and b coincide both vectors are zero.
//
//	       a
//	      /|
//	dist / | raw.Y
//	    /  |
//	   b---+
//	   raw.X
func UnitAim(a, b Vec) Aim {
	raw := r2.Sub(a, b)
	dist := r2.Norm(raw)
	if dist == 0 {
		return Aim{}
	}
	return Aim{
		Unit: Vec{X: -raw.X / dist, Y: -raw.Y / dist},
		Raw:  raw,
	}
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// CirclesOverlap checks if two circles overlap. Touching circles overlap.
func CirclesOverlap(a, b Circle) bool {
	minDist := a.Radius + b.Radius
	return DistanceSquared(a.Center, b.Center) <= minDist*minDist
}

// InBounds reports whether p lies inside [0,w]x[0,h], edges included.
func InBounds(p Vec, w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}
