package magcube

import (
	"fmt"
	"math"
)

// Spherical is a point in spherical coordinates: radius, polar angle Theta
// measured from +Z in [0, π] and azimuth Phi in [0, 2π).
type Spherical struct {
	R, Theta, Phi Real
}

// CartesianToSpherical converts a point to (r, θ, φ).
func CartesianToSpherical(p Point3) Spherical {
	xy := p.X*p.X + p.Y*p.Y
	return Spherical{
		R:     math.Sqrt(xy + p.Z*p.Z),
		Theta: math.Atan2(math.Sqrt(xy), p.Z),
		Phi:   WrapAngle(math.Atan2(p.Y, p.X), TwoPi),
	}
}

// SphericalToCartesian is the inverse of CartesianToSpherical.
func SphericalToCartesian(s Spherical) Point3 {
	st, ct := math.Sincos(s.Theta)
	sp, cp := math.Sincos(s.Phi)
	return Point3{s.R * st * cp, s.R * st * sp, s.R * ct}
}

// LatitudeToPolar maps a caller-facing latitude in [-π/2, π/2] to the polar
// angle used internally. This is the only place the offset is applied.
func LatitudeToPolar(lat Real) Real { return lat + math.Pi/2 }

// WrapAngle reduces a into [0, period).
func WrapAngle(a, period Real) Real {
	m := math.Mod(a, period)
	if m < 0 {
		m += period
	}
	// -tiny + period rounds up to period
	if m >= period {
		m = 0
	}
	return m
}

// AngleWindow is a half-open periodic interval [Min, Max).
// Bounds and samples are wrapped by the same WrapAngle call in Contains.
type AngleWindow struct {
	Min, Max, Period Real
}

// Contains reports whether a falls inside the window after wrapping.
// A window spanning at least one period contains every angle; a window whose
// wrapped Max is below its wrapped Min crosses the seam at zero.
func (w AngleWindow) Contains(a Real) bool {
	if w.Max-w.Min >= w.Period {
		return true
	}
	lo, hi := WrapAngle(w.Min, w.Period), WrapAngle(w.Max, w.Period)
	x := WrapAngle(a, w.Period)
	if lo <= hi {
		return x >= lo && x < hi
	}
	return x >= lo || x < hi
}

// sphericalBasis returns the rotation whose rows are the local unit vectors
// (r̂, θ̂, φ̂) at s, expressed in the cartesian basis.
func sphericalBasis(s Spherical) Mat3 {
	st, ct := math.Sincos(s.Theta)
	sp, cp := math.Sincos(s.Phi)
	return Mat3{M: [3][3]Real{
		{st * cp, st * sp, ct},
		{ct * cp, ct * sp, -st},
		{-sp, cp, 0},
	}}
}

// VectorCartesianToSpherical rotates v, sampled at the point at, into the
// local (r, θ, φ) basis of that point.
func VectorCartesianToSpherical(v Vector3, at Spherical) Vector3 {
	return sphericalBasis(at).MulVec(v)
}

// VectorsCartesianToSpherical rotates every vector with its companion point.
// The two slices must line up one to one.
func VectorsCartesianToSpherical(vs []Vector3, at []Spherical) ([]Vector3, error) {
	if len(vs) != len(at) {
		return nil, fmt.Errorf("%d vectors for %d points: %w", len(vs), len(at), ErrShapeMismatch)
	}
	out := make([]Vector3, len(vs))
	for i, v := range vs {
		out[i] = VectorCartesianToSpherical(v, at[i])
	}
	return out, nil
}
