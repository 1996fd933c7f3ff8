package magcube

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metrics are scalar diagnostics of a reconstructed field (physical units).
type Metrics struct {
	Divergence Real // mean(div / (|B| + ε))
	ForceFree  Real // mean(|J×B| / (|B| + ε))
	SigmaJ     Real // Σ(|J×B| / (|B| + ε)) / (Σ|J| + ε)
	ThetaJ     Real // current-weighted misalignment angle, degrees
}

func checkLen(b []Vector3, n int, what string) error {
	if len(b) != n {
		return fmt.Errorf("%d field samples, %d %s samples: %w", len(b), n, what, ErrShapeMismatch)
	}
	return nil
}

func mean(xs []Real) Real {
	if len(xs) == 0 {
		return 0
	}
	return floats.Sum(xs) / Real(len(xs))
}

// DivergenceScore normalizes a supplied divergence by the local field strength.
func DivergenceScore(b []Vector3, div []Real) (Real, error) {
	if err := checkLen(b, len(div), "divergence"); err != nil {
		return 0, err
	}
	s := make([]Real, len(b))
	for i := range b {
		s[i] = div[i] / (b[i].Len() + Stabilizer)
	}
	return mean(s), nil
}

// ForceFreeScore is zero for a force-free field (J parallel to B).
func ForceFreeScore(b, j []Vector3) (Real, error) {
	if err := checkLen(b, len(j), "current"); err != nil {
		return 0, err
	}
	s := make([]Real, len(b))
	for i := range b {
		s[i] = j[i].Cross(b[i]).Len() / (b[i].Len() + Stabilizer)
	}
	return mean(s), nil
}

// SigmaJ is the force-free residual normalized by the total current.
func SigmaJ(b, j []Vector3) (Real, error) {
	if err := checkLen(b, len(j), "current"); err != nil {
		return 0, err
	}
	num := make([]Real, len(b))
	jn := make([]Real, len(b))
	for i := range b {
		num[i] = j[i].Cross(b[i]).Len() / (b[i].Len() + Stabilizer)
		jn[i] = j[i].Len()
	}
	return floats.Sum(num) / (floats.Sum(jn) + Stabilizer), nil
}

// ThetaJ is arcsin of the current-weighted mean of |J×B|/(|J||B|), in
// degrees. The ratio is clipped away from ±1 before the arcsin.
func ThetaJ(b, j []Vector3) (Real, error) {
	if err := checkLen(b, len(j), "current"); err != nil {
		return 0, err
	}
	weighted := make([]Real, len(b))
	weights := make([]Real, len(b))
	for i := range b {
		jl := j[i].Len()
		sigma := j[i].Cross(b[i]).Len() / (jl*b[i].Len() + Stabilizer)
		weighted[i] = sigma * jl
		weights[i] = jl
	}
	angle := floats.Sum(weighted) / (floats.Sum(weights) + Stabilizer)
	angle = clip(angle, -1+Stabilizer, 1-Stabilizer)
	return math.Asin(angle) * 180 / math.Pi, nil
}

// ComputeMetrics evaluates every score; div may be nil, which leaves the
// divergence score at zero.
func ComputeMetrics(b, j []Vector3, div []Real) (Metrics, error) {
	var m Metrics
	var err error
	if div != nil {
		if m.Divergence, err = DivergenceScore(b, div); err != nil {
			return m, err
		}
	}
	if m.ForceFree, err = ForceFreeScore(b, j); err != nil {
		return m, err
	}
	if m.SigmaJ, err = SigmaJ(b, j); err != nil {
		return m, err
	}
	if m.ThetaJ, err = ThetaJ(b, j); err != nil {
		return m, err
	}
	return m, nil
}

// BoundaryScore compares a model field against boundary observations.
type BoundaryScore struct {
	Diff    Real // nan-mean of |B - B_true|
	DiffErr Real // nan-mean of |max(|B - B_true| - B_err, 0)|, zero without errors
}

// BoundaryDiff compares b with observations bTrue. transform, when given,
// maps each model vector into the observation frame first; bErr, when
// given, is subtracted per component before clipping at zero. Samples with
// non-finite observations are skipped.
func BoundaryDiff(b, bTrue []Vector3, transform []Mat3, bErr []Vector3) (BoundaryScore, error) {
	var s BoundaryScore
	if err := checkLen(b, len(bTrue), "observed"); err != nil {
		return s, err
	}
	if transform != nil {
		if err := checkLen(b, len(transform), "transform"); err != nil {
			return s, err
		}
	}
	if bErr != nil {
		if err := checkLen(b, len(bErr), "error"); err != nil {
			return s, err
		}
	}
	var diffs, errs []Real
	for i := range b {
		t := I3()
		if transform != nil {
			t = transform[i]
		}
		v := t.MulVec(b[i])
		d := v.Sub(bTrue[i])
		ad := Vector3{math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)}
		if l := ad.Len(); isFinite(l) {
			diffs = append(diffs, l)
		}
		if bErr != nil {
			e := Vector3{
				math.Max(ad.X-bErr[i].X, 0),
				math.Max(ad.Y-bErr[i].Y, 0),
				math.Max(ad.Z-bErr[i].Z, 0),
			}
			if l := e.Len(); isFinite(l) {
				errs = append(errs, l)
			}
		}
	}
	s.Diff = nanMean(diffs)
	s.DiffErr = nanMean(errs)
	return s, nil
}

func nanMean(xs []Real) Real {
	if len(xs) == 0 {
		return math.NaN()
	}
	return mean(xs)
}

// IntegratedCurrent sums |J| along one axis of a 3D result, giving a 2D map
// shaped like the remaining two axes.
func IntegratedCurrent(j []Vector3, shape []int, axis int) ([]Real, []int, error) {
	if len(shape) != 3 || axis < 0 || axis > 2 {
		return nil, nil, fmt.Errorf("shape %v, axis %d: %w", shape, axis, ErrShapeMismatch)
	}
	if product(shape) != len(j) {
		return nil, nil, fmt.Errorf("shape %v for %d samples: %w", shape, len(j), ErrShapeMismatch)
	}
	out := make([]int, 0, 2)
	for a, n := range shape {
		if a != axis {
			out = append(out, n)
		}
	}
	m := make([]Real, out[0]*out[1])
	var ij [3]int
	for i := 0; i < shape[0]; i++ {
		for k := 0; k < shape[1]; k++ {
			for l := 0; l < shape[2]; l++ {
				ij = [3]int{i, k, l}
				flat := (i*shape[1]+k)*shape[2] + l
				var u, v int
				switch axis {
				case 0:
					u, v = ij[1], ij[2]
				case 1:
					u, v = ij[0], ij[2]
				default:
					u, v = ij[0], ij[1]
				}
				m[u*out[1]+v] += j[flat].Len()
			}
		}
	}
	return m, out, nil
}
