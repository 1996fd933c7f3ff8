package magcube

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clip(x, lo, hi Real) Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// product of a shape; the empty shape is a scalar (1).
func product(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// linspace returns n evenly spaced samples over [lo, hi], endpoints included.
// A single sample sits at lo.
func linspace(lo, hi Real, n int) []Real {
	if n <= 0 {
		return nil
	}
	out := make([]Real, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	return floats.Span(out, lo, hi)
}

func roundHalfEven(x Real) Real { return math.RoundToEven(x) }

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}
