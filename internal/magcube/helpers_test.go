package magcube

import (
	"errors"
	"math"
)

// identityField is B(x) = x, curl-free with divergence 3.
func identityField() *FuncModel {
	return &FuncModel{
		Field:    func(p Point3) Vector3 { return Vector3{p.X, p.Y, p.Z} },
		Jacobian: func(Point3) Mat3 { return I3() },
	}
}

// rotationField is B(x) = (-y, x, 0), curl (0, 0, 2) and divergence free.
func rotationField() *FuncModel {
	return &FuncModel{
		Field: func(p Point3) Vector3 { return Vector3{-p.Y, p.X, 0} },
		Jacobian: func(Point3) Mat3 {
			return Mat3{M: [3][3]Real{
				{0, -1, 0},
				{1, 0, 0},
				{0, 0, 0},
			}}
		},
	}
}

// wavyField has no analytic Jacobian, so currents go through central differences.
func wavyField() *FuncModel {
	return &FuncModel{
		Field: func(p Point3) Vector3 {
			return Vector3{math.Sin(p.Y) * p.Z, p.X * p.X, math.Exp(-p.X) + p.Y*p.Z}
		},
	}
}

type call struct {
	zero   bool
	points int
	grad   bool
}

// recorder wraps a model and records the call sequence.
type recorder struct {
	Model
	calls  []call
	failAt int // 1-based Forward call that fails, 0 never
}

var errBoom = errors.New("boom")

func (r *recorder) ZeroGrad() {
	r.calls = append(r.calls, call{zero: true})
	r.Model.ZeroGrad()
}

func (r *recorder) Forward(coords []Point3, mode Mode) (*Batch, error) {
	r.calls = append(r.calls, call{points: len(coords), grad: mode.Grad})
	if r.failAt > 0 && r.forwards() == r.failAt {
		return nil, errBoom
	}
	return r.Model.Forward(coords, mode)
}

func (r *recorder) forwards() int {
	n := 0
	for _, c := range r.calls {
		if !c.zero {
			n++
		}
	}
	return n
}

func (r *recorder) forwardedPoints() int {
	n := 0
	for _, c := range r.calls {
		n += c.points
	}
	return n
}

// cartesianState is a unit box sampled at 4 pixels per ds.
func cartesianState(gPerDB, mmPerDS Real) *State {
	return &State{Data: DataCfg{
		Type:        DomainCartesian,
		GPerDB:      gPerDB,
		MmPerDS:     mmPerDS,
		CoordRange:  [][]Real{{0, 1}, {0, 1}, {0, 1}},
		DsPerPixel:  0.25,
		SpatialNorm: 1,
	}}
}

func sphericalState(gPerDB Real) *State {
	return &State{Data: DataCfg{
		Type:        DomainSpherical,
		GPerDB:      gPerDB,
		MmPerDS:     695.7,
		RadiusRange: []Real{1, 1.5},
		SpatialNorm: 1,
	}}
}

func regularGrid(shape []int) Grid {
	pts := make([]Point3, product(shape))
	for i := range pts {
		f := Real(i)
		pts[i] = Point3{0.1 * f, 0.05*f - 0.3, math.Cos(f)}
	}
	return Grid{Shape: shape, Points: pts}
}

func dist(a, b Point3) Real {
	return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}.Len()
}

// gram returns R·Rᵀ.
func gram(R Mat3) Mat3 {
	var P Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for k := 0; k < 3; k++ {
				P.M[r][c] += R.M[r][k] * R.M[c][k]
			}
		}
	}
	return P
}
