package magcube

import "fmt"

// Grid is an ordered lattice of coordinates with its logical shape.
// Points are stored flat, last axis fastest.
type Grid struct {
	Shape  []int
	Points []Point3
}

// NewGrid checks that the shape covers exactly len(pts) points.
func NewGrid(shape []int, pts []Point3) (Grid, error) {
	if product(shape) != len(pts) {
		return Grid{}, fmt.Errorf("shape %v holds %d points, got %d: %w", shape, product(shape), len(pts), ErrShapeMismatch)
	}
	return Grid{Shape: append([]int(nil), shape...), Points: pts}, nil
}

// PointList wraps an explicit coordinate list as a 1-D grid.
func PointList(pts []Point3) Grid {
	return Grid{Shape: []int{len(pts)}, Points: pts}
}

func (g Grid) Len() int { return len(g.Points) }

// Lattice3 is a regular ij-indexed 3D lattice built from three axes.
type Lattice3 struct {
	Xs, Ys, Zs []Real
	Nx, Ny, Nz int
	StrideX    int // flat = i*StrideX + j*StrideY + k
	StrideY    int
}

// NewLattice3 precomputes strides for the given axes.
func NewLattice3(xs, ys, zs []Real) *Lattice3 {
	l := &Lattice3{
		Xs: xs, Ys: ys, Zs: zs,
		Nx: len(xs), Ny: len(ys), Nz: len(zs),
	}
	l.StrideY = l.Nz
	l.StrideX = l.Ny * l.StrideY
	DebugLog("Created lattice resolution=(%d, %d, %d)", l.Nx, l.Ny, l.Nz)
	return l
}

// Flat index helper.
func (l *Lattice3) idx(i, j, k int) int {
	return i*l.StrideX + j*l.StrideY + k
}

func (l *Lattice3) Shape() []int { return []int{l.Nx, l.Ny, l.Nz} }

// Grid materializes the lattice points (meshgrid with ij indexing).
func (l *Lattice3) Grid() Grid {
	pts := make([]Point3, l.Nx*l.Ny*l.Nz)
	for i, x := range l.Xs {
		for j, y := range l.Ys {
			for k, z := range l.Zs {
				pts[l.idx(i, j, k)] = Point3{x, y, z}
			}
		}
	}
	return Grid{Shape: l.Shape(), Points: pts}
}

// Range is a closed interval. Optional overrides are *Range: nil keeps the
// default, while any set range, {0, 0} included, is used as given.
type Range struct {
	Min, Max Real
}

func (r Range) Span() Real { return r.Max - r.Min }

func (r *Range) or(def Range) Range {
	if r == nil {
		return def
	}
	return *r
}

func rangePtr(r Range) *Range { return &r }

// axisSamples lays round(span*perUnit) points over r; a degenerate span
// still yields one sample.
func axisSamples(r Range, perUnit Real) []Real {
	n := int(roundHalfEven(r.Span() * perUnit))
	return linspace(r.Min, r.Max, imax(1, n))
}
