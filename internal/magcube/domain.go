package magcube

import (
	"fmt"
	"math"
)

type DomainKind uint8

const (
	KindCube   DomainKind = iota // cartesian box, dense
	KindShell                    // regular spherical lattice, dense
	KindRegion                   // cartesian lattice masked to a spherical window
	KindPoints                   // explicit coordinates
)

func (k DomainKind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindShell:
		return "shell"
	case KindRegion:
		return "region"
	case KindPoints:
		return "points"
	}
	return fmt.Sprintf("DomainKind(%d)", uint8(k))
}

// Domain describes where to evaluate. The set of implementations is closed:
// Cube, Shell, Region and Points.
type Domain interface {
	Kind() DomainKind
	isDomain()
}

// Cube is the stored cartesian box, optionally with a different height
// range or lattice spacing.
type Cube struct {
	HeightRange *Range // Mm; nil keeps the stored z range
	MmPerPixel  Real   // zero keeps the native spacing
}

// Shell is a regular (radius, latitude, longitude) lattice.
type Shell struct {
	RadiusRange    *Range // solar radii; nil uses the state's range
	LatitudeRange  *Range // radians in [-π/2, π/2]; nil is the full range
	LongitudeRange *Range // radians; nil is the full circle
	Sampling       [3]int // radius, latitude, longitude counts
}

// Region is a spherical window sampled on a cartesian lattice.
type Region struct {
	RadiusRange    *Range // solar radii; nil uses the state's range
	LatitudeRange  *Range // radians in [-π/2, π/2]; nil is the full range
	LongitudeRange *Range // radians; nil is the full circle
	Resolution     Real   // lattice points per solar radius
}

// Points evaluates an explicit coordinate grid as is.
type Points struct {
	Grid            Grid
	ComputeCurrents bool
}

func (Cube) Kind() DomainKind   { return KindCube }
func (Shell) Kind() DomainKind  { return KindShell }
func (Region) Kind() DomainKind { return KindRegion }
func (Points) Kind() DomainKind { return KindPoints }

func (Cube) isDomain()   {}
func (Shell) isDomain()  {}
func (Region) isDomain() {}
func (Points) isDomain() {}

var (
	fullLatitude  = Range{-math.Pi / 2, math.Pi / 2}
	fullLongitude = Range{0, TwoPi}
)

// DefaultShell covers the whole sphere at the default sampling.
func DefaultShell() Shell {
	return Shell{
		LatitudeRange:  rangePtr(fullLatitude),
		LongitudeRange: rangePtr(fullLongitude),
		Sampling:       DefaultSampling,
	}
}

// DefaultRegion covers the whole sphere at the default resolution.
func DefaultRegion() Region {
	return Region{
		LatitudeRange:  rangePtr(fullLatitude),
		LongitudeRange: rangePtr(fullLongitude),
		Resolution:     DefaultResolution,
	}
}

// Result is what a domain query hands back, in physical units. Coordinates
// stay normalized. Fields that do not apply to a domain are nil.
type Result struct {
	Kind       DomainKind
	Shape      []int
	Coords     []Point3    // cartesian lattice
	Spherical  []Spherical // shell and region
	Mask       []bool      // region: lattice points inside the window
	B          []Vector3
	BRTP       []Vector3 // region: B in the local (r, θ, φ) basis
	J          []Vector3
	Div        []Real
	MmPerPixel Real // cube
}

// Output answers domain queries against one loaded state and model.
type Output struct {
	State *State
	*Evaluator
}

// NewOutput binds model to the scale context and defaults of state.
func NewOutput(state *State, model Model) *Output {
	ev := NewEvaluator(model, state.Scale())
	ev.SpatialNorm = state.Data.SpatialNorm
	return &Output{State: state, Evaluator: ev}
}

// LoadCoords evaluates an explicit grid.
func (o *Output) LoadCoords(g Grid, computeCurrents bool) (*Field, error) {
	return o.Evaluate(g, computeCurrents)
}

// Load dispatches on the domain variant.
func (o *Output) Load(d Domain) (*Result, error) {
	switch q := d.(type) {
	case Cube:
		return o.LoadCube(q)
	case Shell:
		return o.LoadSpherical(q)
	case Region:
		return o.LoadRegion(q)
	case Points:
		return o.LoadPoints(q)
	}
	return nil, fmt.Errorf("%T: %w", d, ErrUnknownDomain)
}

// LoadPoints evaluates q.Grid and keeps its shape.
func (o *Output) LoadPoints(q Points) (*Result, error) {
	f, err := o.Evaluate(q.Grid, q.ComputeCurrents)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindPoints, Shape: f.Shape, Coords: q.Grid.Points, B: f.B, J: f.J, Div: f.Div}, nil
}
