package magcube

import (
	"math"
)

// LoadRegion evaluates the part of a cartesian lattice that falls inside a
// spherical window. The lattice spans the bounding box of the window, only
// points inside the window are sent to the model, and the results are
// scattered back into dense arrays that stay zero outside the mask.
func (o *Output) LoadRegion(q Region) (*Result, error) {
	if err := o.State.requireSpherical(); err != nil {
		return nil, err
	}
	var radius Range
	if q.RadiusRange != nil {
		radius = *q.RadiusRange
	} else {
		r, err := o.State.RadiusRange()
		if err != nil {
			return nil, err
		}
		radius = r
	}
	lat := q.LatitudeRange.or(fullLatitude)
	lon := q.LongitudeRange.or(fullLongitude)
	res := q.Resolution
	if res <= 0 {
		res = DefaultResolution
	}
	polar := Range{LatitudeToPolar(lat.Min), LatitudeToPolar(lat.Max)}

	box := sphericalBounds(radius, polar, lon)
	lattice := NewLattice3(
		axisSamples(box[0], res),
		axisSamples(box[1], res),
		axisSamples(box[2], res),
	)
	g := lattice.Grid()

	in := regionMask{
		radius: radius,
		polar:  AngleWindow{Min: polar.Min, Max: polar.Max, Period: math.Pi},
		lon:    AngleWindow{Min: lon.Min, Max: lon.Max, Period: TwoPi},
	}
	n := g.Len()
	sph := make([]Spherical, n)
	mask := make([]bool, n)
	var sub []Point3
	var idx []int
	for i, p := range g.Points {
		sph[i] = CartesianToSpherical(p)
		if in.contains(sph[i]) {
			mask[i] = true
			sub = append(sub, p)
			idx = append(idx, i)
		}
	}
	DebugLog("Region lattice %v, %d of %d points inside the window", g.Shape, len(sub), n)

	f, err := o.Evaluate(PointList(sub), true)
	if err != nil {
		return nil, err
	}
	b := make([]Vector3, n)
	j := make([]Vector3, n)
	div := make([]Real, n)
	for m, i := range idx {
		b[i] = f.B[m]
		j[i] = f.J[m]
		div[i] = f.Div[m]
	}
	brtp, err := VectorsCartesianToSpherical(b, sph)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:      KindRegion,
		Shape:     g.Shape,
		Coords:    g.Points,
		Spherical: sph,
		Mask:      mask,
		B:         b,
		BRTP:      brtp,
		J:         j,
		Div:       div,
	}, nil
}

// regionMask is the coverage test for a spherical window: radius half-open
// [min, max), angles through AngleWindow.
type regionMask struct {
	radius Range
	polar  AngleWindow
	lon    AngleWindow
}

func (m regionMask) contains(s Spherical) bool {
	return s.R >= m.radius.Min && s.R < m.radius.Max &&
		m.polar.Contains(s.Theta) && m.lon.Contains(s.Phi)
}

// sphericalBounds is the cartesian bounding box of a spherical window,
// estimated from BoundsSamples³ points of the window.
func sphericalBounds(radius, polar, lon Range) [3]Range {
	box := [3]Range{}
	for a := range box {
		box[a] = Range{math.Inf(1), math.Inf(-1)}
	}
	rs := linspace(radius.Min, radius.Max, BoundsSamples)
	ts := linspace(polar.Min, polar.Max, BoundsSamples)
	ps := linspace(lon.Min, lon.Max, BoundsSamples)
	for _, r := range rs {
		for _, t := range ts {
			for _, ph := range ps {
				p := SphericalToCartesian(Spherical{R: r, Theta: t, Phi: ph})
				for a := range box {
					v := p.Axis(a)
					box[a].Min = math.Min(box[a].Min, v)
					box[a].Max = math.Max(box[a].Max, v)
				}
			}
		}
	}
	return box
}
