package magcube

// LoadSpherical evaluates a regular lattice laid out directly in
// (radius, latitude, longitude). Every lattice point is inside the domain.
func (o *Output) LoadSpherical(q Shell) (*Result, error) {
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
	sampling := q.Sampling
	for i := range sampling {
		if sampling[i] <= 0 {
			sampling[i] = DefaultSampling[i]
		}
	}

	lattice := NewLattice3(
		shellAxis(radius.Min, radius.Max, sampling[0]),
		shellAxis(LatitudeToPolar(lat.Min), LatitudeToPolar(lat.Max), sampling[1]),
		shellAxis(lon.Min, lon.Max, sampling[2]),
	)
	n := lattice.Nx * lattice.Ny * lattice.Nz
	sph := make([]Spherical, n)
	pts := make([]Point3, n)
	for i, r := range lattice.Xs {
		for j, t := range lattice.Ys {
			for k, p := range lattice.Zs {
				idx := lattice.idx(i, j, k)
				sph[idx] = Spherical{R: r, Theta: t, Phi: p}
				pts[idx] = SphericalToCartesian(sph[idx])
			}
		}
	}
	f, err := o.Evaluate(Grid{Shape: lattice.Shape(), Points: pts}, true)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:      KindShell,
		Shape:     f.Shape,
		Coords:    pts,
		Spherical: sph,
		B:         f.B,
		J:         f.J,
		Div:       f.Div,
	}, nil
}

// shellAxis samples n points over [lo, hi]; a zero-width range is one sample.
func shellAxis(lo, hi Real, n int) []Real {
	if lo == hi {
		n = 1
	}
	return linspace(lo, hi, n)
}
