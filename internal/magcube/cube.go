package magcube

// LoadCube evaluates the stored cartesian box on a regular lattice. The
// height range (Mm) and the lattice spacing (Mm per pixel) can be
// overridden independently.
func (o *Output) LoadCube(q Cube) (*Result, error) {
	box, err := o.State.CoordRange()
	if err != nil {
		return nil, err
	}
	mmPerDS := o.State.Data.MmPerDS
	if q.HeightRange != nil {
		box[2] = Range{q.HeightRange.Min / mmPerDS, q.HeightRange.Max / mmPerDS}
	}
	pixelPerDS := 1 / o.State.Data.DsPerPixel
	mmPerPixel := o.State.MmPerPixel()
	if q.MmPerPixel > 0 {
		pixelPerDS = mmPerDS / q.MmPerPixel
		mmPerPixel = q.MmPerPixel
	}

	lattice := NewLattice3(
		axisSamples(box[0], pixelPerDS),
		axisSamples(box[1], pixelPerDS),
		axisSamples(box[2], pixelPerDS),
	)
	g := lattice.Grid()
	f, err := o.Evaluate(g, true)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:       KindCube,
		Shape:      f.Shape,
		Coords:     g.Points,
		B:          f.B,
		J:          f.J,
		Div:        f.Div,
		MmPerPixel: mmPerPixel,
	}, nil
}
