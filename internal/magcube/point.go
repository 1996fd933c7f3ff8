package magcube

// Point3 is a position in normalized (model) length units.
type Point3 struct {
	X, Y, Z Real
}

// Add lets you translate a Point3 by a Vector3.
func (p Point3) Add(v Vector3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Axis returns coordinate i (0=X, 1=Y, 2=Z).
func (p Point3) Axis(i int) Real {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}
