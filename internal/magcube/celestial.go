package magcube

import "fmt"

type LengthUnit uint8

const (
	Dimensionless LengthUnit = iota // taken as solar radii
	SolarRadii
	Megameters
	Meters
)

// SkyCoord is an externally supplied heliographic position. Angles are in
// radians, latitude measured from the equator.
type SkyCoord struct {
	Lat, Lon Real
	Radius   Real
	Unit     LengthUnit
}

// Frame converts coordinates from their own frame to Carrington.
type Frame interface {
	ToCarrington(c SkyCoord) (SkyCoord, error)
}

// CarringtonFrame is the identity: coordinates are already Carrington.
type CarringtonFrame struct{}

func (CarringtonFrame) ToCarrington(c SkyCoord) (SkyCoord, error) { return c, nil }

// StonyhurstFrame shifts Stonyhurst longitudes by L0, the Carrington
// longitude of the central meridian at the observation time.
type StonyhurstFrame struct {
	L0 Real // radians
}

func (f StonyhurstFrame) ToCarrington(c SkyCoord) (SkyCoord, error) {
	c.Lon = WrapAngle(c.Lon+f.L0, TwoPi)
	return c, nil
}

// solarRadii converts a radius to solar radii.
func (c SkyCoord) solarRadii() (Real, error) {
	switch c.Unit {
	case Dimensionless, SolarRadii:
		return c.Radius, nil
	case Megameters:
		return c.Radius * MetersPerMm / SolarRadiusMeters, nil
	case Meters:
		return c.Radius / SolarRadiusMeters, nil
	}
	return 0, fmt.Errorf("length unit %d: %w", c.Unit, ErrBadFrame)
}

// skyCoordsToCartesian converts to Carrington once and then to the
// model's cartesian frame (solar radii).
func skyCoordsToCartesian(coords []SkyCoord, frame Frame) ([]Point3, error) {
	if frame == nil {
		return nil, ErrBadFrame
	}
	pts := make([]Point3, len(coords))
	for i, c := range coords {
		hc, err := frame.ToCarrington(c)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		r, err := hc.solarRadii()
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		pts[i] = SphericalToCartesian(Spherical{R: r, Theta: LatitudeToPolar(hc.Lat), Phi: hc.Lon})
	}
	return pts, nil
}

// LoadSkyCoords evaluates the field at celestial coordinates given in frame.
func (o *Output) LoadSkyCoords(coords []SkyCoord, frame Frame) (*Field, error) {
	if err := o.State.requireSpherical(); err != nil {
		return nil, err
	}
	pts, err := skyCoordsToCartesian(coords, frame)
	if err != nil {
		return nil, err
	}
	return o.LoadCoords(PointList(pts), false)
}
