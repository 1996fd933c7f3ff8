package magcube

import "math"

const (
	DefaultBatchSize  = 4096
	DefaultResolution = 64 // lattice points per solar radius for masked regions
	DefaultFDStep     = 1e-4
	BoundsSamples     = 50 // per axis, when sampling a spherical window's extent
	Stabilizer        = 1e-7
	SpeedOfLight      = 299792458.0 // m/s
	MetersPerMm       = 1e6
	SolarRadiusMeters = 6.957e8 // IAU nominal
	TwoPi             = 2 * math.Pi
)

// Default spherical sampling counts (radius, latitude, longitude).
var DefaultSampling = [3]int{100, 180, 360}
