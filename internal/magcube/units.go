package magcube

import "math"

// Scale is the normalization context of one loaded model: Gauss per
// normalized field unit and Mm per normalized length unit.
type Scale struct {
	GaussPerDB Real
	MmPerDS    Real
}

// GPerDB is the field-strength conversion factor (G per normalized unit).
func (s Scale) GPerDB() Real { return s.GaussPerDB }

// MPerDS is the length conversion factor (m per normalized unit).
func (s Scale) MPerDS() Real { return s.MmPerDS * MetersPerMm }

// C is the speed of light in m/s; it only enters the current-density factor.
func (s Scale) C() Real { return SpeedOfLight }

// Field converts a normalized field value to Gauss.
func (s Scale) Field(v Vector3) Vector3 {
	g := s.GPerDB()
	return Vector3{v.X * g, v.Y * g, v.Z * g}
}

// Current converts the curl of a normalized field to G/s:
// j · G_per_dB / m_per_ds · c / (4π), evaluated left to right.
func (s Scale) Current(v Vector3) Vector3 {
	g, m, c := s.GPerDB(), s.MPerDS(), s.C()
	return Vector3{
		v.X * g / m * c / (4 * math.Pi),
		v.Y * g / m * c / (4 * math.Pi),
		v.Z * g / m * c / (4 * math.Pi),
	}
}

// Divergence converts a normalized divergence to G/Mm.
func (s Scale) Divergence(d Real) Real { return d * s.GaussPerDB / s.MmPerDS }

// Length converts normalized length to Mm.
func (s Scale) Length(ds Real) Real { return ds * s.MmPerDS }
