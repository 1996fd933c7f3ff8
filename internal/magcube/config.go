package magcube

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DomainCfg describes the query region. Angles are in degrees.
type DomainCfg struct {
	Kind           string   `yaml:"kind"`                   // cube | shell | region | points
	HeightRange    []Real   `yaml:"height_range,omitempty"` // Mm
	MmPerPixel     Real     `yaml:"mm_per_pixel,omitempty"`
	RadiusRange    []Real   `yaml:"radius_range,omitempty"` // solar radii
	LatitudeRange  []Real   `yaml:"latitude_range,omitempty"`
	LongitudeRange []Real   `yaml:"longitude_range,omitempty"`
	Sampling       []int    `yaml:"sampling,omitempty"`
	Resolution     Real     `yaml:"resolution,omitempty"` // px per solar radius
	Points         [][]Real `yaml:"points,omitempty"`
	Shape          []int    `yaml:"shape,omitempty"`    // points only, defaults to [len(points)]
	Currents       bool     `yaml:"currents,omitempty"` // points only
}

type Config struct {
	State     string    `yaml:"state"`
	BatchSize int       `yaml:"batch_size,omitempty"`
	Progress  bool      `yaml:"progress,omitempty"`
	Metrics   bool      `yaml:"metrics,omitempty"`
	Domain    DomainCfg `yaml:"domain"`
}

// rangeOf reads an optional [min, max] pair; an absent pair is nil.
func rangeOf(vals []Real, scale Real, what string) (*Range, error) {
	switch len(vals) {
	case 0:
		return nil, nil
	case 2:
		return &Range{vals[0] * scale, vals[1] * scale}, nil
	}
	return nil, fmt.Errorf("%s has %d values, want 2", what, len(vals))
}

// Build validates and constructs the runtime domain.
func (d DomainCfg) Build() (Domain, error) {
	const deg = math.Pi / 180
	height, err := rangeOf(d.HeightRange, 1, "height_range")
	if err != nil {
		return nil, err
	}
	radius, err := rangeOf(d.RadiusRange, 1, "radius_range")
	if err != nil {
		return nil, err
	}
	lat, err := rangeOf(d.LatitudeRange, deg, "latitude_range")
	if err != nil {
		return nil, err
	}
	lon, err := rangeOf(d.LongitudeRange, deg, "longitude_range")
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case "cube":
		return Cube{HeightRange: height, MmPerPixel: d.MmPerPixel}, nil
	case "shell":
		s := DefaultShell()
		s.RadiusRange = radius
		if lat != nil {
			s.LatitudeRange = lat
		}
		if lon != nil {
			s.LongitudeRange = lon
		}
		if len(d.Sampling) != 0 {
			if len(d.Sampling) != 3 {
				return nil, fmt.Errorf("sampling has %d values, want 3", len(d.Sampling))
			}
			copy(s.Sampling[:], d.Sampling)
		}
		return s, nil
	case "region":
		r := DefaultRegion()
		r.RadiusRange = radius
		if lat != nil {
			r.LatitudeRange = lat
		}
		if lon != nil {
			r.LongitudeRange = lon
		}
		if d.Resolution > 0 {
			r.Resolution = d.Resolution
		}
		return r, nil
	case "points":
		pts := make([]Point3, len(d.Points))
		for i, p := range d.Points {
			if len(p) != 3 {
				return nil, fmt.Errorf("point %d has %d coordinates, want 3", i, len(p))
			}
			pts[i] = Point3{p[0], p[1], p[2]}
		}
		shape := d.Shape
		if len(shape) == 0 {
			shape = []int{len(pts)}
		}
		g, err := NewGrid(shape, pts)
		if err != nil {
			return nil, err
		}
		return Points{Grid: g, ComputeCurrents: d.Currents}, nil
	}
	return nil, fmt.Errorf("%q: %w", d.Kind, ErrUnknownDomain)
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Defaults / validation
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.State == "" {
		return nil, fmt.Errorf("config has no state")
	}
	if !filepath.IsAbs(cfg.State) {
		cfg.State = filepath.Join(filepath.Dir(path), cfg.State)
	}
	if cfg.Domain.Kind == "" {
		cfg.Domain.Kind = "cube"
	}
	DebugLog("Loaded config from %s: state=%s, domain=%s, batch=%d", path, cfg.State, cfg.Domain.Kind, cfg.BatchSize)
	return &cfg, nil
}
