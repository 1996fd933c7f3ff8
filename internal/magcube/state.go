package magcube

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DomainCartesian = "cartesian"
	DomainSpherical = "spherical"
)

// DataCfg is the data section stored alongside a trained model.
type DataCfg struct {
	Type        string   `yaml:"type"`
	GPerDB      Real     `yaml:"G_per_dB"`
	MmPerDS     Real     `yaml:"Mm_per_ds"`
	RadiusRange []Real   `yaml:"radius_range,omitempty"` // solar radii, spherical only
	CoordRange  [][]Real `yaml:"coord_range,omitempty"`  // per axis [min, max] in ds, cartesian only
	DsPerPixel  Real     `yaml:"ds_per_pixel,omitempty"`
	SpatialNorm Real     `yaml:"spatial_norm,omitempty"`
}

type LayerCfg struct {
	Weight [][]Real `yaml:"weight"` // out×in
	Bias   []Real   `yaml:"bias"`
}

type ModelCfg struct {
	Kind   string     `yaml:"kind"` // mlp | potential
	Layers []LayerCfg `yaml:"layers"`
	Step   Real       `yaml:"step,omitempty"` // finite-difference step for potential models
	W0     Real       `yaml:"w0,omitempty"`   // sine frequency of hidden activations, 1 when 0
}

// State is a loaded model together with its normalization data.
type State struct {
	Data  DataCfg  `yaml:"data"`
	Model ModelCfg `yaml:"model"`
}

// Scale returns the scale context every evaluation of this state must use.
func (s *State) Scale() Scale {
	return Scale{GaussPerDB: s.Data.GPerDB, MmPerDS: s.Data.MmPerDS}
}

func (s *State) IsSpherical() bool { return s.Data.Type == DomainSpherical }

func (s *State) requireSpherical() error {
	if !s.IsSpherical() {
		return fmt.Errorf("requires spherical data, got %q: %w", s.Data.Type, ErrDomainType)
	}
	return nil
}

// RadiusRange is the default radial extent in solar radii.
func (s *State) RadiusRange() (Range, error) {
	if len(s.Data.RadiusRange) != 2 {
		return Range{}, fmt.Errorf("radius_range has %d values, want 2", len(s.Data.RadiusRange))
	}
	return Range{s.Data.RadiusRange[0], s.Data.RadiusRange[1]}, nil
}

// CoordRange is the default cartesian box in normalized units.
func (s *State) CoordRange() ([3]Range, error) {
	var box [3]Range
	if len(s.Data.CoordRange) != 3 {
		return box, ErrNoCoordRange
	}
	for i, r := range s.Data.CoordRange {
		if len(r) != 2 {
			return box, fmt.Errorf("coord_range axis %d has %d values, want 2: %w", i, len(r), ErrNoCoordRange)
		}
		box[i] = Range{r[0], r[1]}
	}
	return box, nil
}

// MmPerPixel is the native lattice spacing of cartesian data.
func (s *State) MmPerPixel() Real { return s.Data.DsPerPixel * s.Data.MmPerDS }

// layers folds W0 into every layer followed by sin: sin(w0·(xW+b)).
func (c ModelCfg) layers() []LayerCfg {
	if c.W0 == 0 || c.W0 == 1 {
		return c.Layers
	}
	out := make([]LayerCfg, len(c.Layers))
	for i, l := range c.Layers {
		out[i] = l
		if i == len(c.Layers)-1 {
			break
		}
		out[i].Weight = make([][]Real, len(l.Weight))
		for o, row := range l.Weight {
			out[i].Weight[o] = make([]Real, len(row))
			for k, v := range row {
				out[i].Weight[o][k] = c.W0 * v
			}
		}
		out[i].Bias = make([]Real, len(l.Bias))
		for o, v := range l.Bias {
			out[i].Bias[o] = c.W0 * v
		}
	}
	return out
}

// Build validates and constructs the runtime model.
func (c ModelCfg) Build() (Model, error) {
	switch c.Kind {
	case "", "mlp":
		return NewMLP(c.layers())
	case "potential":
		a, err := NewMLP(c.layers())
		if err != nil {
			return nil, fmt.Errorf("vector potential: %w", err)
		}
		return &PotentialModel{A: a, Step: c.Step}, nil
	}
	return nil, fmt.Errorf("%q: %w", c.Kind, ErrUnknownModel)
}

func (d DataCfg) validate() error {
	if d.Type != DomainCartesian && d.Type != DomainSpherical {
		return fmt.Errorf("data type %q: %w", d.Type, ErrDomainType)
	}
	if d.GPerDB <= 0 || d.MmPerDS <= 0 {
		return fmt.Errorf("G_per_dB and Mm_per_ds must be > 0, got %g and %g", d.GPerDB, d.MmPerDS)
	}
	if d.Type == DomainCartesian && d.DsPerPixel <= 0 {
		return fmt.Errorf("cartesian data needs ds_per_pixel > 0, got %g", d.DsPerPixel)
	}
	return nil
}

// LoadState reads a state file (YAML, or JSON since it is a subset).
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseState(data)
}

func parseState(data []byte) (*State, error) {
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	// Defaults / validation
	if st.Data.SpatialNorm <= 0 {
		st.Data.SpatialNorm = 1
	}
	if err := st.Data.validate(); err != nil {
		return nil, err
	}
	DebugLog("Loaded state: type=%s, G_per_dB=%g, Mm_per_ds=%g, model=%s (%d layers)", st.Data.Type, st.Data.GPerDB, st.Data.MmPerDS, st.Model.Kind, len(st.Model.Layers))
	return &st, nil
}
