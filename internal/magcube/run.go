package magcube

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Samples returns the evaluated samples of r: all of them, or only those
// inside the mask for a region.
func (r *Result) Samples() (b, j []Vector3, div []Real) {
	if r.Mask == nil {
		return r.B, r.J, r.Div
	}
	for i, in := range r.Mask {
		if !in {
			continue
		}
		b = append(b, r.B[i])
		if r.J != nil {
			j = append(j, r.J[i])
		}
		if r.Div != nil {
			div = append(div, r.Div[i])
		}
	}
	return b, j, div
}

type summary struct {
	points     int
	bMin, bMax Real
	jMean      Real
}

func summarize(r *Result) summary {
	b, j, _ := r.Samples()
	s := summary{points: len(b), bMin: math.Inf(1), bMax: math.Inf(-1)}
	for _, v := range b {
		l := v.Len()
		s.bMin = math.Min(s.bMin, l)
		s.bMax = math.Max(s.bMax, l)
	}
	if len(b) == 0 {
		s.bMin, s.bMax = 0, 0
	}
	if len(j) > 0 {
		ls := make([]Real, len(j))
		for i, v := range j {
			ls[i] = v.Len()
		}
		s.jMean = mean(ls)
	}
	return s
}

func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	state, err := LoadState(cfg.State)
	if err != nil {
		return err
	}
	model, err := state.Model.Build()
	if err != nil {
		return err
	}
	domain, err := cfg.Domain.Build()
	if err != nil {
		return err
	}
	if cfg.Progress {
		Progress = true
	}

	out := NewOutput(state, model)
	out.BatchSize = cfg.BatchSize
	start := time.Now()
	res, err := out.Load(domain)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s := summarize(res)
	Log.Infow("evaluated",
		"domain", res.Kind.String(),
		"shape", res.Shape,
		"points", humanize.Comma(int64(s.points)),
		"time", elapsed,
		"|B|_min_G", s.bMin,
		"|B|_max_G", s.bMax,
		"|J|_mean_G_per_s", s.jMean,
	)

	if cfg.Metrics && res.J != nil {
		b, j, div := res.Samples()
		m, err := ComputeMetrics(b, j, div)
		if err != nil {
			return err
		}
		Log.Infow("metrics",
			"divergence", m.Divergence,
			"force_free", m.ForceFree,
			"sigma_J", m.SigmaJ,
			"theta_J_deg", m.ThetaJ,
		)
	}

	if Debug {
		batchStats()
	}
	return nil
}

// Info logs the scale context and domain defaults of a state file.
func Info(statePath string) error {
	state, err := LoadState(statePath)
	if err != nil {
		return err
	}
	sc := state.Scale()
	fields := []interface{}{
		"type", state.Data.Type,
		"G_per_dB", sc.GPerDB(),
		"m_per_ds", sc.MPerDS(),
		"model", state.Model.Kind,
		"layers", len(state.Model.Layers),
	}
	if state.IsSpherical() {
		if r, err := state.RadiusRange(); err == nil {
			fields = append(fields,
				"radius_range_solRad", []Real{r.Min, r.Max},
				"radius_range_Mm", []Real{sc.Length(r.Min), sc.Length(r.Max)},
			)
		}
	} else {
		fields = append(fields, "Mm_per_pixel", state.MmPerPixel())
		if box, err := state.CoordRange(); err == nil {
			fields = append(fields,
				"coord_range_ds", box,
				"height_range_Mm", []Real{sc.Length(box[2].Min), sc.Length(box[2].Max)},
			)
		}
	}
	Log.Infow("state", fields...)
	return nil
}
