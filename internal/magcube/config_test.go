package magcube

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCfgBuild(t *testing.T) {
	d, err := DomainCfg{Kind: "cube", HeightRange: []Real{0, 20}, MmPerPixel: 0.72}.Build()
	require.NoError(t, err)
	assert.Equal(t, Cube{HeightRange: &Range{0, 20}, MmPerPixel: 0.72}, d)

	d, err = DomainCfg{Kind: "cube", HeightRange: []Real{0, 0}}.Build()
	require.NoError(t, err)
	assert.Equal(t, Cube{HeightRange: &Range{0, 0}}, d, "a [0, 0] slice is kept, not defaulted")

	d, err = DomainCfg{Kind: "shell", LatitudeRange: []Real{-30, 30}, Sampling: []int{4, 5, 6}}.Build()
	require.NoError(t, err)
	s := d.(Shell)
	assert.InDelta(t, -math.Pi/6, s.LatitudeRange.Min, 1e-15)
	assert.InDelta(t, math.Pi/6, s.LatitudeRange.Max, 1e-15)
	assert.Equal(t, Range{0, TwoPi}, *s.LongitudeRange)
	assert.Equal(t, [3]int{4, 5, 6}, s.Sampling)
	assert.Nil(t, s.RadiusRange)

	d, err = DomainCfg{Kind: "region", RadiusRange: []Real{1, 1.2}, LongitudeRange: []Real{-45, 45}}.Build()
	require.NoError(t, err)
	r := d.(Region)
	assert.Equal(t, Range{1, 1.2}, *r.RadiusRange)
	assert.Equal(t, Real(DefaultResolution), r.Resolution)
	assert.InDelta(t, -math.Pi/4, r.LongitudeRange.Min, 1e-15)

	d, err = DomainCfg{Kind: "points", Points: [][]Real{{1, 2, 3}, {4, 5, 6}}, Currents: true}.Build()
	require.NoError(t, err)
	p := d.(Points)
	assert.True(t, p.ComputeCurrents)
	assert.Equal(t, []Point3{{1, 2, 3}, {4, 5, 6}}, p.Grid.Points)
	assert.Equal(t, []int{2}, p.Grid.Shape)

	d, err = DomainCfg{Kind: "points", Points: [][]Real{{1, 2, 3}, {4, 5, 6}}, Shape: []int{1, 2}}.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, d.(Points).Grid.Shape)

	_, err = DomainCfg{Kind: "points", Points: [][]Real{{1, 2, 3}, {4, 5, 6}}, Shape: []int{3}}.Build()
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDomainCfgBuildErrors(t *testing.T) {
	cases := map[string]DomainCfg{
		"unknown kind":   {Kind: "torus"},
		"height values":  {Kind: "cube", HeightRange: []Real{1, 2, 3}},
		"sampling count": {Kind: "shell", Sampling: []int{1, 2}},
		"point width":    {Kind: "points", Points: [][]Real{{1, 2}}},
		"latitude":       {Kind: "region", LatitudeRange: []Real{10}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Build()
			assert.Error(t, err)
		})
	}
	_, err := DomainCfg{Kind: "torus"}.Build()
	assert.ErrorIs(t, err, ErrUnknownDomain)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "state: models/state.yaml\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "models", "state.yaml"), cfg.State)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, "cube", cfg.Domain.Kind)

	path = writeFile(t, dir, "abs.yaml", "state: /data/state.yaml\nbatch_size: 128\ndomain:\n  kind: shell\n  sampling: [2, 2, 2]\n")
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/state.yaml", cfg.State)
	assert.Equal(t, 128, cfg.BatchSize)
	assert.Equal(t, []int{2, 2, 2}, cfg.Domain.Sampling)

	_, err = loadConfig(writeFile(t, dir, "empty.yaml", "batch_size: 4\n"))
	assert.Error(t, err)
	_, err = loadConfig(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}
