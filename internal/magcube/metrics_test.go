package magcube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsZeroCurrent(t *testing.T) {
	b := []Vector3{{1, 2, 3}, {0, 0, 1}, {-1, 0, 0}}
	j := make([]Vector3, len(b))
	m, err := ComputeMetrics(b, j, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Divergence)
	assert.Equal(t, 0.0, m.ForceFree)
	assert.Equal(t, 0.0, m.SigmaJ)
	assert.Equal(t, 0.0, m.ThetaJ)
	assert.False(t, math.IsNaN(m.ThetaJ))
}

func TestMetricsParallelCurrent(t *testing.T) {
	b := []Vector3{{1, 2, 3}, {0, -4, 0}}
	j := []Vector3{{2, 4, 6}, {0, 1, 0}}
	m, err := ComputeMetrics(b, j, []Real{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.ForceFree)
	assert.Equal(t, 0.0, m.SigmaJ)
	assert.InDelta(t, 0, m.ThetaJ, 1e-3)
}

func TestMetricsPerpendicularCurrent(t *testing.T) {
	b := []Vector3{{1, 0, 0}, {0, 2, 0}}
	j := []Vector3{{0, 1, 0}, {0, 0, 2}}
	theta, err := ThetaJ(b, j)
	require.NoError(t, err)
	assert.InDelta(t, 90, theta, 0.05)

	ff, err := ForceFreeScore(b, j)
	require.NoError(t, err)
	// |J×B|/|B| = |J| for perpendicular vectors
	assert.InDelta(t, 1.5, ff, 1e-6)

	sigma, err := SigmaJ(b, j)
	require.NoError(t, err)
	assert.InDelta(t, 1, sigma, 1e-6)
}

func TestDivergenceScore(t *testing.T) {
	s, err := DivergenceScore([]Vector3{{1, 0, 0}, {0, 0, 2}}, []Real{1, -4})
	require.NoError(t, err)
	assert.InDelta(t, (1-2)/2.0, s, 1e-6)

	_, err = DivergenceScore([]Vector3{{}}, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = ComputeMetrics([]Vector3{{}}, nil, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestBoundaryDiff(t *testing.T) {
	b := []Vector3{{1, 0, 0}, {3, 4, 0}, {1, 1, 1}}
	obs := []Vector3{{0, 0, 0}, {0, 0, 0}, {math.NaN(), 0, 0}}
	s, err := BoundaryDiff(b, obs, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3, s.Diff, 1e-12, "nan observations are skipped")
	assert.True(t, math.IsNaN(s.DiffErr))

	bErr := []Vector3{{2, 0, 0}, {1, 1, 0}, {0, 0, 0}}
	s, err = BoundaryDiff(b, obs, nil, bErr)
	require.NoError(t, err)
	// max(|d| - err, 0): (0,0,0) and (2,3,0)
	assert.InDelta(t, math.Sqrt(13)/2, s.DiffErr, 1e-12)

	// transform swaps x and y before comparing
	swap := Mat3{M: [3][3]Real{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}}}
	s, err = BoundaryDiff([]Vector3{{1, 2, 0}}, []Vector3{{2, 1, 0}}, []Mat3{swap}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Diff)

	_, err = BoundaryDiff(b, obs[:1], nil, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = BoundaryDiff(b, obs, []Mat3{swap}, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestIntegratedCurrent(t *testing.T) {
	shape := []int{2, 3, 4}
	j := make([]Vector3, product(shape))
	for i := range j {
		j[i] = Vector3{Z: 1}
	}
	// flat index (1, 2, 3)
	j[(1*3+2)*4+3] = Vector3{X: 3, Y: 4}

	m, sh, err := IntegratedCurrent(j, shape, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sh)
	require.Len(t, m, 6)
	assert.Equal(t, 4.0, m[0])
	assert.Equal(t, 8.0, m[1*3+2])

	m, sh, err = IntegratedCurrent(j, shape, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, sh)
	assert.Equal(t, 2.0, m[0])
	assert.Equal(t, 6.0, m[2*4+3])

	m, sh, err = IntegratedCurrent(j, shape, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, sh)
	assert.Equal(t, 7.0, m[1*4+3])

	_, _, err = IntegratedCurrent(j, shape, 3)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, _, err = IntegratedCurrent(j[1:], shape, 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
