package magcube

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wavyJacobian(p Point3) Mat3 {
	return Mat3{M: [3][3]Real{
		{0, math.Cos(p.Y) * p.Z, math.Sin(p.Y)},
		{2 * p.X, 0, 0},
		{-math.Exp(-p.X), p.Z, p.Y},
	}}
}

func TestFuncModelFiniteDifferences(t *testing.T) {
	m := wavyField()
	pts := []Point3{{0.1, 0.2, 0.3}, {-1, 0.5, 2}, {0.7, -0.4, -0.9}}
	out, err := m.Forward(pts, Mode{Grad: true})
	require.NoError(t, err)
	require.Len(t, out.B, len(pts))
	require.Len(t, out.Jac, len(pts))
	for i, p := range pts {
		want := wavyJacobian(p)
		for k := 0; k < 3; k++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, want.M[k][j], out.Jac[i].M[k][j], 1e-6, "point %d ∂B_%d/∂x_%d", i, k, j)
			}
		}
	}
}

func TestFuncModelNoGrad(t *testing.T) {
	out, err := wavyField().Forward([]Point3{{1, 2, 3}}, Mode{})
	require.NoError(t, err)
	assert.Nil(t, out.Jac)
	assert.Equal(t, Vector3{math.Sin(2) * 3, 1, math.Exp(-1) + 6}, out.B[0])
}

func TestFuncModelAnalyticJacobian(t *testing.T) {
	out, err := rotationField().Forward([]Point3{{1, 1, 1}, {2, 0, 0}}, Mode{Grad: true})
	require.NoError(t, err)
	for _, jac := range out.Jac {
		assert.Equal(t, Vector3{0, 0, 2}, curl(jac))
	}
}

func TestFuncModelWithoutField(t *testing.T) {
	_, err := (&FuncModel{}).Forward([]Point3{{}}, Mode{})
	require.Error(t, err)
}

func TestCentralJacobianOrdering(t *testing.T) {
	var probes []Point3
	eval := func(pts []Point3) ([]Vector3, error) {
		probes = append(probes, pts...)
		out := make([]Vector3, len(pts))
		for i, p := range pts {
			out[i] = Vector3{p.X, 2 * p.Y, 3 * p.Z}
		}
		return out, nil
	}
	jacs, err := centralJacobian([]Point3{{1, 1, 1}, {0, 0, 0}}, 0.5, eval)
	require.NoError(t, err)
	require.Len(t, probes, 12)
	assert.Equal(t, Point3{1.5, 1, 1}, probes[0])
	assert.Equal(t, Point3{0.5, 1, 1}, probes[1])
	assert.Equal(t, Point3{0, 0, -0.5}, probes[11])
	for _, jac := range jacs {
		assert.Equal(t, Mat3{M: [3][3]Real{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}}, jac)
	}

	failing := func([]Point3) ([]Vector3, error) { return nil, errBoom }
	_, err = centralJacobian([]Point3{{}}, 0.1, failing)
	assert.True(t, errors.Is(err, errBoom))

	jacs, err = centralJacobian(nil, 0.1, failing)
	assert.NoError(t, err)
	assert.Empty(t, jacs)
}

func TestPotentialModelCurl(t *testing.T) {
	// A = (0, 0, x·y) → B = ∇×A = (x, -y, 0), J = ∇×B = 0
	a := &FuncModel{
		Field: func(p Point3) Vector3 { return Vector3{0, 0, p.X * p.Y} },
	}
	m := &PotentialModel{A: a}
	assert.True(t, m.RequiresGrad())
	out, err := m.Forward([]Point3{{0.5, -0.25, 1}, {2, 3, 4}}, Mode{Grad: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.B[0].X, 1e-6)
	assert.InDelta(t, 0.25, out.B[0].Y, 1e-6)
	assert.InDelta(t, 0, out.B[0].Z, 1e-6)
	assert.InDelta(t, -3, out.B[1].Y, 1e-6)
	for _, jac := range out.Jac {
		assert.InDelta(t, 0, curl(jac).Len(), 1e-4)
		assert.InDelta(t, 0, divergence(jac), 1e-4)
	}
}

func TestPotentialModelNeedsJacobian(t *testing.T) {
	m := &PotentialModel{A: &noJac{}}
	_, err := m.Forward([]Point3{{}}, Mode{})
	assert.ErrorIs(t, err, ErrNoJacobian)
}

// noJac ignores Mode.Grad.
type noJac struct{}

func (noJac) Forward(coords []Point3, _ Mode) (*Batch, error) {
	return &Batch{B: make([]Vector3, len(coords))}, nil
}
func (noJac) RequiresGrad() bool { return false }
func (noJac) ZeroGrad()          {}
