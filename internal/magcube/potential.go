package magcube

import "fmt"

// PotentialModel wraps a network that predicts a vector potential A and
// serves B = ∇×A. Producing B needs the input Jacobian of A, so it always
// requires gradients. Its own Jacobian (for J) comes from central
// differences of B.
type PotentialModel struct {
	A    Model
	Step Real
}

func (m *PotentialModel) RequiresGrad() bool { return true }

func (m *PotentialModel) ZeroGrad() { m.A.ZeroGrad() }

func (m *PotentialModel) field(pts []Point3) ([]Vector3, error) {
	out, err := m.A.Forward(pts, Mode{Grad: true})
	if err != nil {
		return nil, err
	}
	if len(out.Jac) != len(pts) {
		return nil, fmt.Errorf("vector potential: %w", ErrNoJacobian)
	}
	b := make([]Vector3, len(pts))
	for i, jac := range out.Jac {
		b[i] = curl(jac)
	}
	return b, nil
}

func (m *PotentialModel) Forward(coords []Point3, mode Mode) (*Batch, error) {
	b, err := m.field(coords)
	if err != nil {
		return nil, err
	}
	batch := &Batch{B: b}
	if mode.Grad {
		h := m.Step
		if h <= 0 {
			h = DefaultFDStep
		}
		if batch.Jac, err = centralJacobian(coords, h, m.field); err != nil {
			return nil, err
		}
	}
	return batch, nil
}
