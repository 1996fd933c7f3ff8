package magcube

import "fmt"

// Mode selects what a model computes for one chunk.
type Mode struct {
	// Grad asks for the Jacobian of the output with respect to the input
	// coordinates. Without it the model runs in its cheapest forward mode.
	Grad bool
}

// Batch is a model's output for one chunk, in normalized units.
type Batch struct {
	B   []Vector3
	Jac []Mat3 // Jac[i].M[k][j] = ∂B_k/∂x_j, set only when Mode.Grad
}

// Model is a trained vector-field model queried chunk by chunk.
type Model interface {
	// Forward maps len(coords) normalized coordinates to field values.
	Forward(coords []Point3, mode Mode) (*Batch, error)
	// RequiresGrad reports whether Forward always differentiates its input,
	// e.g. because the field itself is a derivative of the network output.
	RequiresGrad() bool
	// ZeroGrad drops any gradient state left over from the previous chunk.
	ZeroGrad()
}

// FuncModel adapts an analytic field. Jacobian is optional; without it
// Forward falls back to central differences with step Step.
type FuncModel struct {
	Field    func(Point3) Vector3
	Jacobian func(Point3) Mat3
	Step     Real
	NeedGrad bool
}

func (m *FuncModel) RequiresGrad() bool { return m.NeedGrad }

func (m *FuncModel) ZeroGrad() {}

func (m *FuncModel) eval(pts []Point3) ([]Vector3, error) {
	if m.Field == nil {
		return nil, fmt.Errorf("func model has no field function")
	}
	out := make([]Vector3, len(pts))
	for i, p := range pts {
		out[i] = m.Field(p)
	}
	return out, nil
}

func (m *FuncModel) Forward(coords []Point3, mode Mode) (*Batch, error) {
	b, err := m.eval(coords)
	if err != nil {
		return nil, err
	}
	batch := &Batch{B: b}
	if !mode.Grad {
		return batch, nil
	}
	if m.Jacobian != nil {
		batch.Jac = make([]Mat3, len(coords))
		for i, p := range coords {
			batch.Jac[i] = m.Jacobian(p)
		}
		return batch, nil
	}
	h := m.Step
	if h <= 0 {
		h = DefaultFDStep
	}
	batch.Jac, err = centralJacobian(coords, h, m.eval)
	if err != nil {
		return nil, err
	}
	return batch, nil
}
