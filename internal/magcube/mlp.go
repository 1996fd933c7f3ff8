package magcube

import (
	"fmt"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

type dense struct {
	in, out int
	w       []Real // in×out, row-major
	b       []Real
}

// MLP is a sine-activated coordinate network: every layer but the last is
// followed by sin. Layer weights come in the stored out×in layout and are
// kept transposed so a chunk is a plain (n×in)·(in×out) product.
//
// Each Forward call builds one fresh expression graph; in grad mode the
// input Jacobian comes from a single gorgonia.Grad over the stacked chunk.
type MLP struct {
	layers []dense
	vm     gorgonia.VM
	graphs int // graphs built and run so far
}

// NewMLP validates the layer chain 3 → ... → 3 and copies the weights.
func NewMLP(cfgs []LayerCfg) (*MLP, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("mlp: no layers")
	}
	in := 3
	layers := make([]dense, 0, len(cfgs))
	for li, c := range cfgs {
		out := len(c.Weight)
		if out == 0 {
			return nil, fmt.Errorf("mlp layer %d: empty weight", li)
		}
		if len(c.Bias) != out {
			return nil, fmt.Errorf("mlp layer %d: bias has %d entries, want %d", li, len(c.Bias), out)
		}
		d := dense{in: in, out: out, w: make([]Real, in*out), b: append([]Real(nil), c.Bias...)}
		for o, row := range c.Weight {
			if len(row) != in {
				return nil, fmt.Errorf("mlp layer %d: row %d has %d inputs, want %d", li, o, len(row), in)
			}
			for i, v := range row {
				d.w[i*out+o] = v
			}
		}
		layers = append(layers, d)
		in = out
	}
	if in != 3 {
		return nil, fmt.Errorf("mlp: output width %d, want 3", in)
	}
	DebugLog("Created mlp with %d layers", len(layers))
	return &MLP{layers: layers}, nil
}

func (m *MLP) RequiresGrad() bool { return false }

// ZeroGrad releases the tape machine (and with it the gradient values) of
// the previous chunk.
func (m *MLP) ZeroGrad() {
	if m.vm != nil {
		_ = m.vm.Close()
		m.vm = nil
	}
}

func matrixNode(g *gorgonia.ExprGraph, name string, rows, cols int, data []Real) *gorgonia.Node {
	backing := append([]Real(nil), data...)
	return gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(rows, cols),
		gorgonia.WithName(name),
		gorgonia.WithValue(tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))),
	)
}

// run evaluates the network on rows flattened points. With grad, rows holds
// three stacked copies of the chunk and block k selects output component k,
// so one Grad of the summed selection yields ∂B_k/∂x_j for every point in
// block k. Each output row only depends on its own input row.
func (m *MLP) run(data []Real, rows int, grad bool) ([]Real, []Real, error) {
	m.ZeroGrad()
	g := gorgonia.NewGraph()
	x := matrixNode(g, "coords", rows, 3, data)
	h := x
	var err error
	for li, l := range m.layers {
		w := matrixNode(g, fmt.Sprintf("w%d", li), l.in, l.out, l.w)
		b := matrixNode(g, fmt.Sprintf("b%d", li), 1, l.out, l.b)
		if h, err = gorgonia.Mul(h, w); err != nil {
			return nil, nil, fmt.Errorf("layer %d: %w", li, err)
		}
		if h, err = gorgonia.BroadcastAdd(h, b, nil, []byte{0}); err != nil {
			return nil, nil, fmt.Errorf("layer %d bias: %w", li, err)
		}
		if li < len(m.layers)-1 {
			if h, err = gorgonia.Sin(h); err != nil {
				return nil, nil, fmt.Errorf("layer %d activation: %w", li, err)
			}
		}
	}
	var outVal, gradVal gorgonia.Value
	gorgonia.Read(h, &outVal)
	if grad {
		n := rows / 3
		sel := make([]Real, rows*3)
		for k := 0; k < 3; k++ {
			for i := 0; i < n; i++ {
				sel[(k*n+i)*3+k] = 1
			}
		}
		picked, err := gorgonia.HadamardProd(h, matrixNode(g, "select", rows, 3, sel))
		if err != nil {
			return nil, nil, err
		}
		cost, err := gorgonia.Sum(picked)
		if err != nil {
			return nil, nil, err
		}
		grads, err := gorgonia.Grad(cost, x)
		if err != nil {
			return nil, nil, fmt.Errorf("input gradient: %w", err)
		}
		gorgonia.Read(grads[0], &gradVal)
	}
	m.vm = gorgonia.NewTapeMachine(g)
	m.graphs++
	DebugLog("mlp graph %d: %d rows, grad=%v", m.graphs, rows, grad)
	if err := m.vm.RunAll(); err != nil {
		return nil, nil, err
	}
	out, err := valueData(outVal, rows*3)
	if err != nil {
		return nil, nil, err
	}
	if !grad {
		return out, nil, nil
	}
	dx, err := valueData(gradVal, rows*3)
	if err != nil {
		return nil, nil, err
	}
	return out, dx, nil
}

func valueData(v gorgonia.Value, want int) ([]Real, error) {
	if v == nil {
		return nil, fmt.Errorf("graph produced no value")
	}
	data, ok := v.Data().([]float64)
	if !ok || len(data) != want {
		return nil, fmt.Errorf("graph value has %d elements, want %d: %w", len(data), want, ErrShapeMismatch)
	}
	return append([]Real(nil), data...), nil
}

func toVectors(flat []Real) []Vector3 {
	out := make([]Vector3, len(flat)/3)
	for i := range out {
		out[i] = Vector3{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

func (m *MLP) Forward(coords []Point3, mode Mode) (*Batch, error) {
	n := len(coords)
	if n == 0 {
		return &Batch{}, nil
	}
	copies := 1
	if mode.Grad {
		copies = 3
	}
	data := make([]Real, 0, 3*n*copies)
	for c := 0; c < copies; c++ {
		for _, p := range coords {
			data = append(data, p.X, p.Y, p.Z)
		}
	}
	out, grad, err := m.run(data, n*copies, mode.Grad)
	if err != nil {
		return nil, err
	}
	batch := &Batch{B: toVectors(out[:3*n])}
	if !mode.Grad {
		return batch, nil
	}
	batch.Jac = make([]Mat3, n)
	for k := 0; k < 3; k++ {
		for i := 0; i < n; i++ {
			row := (k*n + i) * 3
			for j := 0; j < 3; j++ {
				batch.Jac[i].M[k][j] = grad[row+j]
			}
		}
	}
	return batch, nil
}
