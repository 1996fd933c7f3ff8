package magcube

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Field holds one evaluation's output in physical units, aligned with the
// input grid: B in G, J in G/s, Div in G/Mm. J and Div are nil unless
// currents were requested.
type Field struct {
	Shape []int
	B     []Vector3
	J     []Vector3
	Div   []Real
}

// Evaluator queries a model in fixed-size chunks. It is bound to the scale
// context of the model it was loaded with.
type Evaluator struct {
	Model       Model
	Scale       Scale
	BatchSize   int  // points per chunk, DefaultBatchSize when 0
	SpatialNorm Real // coordinates are divided by this before evaluation, 1 when 0
}

// NewEvaluator binds a model to its scale context.
func NewEvaluator(model Model, scale Scale) *Evaluator {
	return &Evaluator{Model: model, Scale: scale, BatchSize: DefaultBatchSize, SpatialNorm: 1}
}

// Evaluate runs every point of g through the model, chunk after chunk, and
// returns physical-unit outputs in the grid's order and shape. With
// computeCurrent the field Jacobian is requested and J = ∇×B is formed per
// point. Any chunk error aborts the whole evaluation.
func (e *Evaluator) Evaluate(g Grid, computeCurrent bool) (*Field, error) {
	if product(g.Shape) != len(g.Points) {
		return nil, fmt.Errorf("grid shape %v for %d points: %w", g.Shape, len(g.Points), ErrShapeMismatch)
	}
	bs := e.BatchSize
	if bs == 0 {
		bs = DefaultBatchSize
	}
	if bs < 1 {
		return nil, fmt.Errorf("%d: %w", bs, ErrBadBatchSize)
	}
	norm := e.SpatialNorm
	if norm == 0 {
		norm = 1
	}
	if norm != 1 {
		DebugLogOnce("Coordinates are divided by spatial_norm=%g before evaluation", norm)
	}
	mode := Mode{Grad: computeCurrent || e.Model.RequiresGrad()}
	n := len(g.Points)
	if bs > n {
		bs = imax(n, 1)
	}
	chunks := (n + bs - 1) / bs
	request := uuid.NewString()
	DebugLog("Evaluating %d points in %d chunks (batch=%d, grad=%v, request=%s)", n, chunks, bs, mode.Grad, request)

	b := make([]Vector3, 0, n)
	var j []Vector3
	var div []Real
	if computeCurrent {
		j = make([]Vector3, 0, n)
		div = make([]Real, 0, n)
	}
	coord := make([]Point3, 0, imin(bs, n))
	for k := 0; k < chunks; k++ {
		lo, hi := k*bs, imin((k+1)*bs, n)
		coord = coord[:0]
		for _, p := range g.Points[lo:hi] {
			coord = append(coord, Point3{p.X / norm, p.Y / norm, p.Z / norm})
		}

		e.Model.ZeroGrad()
		start := time.Now()
		out, err := e.Model.Forward(coord, mode)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", k+1, chunks, err)
		}
		if len(out.B) != len(coord) {
			return nil, fmt.Errorf("chunk %d/%d: %d outputs for %d points: %w", k+1, chunks, len(out.B), len(coord), ErrShapeMismatch)
		}
		b = append(b, out.B...)
		if computeCurrent {
			if len(out.Jac) != len(coord) {
				return nil, fmt.Errorf("chunk %d/%d: %w", k+1, chunks, ErrNoJacobian)
			}
			for _, jac := range out.Jac {
				j = append(j, curl(jac))
				div = append(div, divergence(jac))
			}
		}
		if Debug {
			logBatch(request, k, len(coord), mode.Grad, time.Since(start))
		}
		if Progress {
			Log.Infow("evaluating",
				"request", request,
				"chunk", fmt.Sprintf("%d/%d", k+1, chunks),
				"points", humanize.Comma(int64(hi))+"/"+humanize.Comma(int64(n)),
			)
		}
	}

	f := &Field{Shape: append([]int(nil), g.Shape...), B: b}
	for i := range f.B {
		f.B[i] = e.Scale.Field(f.B[i])
	}
	if computeCurrent {
		for i := range j {
			j[i] = e.Scale.Current(j[i])
			div[i] = e.Scale.Divergence(div[i])
		}
		f.J, f.Div = j, div
	}
	return f, nil
}
