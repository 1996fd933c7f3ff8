package magcube

// Jacobian convention: J.M[k][j] = ∂B_k/∂x_j.

// curl returns ∇×B from the field Jacobian at one point: (∇×B)_i = ε_ijk ∂B_k/∂x_j.
func curl(jac Mat3) Vector3 {
	return Vector3{
		jac.M[2][1] - jac.M[1][2],
		jac.M[0][2] - jac.M[2][0],
		jac.M[1][0] - jac.M[0][1],
	}
}

// divergence returns ∇·B from the field Jacobian at one point.
func divergence(jac Mat3) Real { return jac.Trace() }

// centralJacobian differentiates eval by central differences with step h.
// All 6·len(pts) shifted points go to eval in a single call, ordered
// point-major: +x, -x, +y, -y, +z, -z.
func centralJacobian(pts []Point3, h Real, eval func([]Point3) ([]Vector3, error)) ([]Mat3, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	shifts := [3]Vector3{{X: h}, {Y: h}, {Z: h}}
	probe := make([]Point3, 0, 6*len(pts))
	for _, p := range pts {
		for j := 0; j < 3; j++ {
			probe = append(probe, p.Add(shifts[j]), p.Add(shifts[j].Mul(-1)))
		}
	}
	vals, err := eval(probe)
	if err != nil {
		return nil, err
	}
	if len(vals) != len(probe) {
		return nil, ErrShapeMismatch
	}
	jacs := make([]Mat3, len(pts))
	inv := 1 / (2 * h)
	for i := range pts {
		base := i * 6
		for j := 0; j < 3; j++ {
			d := vals[base+2*j].Sub(vals[base+2*j+1]).Mul(inv)
			jacs[i].M[0][j] = d.X
			jacs[i].M[1][j] = d.Y
			jacs[i].M[2][j] = d.Z
		}
	}
	return jacs, nil
}
