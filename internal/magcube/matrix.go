package magcube

// 3×3 matrix (row-major)
type Mat3 struct {
	M [3][3]Real
}

func I3() Mat3 {
	return Mat3{M: [3][3]Real{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Trace is the sum of the diagonal; for a field Jacobian it is the divergence.
func (A Mat3) Trace() Real { return A.M[0][0] + A.M[1][1] + A.M[2][2] }
