package calculator

import "math/cmplx"

// CharacteristicMatrices builds the Abelès matrix of every interface.
//
// Interface n takes the phase of the layer directly above it, so the top
// interface (n = 0) always sees zero phase. With φ = φ[q, n] and r = r[q, n]:
//
//	| exp(φ)     r·exp(φ) |
//	| r·exp(−φ)  exp(−φ)  |
func CharacteristicMatrices(r, phi *Field) *MatrixField {
	m := newMatrixField(r.Rows, r.Cols)
	for i := 0; i < r.Rows; i++ {
		rr, pr, mr := r.Row(i), phi.Row(i), m.Row(i)
		for n, rn := range rr {
			up := cmplx.Exp(pr[n])
			down := cmplx.Exp(-pr[n])
			mr[n] = Mat2{
				{up, rn * up},
				{rn * down, down},
			}
		}
	}
	return m
}
