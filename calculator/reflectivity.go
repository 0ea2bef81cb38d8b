package calculator

import "math/cmplx"

// Extract converts each resultant matrix into R = |r|² with
// r = B[1][0] / B[0][0].
//
// B[0][0] is non-zero for any physical stack with a real superphase; a zero
// propagates as NaN/Inf into that q's entry.
func Extract(b []Mat2) []float64 {
	out := make([]float64, len(b))
	for i, m := range b {
		r := m[1][0] / m[0][0]
		out[i] = real(r * cmplx.Conj(r))
	}
	return out
}

// Reflectivity computes R(q) for the slab model described by beta and d.
//
// beta[0] is the superphase, beta[N−1] the substrate; d[0] and d[N−1] are
// ignored. The result has one entry per q. Shapes are checked before any
// work; numerically degenerate q values yield non-finite entries without
// affecting their neighbours.
func Reflectivity(q []float64, beta []complex128, d []float64) ([]float64, error) {
	if err := validate(beta, d); err != nil {
		return nil, err
	}
	out := make([]float64, len(q))
	evaluate(q, beta, d, out)
	return out, nil
}

// evaluate runs the six stages on q and writes R into out. Inputs must
// already be validated and len(out) == len(q).
func evaluate(q []float64, beta []complex128, d []float64, out []float64) {
	k := Wavevectors(q, beta)
	r := FresnelCoefficients(k)
	phi := Phases(k, d)
	m := CharacteristicMatrices(r, phi)
	copy(out, Extract(Compose(m)))
}
