package calculator

import (
	"math"
	"math/cmplx"
)

// Kinematic returns the Born-approximation reflectivity of the same slab
// model:
//
//	R(q) = 16π²/q⁴ · |Σ Δβ_i exp(i·q·z_i)|²
//
// where Δβ_i = β_{i+1} − β_i and z_i is the depth of interface i below the
// top one. It agrees with Reflectivity once k0² ≫ 4π·max|β_n − β_0| and is
// meant as a cross-check at large q. q = 0 gives +Inf (NaN for a stack with
// no contrast).
func Kinematic(q []float64, beta []complex128, d []float64) ([]float64, error) {
	if err := validate(beta, d); err != nil {
		return nil, err
	}

	interfaces := len(beta) - 1
	z := make([]float64, interfaces)
	for i := 1; i < interfaces; i++ {
		z[i] = z[i-1] + d[i]
	}
	delta := make([]complex128, interfaces)
	for i := range delta {
		delta[i] = beta[i+1] - beta[i]
	}

	out := make([]float64, len(q))
	for j, qj := range q {
		var s complex128
		for i, db := range delta {
			s += db * cmplx.Exp(complex(0, qj*z[i]))
		}
		q2 := qj * qj
		out[j] = 16 * math.Pi * math.Pi / (q2 * q2) * real(s*cmplx.Conj(s))
	}
	return out, nil
}
