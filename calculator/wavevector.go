package calculator

import (
	"math"
	"math/cmplx"
)

const fourPi = complex(4*math.Pi, 0)

// Wavevectors resolves the normal wavevector of every layer at every q.
//
// k0 = q/2 is the vacuum reference; layer n gets sqrt(k0² − 4π(β_n − β_0)).
// Below the critical edge of a layer the radicand is negative and k is
// imaginary; that is evanescent decay, not an error.
func Wavevectors(q []float64, beta []complex128) *Field {
	k := newField(len(q), len(beta))
	for i, qi := range q {
		k0 := complex(qi/2, 0)
		row := k.Row(i)
		for n, b := range beta {
			row[n] = principalSqrt(k0*k0 - fourPi*(b-beta[0]))
		}
	}
	return k
}

// principalSqrt is cmplx.Sqrt with a signed-zero imaginary part folded to +0,
// so a real negative radicand always resolves to +i·sqrt(|x|).
func principalSqrt(x complex128) complex128 {
	if imag(x) == 0 {
		x = complex(real(x), 0)
	}
	return cmplx.Sqrt(x)
}
