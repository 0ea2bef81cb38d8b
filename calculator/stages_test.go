package calculator

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWavevectors(t *testing.T) {
	beta := []complex128{0, 2.871e-6, complex(1e-6, 1e-8)}
	k := Wavevectors([]float64{0.02, 0.005}, beta)
	require.Equal(t, 2, k.Rows)
	require.Equal(t, 3, k.Cols)

	// superphase carries the reference wavevector
	assert.Equal(t, complex(0.01, 0), k.At(0, 0))
	assert.Equal(t, complex(0.0025, 0), k.At(1, 0))

	// propagating above the edge
	assert.Greater(t, real(k.At(0, 1)), 0.0)
	assert.Equal(t, 0.0, imag(k.At(0, 1)))

	// evanescent below it: purely imaginary, positive branch
	assert.Equal(t, 0.0, real(k.At(1, 1)))
	assert.Greater(t, imag(k.At(1, 1)), 0.0)
	want := math.Sqrt(4*math.Pi*2.871e-6 - 0.0025*0.0025)
	assert.InDelta(t, want, imag(k.At(1, 1)), 1e-15)

	// absorption: principal root of a radicand with negative imaginary part
	assert.Less(t, imag(k.At(0, 2)), 0.0)
}

func TestWavevectors_SuperphaseOffset(t *testing.T) {
	// only the contrast to the superphase matters
	a := Wavevectors([]float64{0.03}, []complex128{0, 2e-6})
	b := Wavevectors([]float64{0.03}, []complex128{1e-6, 3e-6})
	assert.InDelta(t, real(a.At(0, 1)), real(b.At(0, 1)), 1e-15)
}

func TestPrincipalSqrt_SignedZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	assert.Equal(t, complex(0, 2), principalSqrt(complex(-4, negZero)))
	assert.Equal(t, complex(0, 2), principalSqrt(complex(-4, 0)))
	assert.Equal(t, complex(3, 0), principalSqrt(complex(9, negZero)))
}

func TestFresnelCoefficients(t *testing.T) {
	k := &Field{Rows: 1, Cols: 3, Data: []complex128{2, 1, 1i}}
	r := FresnelCoefficients(k)
	require.Equal(t, 1, r.Rows)
	require.Equal(t, 2, r.Cols)
	assert.Equal(t, complex(1.0/3, 0), r.At(0, 0))
	assert.Equal(t, (1-1i)/(1+1i), r.At(0, 1))
}

func TestPhases(t *testing.T) {
	k := &Field{Rows: 1, Cols: 3, Data: []complex128{0.1, 0.05, 0.02i}}
	phi := Phases(k, []float64{1000, 200, 7})
	assert.Equal(t, complex128(0), phi.At(0, 0))
	assert.Equal(t, complex(0, 10), phi.At(0, 1))
	assert.InDelta(t, -0.14, real(phi.At(0, 2)), 1e-15)
}

func TestCharacteristicMatrices_TopInterfaceHasNoPhase(t *testing.T) {
	r := &Field{Rows: 1, Cols: 2, Data: []complex128{0.25, -0.5}}
	phi := &Field{Rows: 1, Cols: 3, Data: []complex128{0, 0.3i, 99i}}
	m := CharacteristicMatrices(r, phi)
	require.Equal(t, 2, m.Cols)

	assert.Equal(t, Mat2{{1, 0.25}, {0.25, 1}}, m.At(0, 0))

	up, down := cmplx.Exp(0.3i), cmplx.Exp(-0.3i)
	assert.Equal(t, Mat2{{up, -0.5 * up}, {-0.5 * down, down}}, m.At(0, 1))
}

func TestCompose_TwoLayersIsPassThrough(t *testing.T) {
	sole := Mat2{{1, 0.3}, {0.3, 1}}
	m := &MatrixField{Rows: 1, Cols: 1, Data: []Mat2{sole}}
	assert.Equal(t, []Mat2{sole}, Compose(m))
}

func TestCompose_LeftToRight(t *testing.T) {
	a := Mat2{{1, 2}, {3, 4}}
	b := Mat2{{0, 1i}, {1, 0}}
	c := Mat2{{2, 0}, {1, 1}}
	m := &MatrixField{Rows: 2, Cols: 3, Data: []Mat2{a, b, c, c, b, a}}

	got := Compose(m)
	require.Len(t, got, 2)
	assert.Equal(t, a.Mul(b).Mul(c), got[0])
	assert.Equal(t, c.Mul(b).Mul(a), got[1])
	assert.NotEqual(t, got[0], got[1])
}

func TestMat2_Mul(t *testing.T) {
	a := Mat2{{1, 2}, {3, 4}}
	b := Mat2{{5, 6}, {7, 8}}
	assert.Equal(t, Mat2{{19, 22}, {43, 50}}, a.Mul(b))
}

func TestExtract(t *testing.T) {
	b := []Mat2{
		{{1, 0.3}, {0.3, 1}},
		{{2, 0}, {1i, 1}},
		{{0, 0}, {1, 1}},
	}
	r := Extract(b)
	assert.InDelta(t, 0.09, r[0], 1e-15)
	assert.Equal(t, 0.25, r[1])
	assert.True(t, math.IsInf(r[2], 1) || math.IsNaN(r[2]))
}
