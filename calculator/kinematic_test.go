package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxRelDeviation compares the exact and Born curves over [lo, hi].
func maxRelDeviation(t *testing.T, lo, hi float64, beta []complex128, d []float64) float64 {
	t.Helper()
	q := linspace(lo, hi, 400)
	exact, err := Reflectivity(q, beta, d)
	require.NoError(t, err)
	born, err := Kinematic(q, beta, d)
	require.NoError(t, err)

	worst := 0.0
	for i := range q {
		worst = math.Max(worst, math.Abs(exact[i]/born[i]-1))
	}
	return worst
}

func TestKinematic_LargeQLimit(t *testing.T) {
	low := maxRelDeviation(t, 0.30, 0.35, filmBeta, filmD)
	high := maxRelDeviation(t, 0.90, 0.95, filmBeta, filmD)
	assert.Less(t, high, low)
	assert.Less(t, high, 0.05)
}

func TestKinematic_SingleInterface(t *testing.T) {
	beta := []complex128{0, 2.07e-6}
	d := []float64{0, 0}
	dev := maxRelDeviation(t, 0.5, 1.0, beta, d)
	assert.Less(t, dev, 1e-3)
}

func TestKinematic_ZeroQ(t *testing.T) {
	r, err := Kinematic([]float64{0}, filmBeta, filmD)
	require.NoError(t, err)
	assert.True(t, math.IsInf(r[0], 1))
}

func TestKinematic_ShapeMismatch(t *testing.T) {
	_, err := Kinematic([]float64{0.1}, filmBeta, filmD[:2])
	require.ErrorIs(t, err, ErrShapeMismatch)
}
