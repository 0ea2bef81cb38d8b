package calculator

// Phases returns φ[:, n] = i·k[:, n]·d[n] for every layer below the
// superphase. Column 0 stays zero whatever d[0] holds.
//
// The substrate column is filled too but never reaches a matrix: the builder
// only reads the phases of layers that sit above an interface.
func Phases(k *Field, d []float64) *Field {
	phi := newField(k.Rows, k.Cols)
	for i := 0; i < k.Rows; i++ {
		kr, pr := k.Row(i), phi.Row(i)
		for n := 1; n < len(pr); n++ {
			pr[n] = 1i * kr[n] * complex(d[n], 0)
		}
	}
	return phi
}
