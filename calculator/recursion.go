package calculator

// Compose folds the interface matrices of every q left to right:
// B = M[0]·M[1]·…·M[N−2]. Each q is independent; the layer axis is strictly
// sequential. A two-layer stack performs no multiplication at all.
func Compose(m *MatrixField) []Mat2 {
	b := make([]Mat2, m.Rows)
	for i := range b {
		row := m.Row(i)
		acc := row[0]
		for _, next := range row[1:] {
			acc = acc.Mul(next)
		}
		b[i] = acc
	}
	return b
}
