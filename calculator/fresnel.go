package calculator

// FresnelCoefficients returns the reflection coefficient of every interface:
// r[:, n] = (k[:, n] − k[:, n+1]) / (k[:, n] + k[:, n+1]).
//
// Adjacent layers must not carry exactly opposite wavevectors at any q. When
// they do the division yields NaN/Inf for that q only and is not trapped.
func FresnelCoefficients(k *Field) *Field {
	r := newField(k.Rows, k.Cols-1)
	for i := 0; i < k.Rows; i++ {
		kr, rr := k.Row(i), r.Row(i)
		for n := range rr {
			rr[n] = (kr[n] - kr[n+1]) / (kr[n] + kr[n+1])
		}
	}
	return r
}
