package calculator

// Field is a row-major Nq×N complex array: one row per q value, one column
// per layer (or per interface).
type Field struct {
	Rows int
	Cols int
	Data []complex128
}

func newField(rows, cols int) *Field {
	return &Field{
		Rows: rows,
		Cols: cols,
		Data: make([]complex128, rows*cols),
	}
}

// At returns the element for q index i and column j.
func (f *Field) At(i, j int) complex128 {
	return f.Data[i*f.Cols+j]
}

// Row returns the i-th row. The slice aliases the field's storage.
func (f *Field) Row(i int) []complex128 {
	return f.Data[i*f.Cols : (i+1)*f.Cols]
}

// Mat2 is a 2×2 complex matrix indexed [row][column].
type Mat2 [2][2]complex128

// Mul returns a·b. The summation order is fixed so that repeated evaluations
// are bit-identical.
func (a Mat2) Mul(b Mat2) Mat2 {
	return Mat2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

// MatrixField holds one characteristic matrix per q per interface,
// row-major over (q, interface).
type MatrixField struct {
	Rows int
	Cols int
	Data []Mat2
}

func newMatrixField(rows, cols int) *MatrixField {
	return &MatrixField{
		Rows: rows,
		Cols: cols,
		Data: make([]Mat2, rows*cols),
	}
}

// At returns the matrix of interface n at q index i.
func (m *MatrixField) At(i, n int) Mat2 {
	return m.Data[i*m.Cols+n]
}

// Row returns the interface matrices of q index i in physical order.
func (m *MatrixField) Row(i int) []Mat2 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}
