package tfidf

// Matrix holds one document vector per row, in corpus order.
type Matrix struct {
	rows []Vector
}

// FitMatrix transforms every text with m. Row i corresponds to texts[i].
func FitMatrix(m *Model, texts []string) Matrix {
	rows := make([]Vector, len(texts))
	for i, t := range texts {
		rows[i] = m.Transform(t)
	}
	return Matrix{rows: rows}
}

// NewMatrix wraps precomputed rows.
func NewMatrix(rows []Vector) Matrix {
	return Matrix{rows: rows}
}

// Rows returns the row count.
func (x Matrix) Rows() int { return len(x.rows) }

// Row returns row i.
func (x Matrix) Row(i int) Vector { return x.rows[i] }
