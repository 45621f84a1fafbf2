package similarity

import "github.com/spigell/resume-scorer/internal/embedding"

// Matrix holds cosine similarities with one row per source vector and one column
// per target vector.
type Matrix [][]float64

// NewMatrix computes pairwise cosine similarities. Either side being empty yields
// a 1x1 zero matrix.
func NewMatrix(source, target [][]float32) Matrix {
	if len(source) == 0 || len(target) == 0 {
		return Matrix{{0}}
	}

	m := make(Matrix, len(source))
	for i, a := range source {
		row := make([]float64, len(target))
		for j, b := range target {
			row[j] = embedding.Cosine(a, b)
		}
		m[i] = row
	}
	return m
}

// BestMatch returns the column with the strictly greatest positive similarity in
// row i, scanning left to right so ties go to the first column. It returns -1 and 0
// when no column scores above zero.
func (m Matrix) BestMatch(i int) (int, float64) {
	best, col := 0.0, -1
	if i < 0 || i >= len(m) {
		return col, best
	}

	for j, v := range m[i] {
		if v > best {
			best, col = v, j
		}
	}
	return col, best
}
