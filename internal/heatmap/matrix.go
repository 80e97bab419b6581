package heatmap

import "math"

// DenseMatrix is a row-major dense Matrix: rows are indicator indices,
// columns are sector indices. The zero value is an empty matrix whose every
// lookup is 0.
type DenseMatrix struct {
	rows, cols int
	data       [][]float64
}

// NewDenseMatrix wraps the given row-major table. Ragged rows are allowed;
// cells missing from a short row read as 0.
func NewDenseMatrix(data [][]float64) *DenseMatrix {
	cols := 0
	for _, row := range data {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return &DenseMatrix{rows: len(data), cols: cols, data: data}
}

// Rows returns the number of indicator rows.
func (m *DenseMatrix) Rows() int { return m.rows }

// Cols returns the number of sector columns.
func (m *DenseMatrix) Cols() int { return m.cols }

// Value returns the cell at (indicatorIndex, sectorIndex), or 0 when the
// coordinates fall outside the table or the stored value is not finite.
func (m *DenseMatrix) Value(indicatorIndex, sectorIndex int) float64 {
	if m == nil || indicatorIndex < 0 || indicatorIndex >= len(m.data) {
		return 0
	}
	row := m.data[indicatorIndex]
	if sectorIndex < 0 || sectorIndex >= len(row) {
		return 0
	}
	v := row[sectorIndex]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
