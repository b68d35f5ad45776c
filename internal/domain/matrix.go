package domain

import (
	"fmt"
	"math"
)

// Square matrix of non-negative distances in meters, indexed in the order of
// the coordinate list it was computed for.
type DistanceMatrix [][]float64

func (m DistanceMatrix) Size() int { return len(m) }

// Validate checks that the matrix is n x n with finite, non-negative entries.
func (m DistanceMatrix) Validate(n int) error {
	if len(m) != n {
		return fmt.Errorf("distance matrix: got %d rows, want %d", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("distance matrix: row %d has %d columns, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("distance matrix: invalid entry [%d][%d]=%v", i, j, v)
			}
		}
	}
	return nil
}

// NewDistanceMatrix allocates an n x n zero matrix.
func NewDistanceMatrix(n int) DistanceMatrix {
	m := make(DistanceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
