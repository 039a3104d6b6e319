package operator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Dense is an Operator backed by an explicit m×n matrix in flat row-major
// storage. It is the reference implementation of the contract: small enough
// to reason about, exact enough to test the matrix-free machinery against.
//
// Forward costs O(m·n) time; Adjoint costs O(m·n) time; storage is O(m·n).
type Dense struct {
	rows, cols int
	data       []float64 // row-major, len == rows*cols
}

// NewDense builds a Dense operator from flat row-major data.
// data is copied; the caller's slice stays untouched.
//
// Errors:
//   - ErrBadDimension if rows or cols is not positive.
//   - ErrDimensionMismatch if len(data) != rows*cols.
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense: %dx%d: %w", rows, cols, ErrBadDimension)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDense: got %d elements, want %d: %w", len(data), rows*cols, ErrDimensionMismatch)
	}

	d := &Dense{rows: rows, cols: cols, data: make([]float64, len(data))}
	copy(d.data, data)

	return d, nil
}

// Rows returns the output dimension m.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the input dimension n.
func (d *Dense) Cols() int { return d.cols }

// Forward computes y = A·x, one dot product per row.
func (d *Dense) Forward(x []float64) ([]float64, error) {
	if err := validateForward(d, x); err != nil {
		return nil, err
	}

	y := make([]float64, d.rows)
	for i := 0; i < d.rows; i++ {
		y[i] = floats.Dot(d.data[i*d.cols:(i+1)*d.cols], x)
	}

	return y, nil
}

// Adjoint computes x = Aᵀ·y by accumulating y_i times row i.
func (d *Dense) Adjoint(y []float64) ([]float64, error) {
	if err := validateAdjoint(d, y); err != nil {
		return nil, err
	}

	x := make([]float64, d.cols)
	for i := 0; i < d.rows; i++ {
		floats.AddScaled(x, y[i], d.data[i*d.cols:(i+1)*d.cols])
	}

	return x, nil
}
