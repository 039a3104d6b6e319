package operator

import (
	"fmt"
)

// Regression is the two-column straight-line operator
//
//	y_i = x[0] + x[1]·t_i    for i = 0..m-1
//
// i.e. the matrix [1, t] with one row per sample of the t axis. It maps a
// coefficient pair (intercept, gradient) to predicted observations without
// ever storing the m×2 matrix.
type Regression struct {
	taxis []float64
}

// NewRegression builds a Regression operator over the sample axis taxis.
// taxis is copied; the caller's slice stays untouched.
//
// Errors:
//   - ErrBadDimension if taxis is empty.
func NewRegression(taxis []float64) (*Regression, error) {
	if len(taxis) == 0 {
		return nil, fmt.Errorf("NewRegression: empty t axis: %w", ErrBadDimension)
	}

	t := make([]float64, len(taxis))
	copy(t, taxis)

	return &Regression{taxis: t}, nil
}

// Rows returns the number of samples m.
func (r *Regression) Rows() int { return len(r.taxis) }

// Cols returns 2: intercept and gradient.
func (r *Regression) Cols() int { return 2 }

// Forward computes y_i = x[0] + x[1]·t_i.
func (r *Regression) Forward(x []float64) ([]float64, error) {
	if err := validateForward(r, x); err != nil {
		return nil, err
	}

	y := make([]float64, len(r.taxis))
	for i, t := range r.taxis {
		y[i] = x[0] + x[1]*t
	}

	return y, nil
}

// Adjoint computes [Σ y_i, Σ t_i·y_i].
func (r *Regression) Adjoint(y []float64) ([]float64, error) {
	if err := validateAdjoint(r, y); err != nil {
		return nil, err
	}

	x := make([]float64, 2)
	for i, t := range r.taxis {
		x[0] += y[i]
		x[1] += t * y[i]
	}

	return x, nil
}

// Apply evaluates the fitted line x on an arbitrary axis, typically to
// extrapolate beyond the samples the coefficients were estimated from.
//
// Errors:
//   - ErrDimensionMismatch if len(x) != 2.
func (r *Regression) Apply(taxis, x []float64) ([]float64, error) {
	if len(x) != r.Cols() {
		return nil, fmt.Errorf("Apply: got len %d, want %d: %w", len(x), r.Cols(), ErrDimensionMismatch)
	}

	y := make([]float64, len(taxis))
	for i, t := range taxis {
		y[i] = x[0] + x[1]*t
	}

	return y, nil
}
