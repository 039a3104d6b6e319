package operator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Weighted decorates an inner operator with a diagonal weight on the output
// side:
//
//	Forward(x) = w ∘ inner.Forward(x)   (elementwise)
//	Adjoint(y) = inner.Adjoint(w ∘ y)
//
// which is W·A with W = diag(w); (W·A)ᵀ = Aᵀ·W keeps adjoint consistency.
//
// The weight slice is copied at construction and never mutated afterwards:
// reweighting schemes (see package irls) build a fresh Weighted per round so
// that the previous round's weights stay immutable for callback inspection.
type Weighted struct {
	inner Operator
	w     []float64
}

// NewWeighted wraps a with the non-negative weight vector w, len(w) == a.Rows().
// w is copied; the caller's slice stays untouched.
//
// Errors:
//   - ErrNilOperator if a is nil.
//   - ErrDimensionMismatch if len(w) != a.Rows().
//   - ErrNegativeWeight if any w[i] < 0.
func NewWeighted(a Operator, w []float64) (*Weighted, error) {
	if a == nil {
		return nil, fmt.Errorf("NewWeighted: %w", ErrNilOperator)
	}
	if len(w) != a.Rows() {
		return nil, fmt.Errorf("NewWeighted: got %d weights, want %d: %w", len(w), a.Rows(), ErrDimensionMismatch)
	}
	for i, wi := range w {
		if wi < 0 {
			return nil, fmt.Errorf("NewWeighted: w[%d] = %g: %w", i, wi, ErrNegativeWeight)
		}
	}

	wc := make([]float64, len(w))
	copy(wc, w)

	return &Weighted{inner: a, w: wc}, nil
}

// Rows returns the output dimension m of the inner operator.
func (wo *Weighted) Rows() int { return wo.inner.Rows() }

// Cols returns the input dimension n of the inner operator.
func (wo *Weighted) Cols() int { return wo.inner.Cols() }

// Weights returns a copy of the weight vector.
func (wo *Weighted) Weights() []float64 {
	out := make([]float64, len(wo.w))
	copy(out, wo.w)

	return out
}

// Forward computes w ∘ (A·x).
func (wo *Weighted) Forward(x []float64) ([]float64, error) {
	y, err := wo.inner.Forward(x)
	if err != nil {
		return nil, err
	}
	floats.Mul(y, wo.w)

	return y, nil
}

// Adjoint computes Aᵀ·(w ∘ y).
func (wo *Weighted) Adjoint(y []float64) ([]float64, error) {
	if err := validateAdjoint(wo, y); err != nil {
		return nil, err
	}

	wy := make([]float64, len(y))
	copy(wy, y)
	floats.Mul(wy, wo.w)

	return wo.inner.Adjoint(wy)
}
