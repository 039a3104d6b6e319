// Package operator core types: the Operator contract, sentinel errors, and
// the shared dimension validators every implementation routes through.
package operator

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by operator constructors and applications.
var (
	// ErrNilOperator indicates that a nil Operator was passed to a
	// constructor or combinator.
	ErrNilOperator = errors.New("operator: operator is nil")

	// ErrBadDimension indicates a non-positive row or column count.
	ErrBadDimension = errors.New("operator: dimensions must be positive")

	// ErrDimensionMismatch indicates that a vector's length does not match
	// the operator dimension it is applied against.
	ErrDimensionMismatch = errors.New("operator: vector length does not match operator dimension")

	// ErrShapeMismatch indicates that two operators combined by Add or
	// VStack have incompatible shapes.
	ErrShapeMismatch = errors.New("operator: operand shapes are incompatible")

	// ErrNegativeWeight indicates a negative entry in a weight vector
	// passed to NewWeighted.
	ErrNegativeWeight = errors.New("operator: weight vector must be non-negative")
)

// Operator is the matrix-free linear map contract.
//
// An Operator represents A: Rⁿ → Rᵐ where n = Cols() and m = Rows().
// Implementations must be stateless across calls: Forward and Adjoint are
// pure functions of their input, and the adjoint-consistency invariant
// ⟨A·x, y⟩ == ⟨x, Aᵀ·y⟩ must hold for all valid x, y within floating-point
// tolerance (see DotTest).
type Operator interface {
	// Rows returns the output dimension m of Forward.
	Rows() int

	// Cols returns the input dimension n of Forward.
	Cols() int

	// Forward computes y = A·x. It returns ErrDimensionMismatch when
	// len(x) != Cols(). The returned slice is freshly allocated.
	Forward(x []float64) ([]float64, error)

	// Adjoint computes x = Aᵀ·y. It returns ErrDimensionMismatch when
	// len(y) != Rows(). The returned slice is freshly allocated.
	Adjoint(y []float64) ([]float64, error)
}

// validateForward checks the input length for a Forward application.
func validateForward(a Operator, x []float64) error {
	if len(x) != a.Cols() {
		return fmt.Errorf("forward: got len %d, want %d: %w", len(x), a.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// validateAdjoint checks the input length for an Adjoint application.
func validateAdjoint(a Operator, y []float64) error {
	if len(y) != a.Rows() {
		return fmt.Errorf("adjoint: got len %d, want %d: %w", len(y), a.Rows(), ErrDimensionMismatch)
	}

	return nil
}
