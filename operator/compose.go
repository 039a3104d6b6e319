package operator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// scaled wraps an inner operator and multiplies both directions by a real
// scalar c. The adjoint of c·A is c·Aᵀ, so consistency is preserved by
// construction.
type scaled struct {
	inner Operator
	c     float64
}

// Scale returns the operator c·A.
//
// Errors:
//   - ErrNilOperator if a is nil.
func Scale(a Operator, c float64) (Operator, error) {
	if a == nil {
		return nil, fmt.Errorf("Scale: %w", ErrNilOperator)
	}

	return &scaled{inner: a, c: c}, nil
}

func (s *scaled) Rows() int { return s.inner.Rows() }
func (s *scaled) Cols() int { return s.inner.Cols() }

func (s *scaled) Forward(x []float64) ([]float64, error) {
	y, err := s.inner.Forward(x)
	if err != nil {
		return nil, err
	}
	floats.Scale(s.c, y)

	return y, nil
}

func (s *scaled) Adjoint(y []float64) ([]float64, error) {
	x, err := s.inner.Adjoint(y)
	if err != nil {
		return nil, err
	}
	floats.Scale(s.c, x)

	return x, nil
}

// sum is the elementwise sum A + B of two same-shaped operators;
// (A+B)ᵀ = Aᵀ + Bᵀ keeps the invariant.
type sum struct {
	a, b Operator
}

// Add returns the operator A + B.
//
// Errors:
//   - ErrNilOperator if either operand is nil.
//   - ErrShapeMismatch unless both operands share Rows and Cols.
func Add(a, b Operator) (Operator, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Add: %w", ErrNilOperator)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return nil, fmt.Errorf("Add: %dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrShapeMismatch)
	}

	return &sum{a: a, b: b}, nil
}

func (s *sum) Rows() int { return s.a.Rows() }
func (s *sum) Cols() int { return s.a.Cols() }

func (s *sum) Forward(x []float64) ([]float64, error) {
	ya, err := s.a.Forward(x)
	if err != nil {
		return nil, err
	}
	yb, err := s.b.Forward(x)
	if err != nil {
		return nil, err
	}
	floats.Add(ya, yb)

	return ya, nil
}

func (s *sum) Adjoint(y []float64) ([]float64, error) {
	xa, err := s.a.Adjoint(y)
	if err != nil {
		return nil, err
	}
	xb, err := s.b.Adjoint(y)
	if err != nil {
		return nil, err
	}
	floats.Add(xa, xb)

	return xa, nil
}

// vstack stacks two operators with a common input dimension on top of each
// other: Forward concatenates the two outputs, Adjoint splits its input and
// sums the two partial adjoints. [A; B]ᵀ·[y₁; y₂] = Aᵀ·y₁ + Bᵀ·y₂.
type vstack struct {
	a, b Operator
}

// VStack returns the vertically stacked operator [A; B] of shape
// (A.Rows+B.Rows) × Cols.
//
// Errors:
//   - ErrNilOperator if either operand is nil.
//   - ErrShapeMismatch unless both operands share Cols.
func VStack(a, b Operator) (Operator, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("VStack: %w", ErrNilOperator)
	}
	if a.Cols() != b.Cols() {
		return nil, fmt.Errorf("VStack: %d vs %d columns: %w", a.Cols(), b.Cols(), ErrShapeMismatch)
	}

	return &vstack{a: a, b: b}, nil
}

func (v *vstack) Rows() int { return v.a.Rows() + v.b.Rows() }
func (v *vstack) Cols() int { return v.a.Cols() }

func (v *vstack) Forward(x []float64) ([]float64, error) {
	ya, err := v.a.Forward(x)
	if err != nil {
		return nil, err
	}
	yb, err := v.b.Forward(x)
	if err != nil {
		return nil, err
	}

	y := make([]float64, 0, len(ya)+len(yb))
	y = append(y, ya...)
	y = append(y, yb...)

	return y, nil
}

func (v *vstack) Adjoint(y []float64) ([]float64, error) {
	if err := validateAdjoint(v, y); err != nil {
		return nil, err
	}

	xa, err := v.a.Adjoint(y[:v.a.Rows()])
	if err != nil {
		return nil, err
	}
	xb, err := v.b.Adjoint(y[v.a.Rows():])
	if err != nil {
		return nil, err
	}
	floats.Add(xa, xb)

	return xa, nil
}
