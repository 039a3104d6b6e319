// Package operator defines the matrix-free linear operator contract and a
// small composition algebra on top of it.
//
// 🚀 What is a matrix-free operator?
//
//	A linear map A: Rⁿ → Rᵐ exposed only through its action:
//	  • Forward(x) computes y = A·x
//	  • Adjoint(y) computes x = Aᵀ·y
//	No matrix element is ever read or stored, which is what makes large or
//	transform-defined operators (basis changes, convolutions, stacked
//	physics) affordable: the cost of an operator is the cost of applying it.
//
// ✨ Key pieces:
//   - Operator — the four-method contract (Rows, Cols, Forward, Adjoint)
//   - Dense — flat row-major reference implementation, handy for tests
//   - Regression — the [1, t] two-column operator for straight-line fitting
//   - Scale / Add / VStack — combinators that preserve adjoint consistency
//   - Weighted — diagonal reweighting decorator used by the IRLS loop
//   - DotTest — randomized verifier of the adjoint-consistency invariant
//
// Invariant:
//
//	For every operator in this package and every x ∈ Rⁿ, y ∈ Rᵐ:
//	  ⟨A·x, y⟩ == ⟨x, Aᵀ·y⟩   (within floating-point tolerance)
//	Combinators preserve the invariant of their operands; DotTest checks it
//	with seeded random probes.
//
// ⚙️ Usage:
//
//	A := operator.NewRegression([]float64{0, 1, 2, 3})
//	y, err := A.Forward([]float64{1, 2}) // y_i = 1 + 2·t_i
//
// All constructors validate dimensions fail-fast and return sentinel errors
// (ErrBadDimension, ErrDimensionMismatch, ...) before any numerical work.
//
// Operators are stateless across calls: Forward and Adjoint are pure
// functions of their input, safe to invoke repeatedly and in any order.
package operator
