// Package lsqr implements the LSQR algorithm of Paige & Saunders: an
// iterative Krylov-subspace solver for least-squares problems that touches
// the system matrix only through matrix-free Forward/Adjoint applications.
//
// 🚀 What does it solve?
//
//	Given an operator A: Rⁿ → Rᵐ and observations y ∈ Rᵐ, LSQR approximates
//
//	  x* = argmin ‖A·x − y‖₂                      (Damp == 0)
//	  x* = argmin ‖A·x − y‖₂² + Damp²·‖x‖₂²      (Damp > 0, ridge-damped)
//
//	by building a Golub–Kahan bidiagonalization of A one Forward and one
//	Adjoint call per iteration, so no matrix element is ever read.
//
// ✨ Key features:
//   - works with any operator.Operator; A is never materialized
//   - optional damping for ill-conditioned systems
//   - separate residual (Atol/Btol) and condition-number (ConLim) stopping
//     criteria, each reported through a distinct StopReason
//   - exhausting MaxIter is a soft outcome: the best iterate is returned
//     with StopMaxIterations, never an error
//   - NaN/Inf in the scalar recurrences is detected and surfaced as
//     StopNumericalBreakdown instead of silently returning garbage
//   - optional per-iteration callbacks (see package callback)
//
// ⚙️ Usage:
//
//	opts := lsqr.DefaultOptions()
//	opts.Damp = 1e-4
//	res, err := lsqr.Solve(a, y, &opts)
//	if err != nil {
//	  // dimension mismatch or aborted by a callback
//	}
//	fmt.Println(res.X, res.Iters, res.Stop)
//
// Performance:
//
//   - Time:   O(Iters × cost(Forward + Adjoint)) plus O(Iters·n) vector work
//   - Memory: O(n + m) — four work vectors regardless of iteration count
//
// Single-threaded and synchronous: Solve runs to completion on the calling
// goroutine; concurrent solves are safe as long as each uses its own
// operator inputs (operators themselves are stateless).
package lsqr
