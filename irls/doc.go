// Package irls implements Iteratively Reweighted Least Squares: a robust
// estimation loop that approximates an L1-flavored regression by solving a
// sequence of diagonally weighted L2 problems.
//
// 🚀 Why IRLS?
//
//	Plain least squares is exquisitely sensitive to outliers — a single
//	corrupted observation drags the whole estimate. IRLS counters this by
//	down-weighting observations in proportion to their residual magnitude:
//	after each weighted solve, weights are recomputed as roughly 1/|rᵢ|, so
//	outliers contribute less and less each round, and the fixed point
//	approximates the L1 estimator argmin ‖A·x − y‖₁.
//
// ✨ State machine (one Solve call):
//
//	Init      — weights w ← all ones (length = operator rows)
//	Iterate   — per round k < NOuter:
//	              1. weighted solve  min ‖W^(1/2)(A·x − y)‖₂  via LSQR on
//	                 operator.Weighted(A, √w), damped by EpsI
//	              2. residual r = A·x_k − y
//	              3. emit OnStepEnd with x_k and the weights used in step 1
//	              4. recompute w from |r| (ThreshR selects the policy)
//	              5. stop when ‖x_k − x_{k−1}‖/‖x_k‖ < TolIRLS (k > 0)
//	Terminal  — StopConverged or StopExhausted, both soft outcomes.
//
// Edge cases:
//   - Round 0 has no previous solution: the convergence check is skipped
//     and callbacks observe the initial all-ones weight vector.
//   - Exactly-zero residual components are protected by the EpsR floor
//     (ThreshR=true) or ridge (ThreshR=false): weights stay finite by
//     construction, never an error.
//
// ⚙️ Usage:
//
//	opts := irls.DefaultOptions()
//	opts.NOuter = 20
//	opts.EpsR = 1e-2
//	opts.TolIRLS = 1e-2
//	res, err := irls.Solve(a, y, &opts)
//	fmt.Println(res.X, res.NOuter, res.Stop)
//
// Weights are replaced, never mutated in place, each round: the previous
// round's slice stays immutable for callback inspection, which also makes
// concurrent independent solves safe by construction.
package irls
