// Package linop is an in-memory toolkit for matrix-free linear algebra —
// operators defined purely by their forward/adjoint action, iterative
// least-squares solving, and robust reweighting on top.
//
// 🚀 What is linop?
//
//	A pure-Go library that brings together:
//		• Operator contract: forward y = A·x and adjoint x = Aᵀ·y, no matrix ever materialized
//		• Composition algebra: scaling, sums, vertical stacking, diagonal weighting
//		• LSQR: Krylov-subspace least-squares solving with optional damping
//		• IRLS: iteratively reweighted least squares for L1-flavored robust estimation
//		• Callbacks: observe solver internals per iteration without touching solver code
//
// ✨ Why choose linop?
//
//   - Matrix-free – operators cost two closures, not O(n·m) memory
//   - Deterministic – explicit seeds everywhere, reproducible solves
//   - Composable – build big operators from small ones, adjoints stay consistent
//   - Extensible – register lifecycle hooks (OnStepEnd…) for custom instrumentation
//
// Everything is organized under four subpackages:
//
//	operator/ — the Operator interface, Dense, Regression, and combinators
//	lsqr/     — the LSQR iterative least-squares solver
//	irls/     — the IRLS robust reweighting loop
//	callback/ — lifecycle hooks and the ordered registry
//
// Quick sketch — robust line fitting:
//
//	A := operator.NewRegression(taxis)          // y_i = x0 + x1·t_i
//	res, _ := lsqr.LeastSquares(A, y)           // plain L2 fit
//	rob, _ := irls.Solve(A, y, &irlsOpts)       // outlier-resistant fit
//
// Dive into examples/ for a full robust-regression walkthrough.
//
//	go get github.com/katalvlaran/linop
package linop
