// Package lsqr option/result types, stop reasons, and sentinel errors.
package lsqr

import (
	"errors"

	"github.com/katalvlaran/linop/callback"
)

// Sentinel errors returned by Solve before any iteration runs.
var (
	// ErrNilOperator indicates that a nil operator was passed to Solve.
	ErrNilOperator = errors.New("lsqr: operator is nil")

	// ErrEmptyRHS indicates an empty right-hand-side vector.
	ErrEmptyRHS = errors.New("lsqr: right-hand side is empty")

	// ErrNegativeDamp indicates Options.Damp < 0.
	ErrNegativeDamp = errors.New("lsqr: Damp must be non-negative")

	// ErrBadTolerance indicates a negative Atol or Btol.
	ErrBadTolerance = errors.New("lsqr: tolerances must be non-negative")

	// ErrBadConLim indicates Options.ConLim < 0.
	ErrBadConLim = errors.New("lsqr: ConLim must be non-negative")

	// ErrBadMaxIter indicates Options.MaxIter < 0.
	ErrBadMaxIter = errors.New("lsqr: MaxIter must be non-negative")
)

// Default tolerances, matching the classical LSQR reference settings.
const (
	// DefaultAtol is the default tolerance on the normal-equation residual.
	DefaultAtol = 1e-8

	// DefaultBtol is the default tolerance on the residual.
	DefaultBtol = 1e-8

	// DefaultConLim is the default condition-number limit.
	DefaultConLim = 1e8
)

// StopReason tells why Solve stopped iterating. Expected termination is a
// status value, never an error: hitting MaxIter is an ordinary outcome the
// caller decides how to treat.
type StopReason int

const (
	// StopExactSolution — the initial guess already solves the system
	// (zero residual or zero normal-equation residual before iterating).
	StopExactSolution StopReason = iota

	// StopResidualTol — the residual ‖A·x−y‖ met the Atol/Btol criterion.
	StopResidualTol

	// StopNormalEqTol — the normal-equation residual ‖Aᵀ·r‖ met Atol.
	StopNormalEqTol

	// StopConditionLimit — the condition-number estimate exceeded ConLim.
	StopConditionLimit

	// StopMaxIterations — the iteration budget ran out before any
	// tolerance was met; Result.X holds the best iterate (soft outcome).
	StopMaxIterations

	// StopNumericalBreakdown — NaN or Inf appeared in the recurrence
	// scalars; Result.X holds the last finite iterate.
	StopNumericalBreakdown
)

// String renders the stop reason for logs and test output.
func (s StopReason) String() string {
	switch s {
	case StopExactSolution:
		return "ExactSolution"
	case StopResidualTol:
		return "ConvergedResidual"
	case StopNormalEqTol:
		return "ConvergedNormalEquation"
	case StopConditionLimit:
		return "ConditionNumberLimit"
	case StopMaxIterations:
		return "MaxIterationsReached"
	case StopNumericalBreakdown:
		return "NumericalBreakdown"
	default:
		return "Unknown"
	}
}

// Converged reports whether the reason is one of the tolerance-met outcomes
// (exact solution, residual, or normal-equation convergence).
func (s StopReason) Converged() bool {
	return s == StopExactSolution || s == StopResidualTol || s == StopNormalEqTol
}

// Options configures a Solve call.
//
// Damp    – damping factor λ ≥ 0: minimizes ‖A·x−y‖² + λ²‖x‖².
// Atol    – relative tolerance on the operator side (normal equations).
// Btol    – relative tolerance on the data side (residual).
// ConLim  – stop when the estimated cond(A) exceeds this limit; 0 disables.
// MaxIter – iteration budget; 0 means 2·Cols (Krylov methods rarely need
//
//	more than the dimension, the extra factor absorbs rounding).
//
// X0        – optional initial guess of length Cols; nil means zero start.
// Callbacks – optional registry receiving StepBegin/StepEnd each iteration
//
//	and Converged on tolerance-met termination; nil is valid.
type Options struct {
	Damp      float64
	Atol      float64
	Btol      float64
	ConLim    float64
	MaxIter   int
	X0        []float64
	Callbacks *callback.Registry
}

// DefaultOptions returns the canonical LSQR configuration: no damping,
// Atol = Btol = 1e-8, ConLim = 1e8, MaxIter = 2·Cols, zero start.
func DefaultOptions() Options {
	return Options{
		Atol:   DefaultAtol,
		Btol:   DefaultBtol,
		ConLim: DefaultConLim,
	}
}

// Result is the structured outcome of a Solve call: the estimate plus
// enough diagnostics for the caller to judge it.
type Result struct {
	// X is the solution estimate of length Cols.
	X []float64

	// Iters is the number of bidiagonalization iterations performed.
	Iters int

	// Stop tells why the solver stopped.
	Stop StopReason

	// ResidualNorm is ‖A·x−y‖₂ of the returned estimate (damping
	// excluded).
	ResidualNorm float64

	// NormalEqNorm is ‖Aᵀ·r‖₂, the normal-equation residual of the
	// returned estimate (damped residual when Damp > 0).
	NormalEqNorm float64

	// CondA is the running estimate of cond(A).
	CondA float64
}
