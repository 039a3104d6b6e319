// Package irls option/result types, stop reasons, and sentinel errors.
package irls

import (
	"errors"

	"github.com/katalvlaran/linop/callback"
	"github.com/katalvlaran/linop/lsqr"
)

// Sentinel errors returned by Solve before any round runs.
var (
	// ErrNilOperator indicates that a nil operator was passed to Solve.
	ErrNilOperator = errors.New("irls: operator is nil")

	// ErrEmptyRHS indicates an empty right-hand-side vector.
	ErrEmptyRHS = errors.New("irls: right-hand side is empty")

	// ErrBadNOuter indicates Options.NOuter < 0.
	ErrBadNOuter = errors.New("irls: NOuter must be non-negative")

	// ErrBadEpsR indicates Options.EpsR <= 0; a positive floor is what
	// keeps weight computation free of division blow-up.
	ErrBadEpsR = errors.New("irls: EpsR must be positive")

	// ErrBadEpsI indicates Options.EpsI < 0.
	ErrBadEpsI = errors.New("irls: EpsI must be non-negative")

	// ErrBadTolIRLS indicates Options.TolIRLS < 0.
	ErrBadTolIRLS = errors.New("irls: TolIRLS must be non-negative")
)

// Defaults applied by DefaultOptions and by Solve for zero-valued fields.
const (
	// DefaultNOuter is the default number of outer reweighting rounds.
	DefaultNOuter = 10

	// DefaultEpsR is the default residual floor/ridge in the weight
	// update.
	DefaultEpsR = 1e-10

	// DefaultTolIRLS is the default relative-change tolerance between
	// consecutive outer solutions.
	DefaultTolIRLS = 1e-10
)

// StopReason tells how the outer loop terminated. Both outcomes are soft:
// exhausting NOuter returns the best estimate, never an error.
type StopReason int

const (
	// StopConverged — the relative change between consecutive solutions
	// fell below TolIRLS.
	StopConverged StopReason = iota

	// StopExhausted — NOuter rounds ran without meeting TolIRLS.
	StopExhausted
)

// String renders the stop reason for logs and test output.
func (s StopReason) String() string {
	switch s {
	case StopConverged:
		return "Converged"
	case StopExhausted:
		return "RoundsExhausted"
	default:
		return "Unknown"
	}
}

// Options configures a Solve call.
//
// NOuter  – outer reweighting rounds; 0 means DefaultNOuter.
// ThreshR – weight policy selector:
//
//	true  → wᵢ = 1/max(|rᵢ|, EpsR)  (hard floor: residuals below EpsR
//	        share the constant weight 1/EpsR)
//	false → wᵢ = 1/(|rᵢ| + EpsR)    (smooth ridge)
//
// EpsR    – residual floor/ridge, must be positive; 0 means DefaultEpsR.
// EpsI    – ridge damping of each inner weighted solve (LSQR Damp).
// TolIRLS – relative-change tolerance between consecutive solutions;
//
//	0 means DefaultTolIRLS.
//
// ReturnHistory – record per-round solution and weight history in Result.
// Callbacks     – optional registry receiving StepBegin/StepEnd per round
//
//	and Converged on TolIRLS termination; nil is valid.
//
// Inner – optional settings for the inner LSQR solves (tolerances,
//
//	iteration budget). Damp is overridden by EpsI; X0 is seeded with
//	the previous round's solution to warm-start each solve.
type Options struct {
	NOuter        int
	ThreshR       bool
	EpsR          float64
	EpsI          float64
	TolIRLS       float64
	ReturnHistory bool
	Callbacks     *callback.Registry
	Inner         *lsqr.Options
}

// DefaultOptions returns the canonical IRLS configuration: 10 rounds,
// smooth ridge weighting with EpsR = 1e-10, no inner damping,
// TolIRLS = 1e-10, no history.
func DefaultOptions() Options {
	return Options{
		NOuter:  DefaultNOuter,
		EpsR:    DefaultEpsR,
		TolIRLS: DefaultTolIRLS,
	}
}

// Result is the structured outcome of a Solve call.
type Result struct {
	// X is the final solution estimate.
	X []float64

	// NOuter is the number of rounds actually executed.
	NOuter int

	// Stop tells how the outer loop terminated.
	Stop StopReason

	// ResidualNorm is ‖A·x−y‖₂ of the final estimate.
	ResidualNorm float64

	// XHist holds one solution snapshot per round when ReturnHistory is
	// set; nil otherwise.
	XHist [][]float64

	// WHist holds the weight vector used by each round when ReturnHistory
	// is set (round 0 is all ones); nil otherwise.
	WHist [][]float64
}
