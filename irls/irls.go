package irls

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linop/callback"
	"github.com/katalvlaran/linop/lsqr"
	"github.com/katalvlaran/linop/operator"
)

// Solve — Iteratively Reweighted Least Squares.
//
// Description:
//
//	Approximates argmin ‖A·x − y‖₁ by a sequence of weighted L2 solves:
//	round k minimizes Σᵢ wᵢ·(A·x − y)ᵢ² with wᵢ ≈ 1/|rᵢ| taken from the
//	previous round's residual, delegating each weighted problem to LSQR on
//	a fresh operator.Weighted(A, √w).
//
// Algorithm Outline:
//  1. w ← all ones (length m); no residual has informed the weights yet.
//  2. Round k: solve min ‖W^(1/2)(A·x − y)‖₂ with W = diag(w) and ridge
//     damping EpsI, warm-started from the previous round's solution.
//  3. r ← A·x_k − y; emit OnStepEnd carrying x_k and the weights used in
//     step 2 (round 0 therefore reports the all-ones vector).
//  4. Converged when ‖x_k − x_{k−1}‖/‖x_k‖ < TolIRLS for k > 0; the check
//     is skipped at k = 0 (no previous solution exists).
//  5. w ← fresh slice from |r| per the ThreshR policy; the EpsR floor or
//     ridge keeps every weight finite even for exactly-zero residuals.
//
// Complexity:
//
//	Time   = O(NOuter × LSQR cost); each round adds one extra Forward.
//	Memory = O(n + m), plus O(NOuter·(n + m)) when ReturnHistory is set.
//
// Errors:
//   - ErrNilOperator, ErrEmptyRHS, ErrBadNOuter, ErrBadEpsR, ErrBadEpsI,
//     ErrBadTolIRLS — invalid inputs, detected before any numerical work.
//   - operator.ErrDimensionMismatch — len(y) != a.Rows().
//   - callback errors propagate unmodified and abort the solve.
//
// Exhausting NOuter is not an error: the best estimate is returned with
// Stop == StopExhausted and the caller decides how to treat it.
func Solve(a operator.Operator, y []float64, opts *Options) (Result, error) {
	if a == nil {
		return Result{}, ErrNilOperator
	}
	if len(y) == 0 {
		return Result{}, ErrEmptyRHS
	}
	if len(y) != a.Rows() {
		return Result{}, fmt.Errorf("irls: got %d observations, operator has %d rows: %w",
			len(y), a.Rows(), operator.ErrDimensionMismatch)
	}

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := applyDefaults(&o); err != nil {
		return Result{}, err
	}

	m := a.Rows()
	w := make([]float64, m)
	for i := range w {
		w[i] = 1
	}

	var (
		x, xprev []float64
		rnorm    float64
		rounds   int
		xhist    [][]float64
		whist    [][]float64
	)
	stop := StopExhausted

	for k := 0; k < o.NOuter; k++ {
		rounds = k + 1

		if err := o.Callbacks.StepBegin(callback.State{Iter: k, X: xprev, Weights: w}); err != nil {
			return Result{X: xprev, NOuter: k, Stop: stop}, err
		}

		// Weighted solve: LSQR on √w·A with rhs √w·y minimizes Σ wᵢrᵢ².
		sw := make([]float64, m)
		for i, wi := range w {
			sw[i] = math.Sqrt(wi)
		}
		wop, err := operator.NewWeighted(a, sw)
		if err != nil {
			return Result{}, err
		}
		rhs := make([]float64, m)
		copy(rhs, y)
		floats.Mul(rhs, sw)

		inner := lsqr.DefaultOptions()
		if o.Inner != nil {
			inner = *o.Inner
		}
		inner.Damp = o.EpsI
		inner.X0 = xprev

		res, err := lsqr.Solve(wop, rhs, &inner)
		if err != nil {
			return Result{X: xprev, NOuter: k, Stop: stop}, err
		}
		x = res.X

		// Residual of the unweighted problem drives the next weights.
		r, err := a.Forward(x)
		if err != nil {
			return Result{}, err
		}
		floats.Sub(r, y)
		rnorm = floats.Norm(r, 2)

		if o.ReturnHistory {
			xhist = append(xhist, snapshot(x))
			whist = append(whist, snapshot(w))
		}

		state := callback.State{Iter: k, X: x, Residual: r, Weights: w}
		if err = o.Callbacks.StepEnd(state); err != nil {
			return Result{X: x, NOuter: rounds, Stop: stop, ResidualNorm: rnorm, XHist: xhist, WHist: whist}, err
		}

		// Relative-change convergence; round 0 has nothing to compare to.
		if k > 0 {
			xn := floats.Norm(x, 2)
			if xn > 0 && floats.Distance(x, xprev, 2)/xn < o.TolIRLS {
				stop = StopConverged
				state.Converged = true
				if err = o.Callbacks.Converged(state); err != nil {
					return Result{X: x, NOuter: rounds, Stop: stop, ResidualNorm: rnorm, XHist: xhist, WHist: whist}, err
				}

				break
			}
		}

		w = reweight(r, &o)
		xprev = x
	}

	return Result{
		X:            x,
		NOuter:       rounds,
		Stop:         stop,
		ResidualNorm: rnorm,
		XHist:        xhist,
		WHist:        whist,
	}, nil
}

// reweight derives the next round's weight vector from the residual. The
// result is always a fresh slice: the previous vector stays immutable for
// callback inspection.
//
// ThreshR=true  → wᵢ = 1/max(|rᵢ|, EpsR)  (hard floor)
// ThreshR=false → wᵢ = 1/(|rᵢ| + EpsR)    (smooth ridge)
//
// EpsR > 0 guarantees finite weights for exactly-zero residuals.
func reweight(r []float64, o *Options) []float64 {
	w := make([]float64, len(r))
	for i, ri := range r {
		ar := math.Abs(ri)
		if o.ThreshR {
			if ar < o.EpsR {
				ar = o.EpsR
			}
			w[i] = 1 / ar
		} else {
			w[i] = 1 / (ar + o.EpsR)
		}
	}

	return w
}

// applyDefaults fills zero-valued fields and rejects malformed settings.
func applyDefaults(o *Options) error {
	if o.NOuter < 0 {
		return ErrBadNOuter
	}
	if o.NOuter == 0 {
		o.NOuter = DefaultNOuter
	}
	if o.EpsR == 0 {
		o.EpsR = DefaultEpsR
	}
	if o.EpsR < 0 {
		return ErrBadEpsR
	}
	if o.EpsI < 0 {
		return ErrBadEpsI
	}
	if o.TolIRLS < 0 {
		return ErrBadTolIRLS
	}
	if o.TolIRLS == 0 {
		o.TolIRLS = DefaultTolIRLS
	}

	return nil
}

// snapshot returns a defensive copy of v.
func snapshot(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
