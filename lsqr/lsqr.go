package lsqr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linop/callback"
	"github.com/katalvlaran/linop/operator"
)

// Solve — LSQR iterative least-squares solver.
//
// Description:
//
//	Approximates x* = argmin ‖A·x − y‖₂ (or the Damp-regularized variant)
//	using only Forward/Adjoint applications of A.
//
// Algorithm Outline (Paige & Saunders, 1982):
//  1. Initialize the Golub–Kahan bidiagonalization:
//     β₁·u₁ = y − A·x₀,  α₁·v₁ = Aᵀ·u₁,  w₁ = v₁.
//  2. Each iteration runs one Forward and one Adjoint application:
//     β·u ← A·v − α·u,   α·v ← Aᵀ·u − β·v
//     then eliminates the damping term and the subdiagonal with two plane
//     rotations, updating the scalar recurrence (α, β, ρ, φ) and
//     x ← x + (φ/ρ)·w,   w ← v − (θ/ρ)·w.
//  3. Running estimates of ‖A‖, cond(A), ‖r‖, ‖Aᵀr‖ and ‖x‖ drive the
//     stopping tests; no operator matrix element is ever read.
//
// Stopping:
//   - ‖r‖ small relative to Btol + Atol·‖A‖·‖x‖/‖y‖ → StopResidualTol
//   - ‖Aᵀr‖/(‖A‖·‖r‖) ≤ Atol                        → StopNormalEqTol
//   - cond(A) estimate ≥ ConLim                      → StopConditionLimit
//   - budget exhausted                               → StopMaxIterations
//   - NaN/Inf in the recurrence scalars              → StopNumericalBreakdown
//
// Complexity:
//
//	Time   = O(Iters × cost(Forward+Adjoint) + Iters·(n+m))
//	Memory = O(n + m)
//
// Errors:
//   - ErrNilOperator, ErrEmptyRHS, ErrNegativeDamp, ErrBadTolerance,
//     ErrBadConLim, ErrBadMaxIter — invalid inputs, detected before any
//     numerical work.
//   - operator.ErrDimensionMismatch — len(y) != a.Rows() or bad X0 length.
//   - callback errors propagate unmodified and abort the solve.
func Solve(a operator.Operator, y []float64, opts *Options) (Result, error) {
	if a == nil {
		return Result{}, ErrNilOperator
	}
	if len(y) == 0 {
		return Result{}, ErrEmptyRHS
	}
	if len(y) != a.Rows() {
		return Result{}, fmt.Errorf("lsqr: got %d observations, operator has %d rows: %w",
			len(y), a.Rows(), operator.ErrDimensionMismatch)
	}

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := validateOptions(a, &o); err != nil {
		return Result{}, err
	}

	n := a.Cols()
	damp := o.Damp
	dampSq := damp * damp
	ctol := 0.0
	if o.ConLim > 0 {
		ctol = 1 / o.ConLim
	}

	// β₁·u₁ = y − A·x₀
	x := make([]float64, n)
	u := make([]float64, len(y))
	copy(u, y)
	if o.X0 != nil {
		copy(x, o.X0)
		ax, err := a.Forward(x)
		if err != nil {
			return Result{}, err
		}
		floats.Sub(u, ax)
	}

	beta := floats.Norm(u, 2)
	bnorm := beta
	if beta == 0 {
		// x₀ reproduces y exactly; nothing to iterate on.
		return Result{X: x, Stop: StopExactSolution}, nil
	}
	floats.Scale(1/beta, u)

	// α₁·v₁ = Aᵀ·u₁
	v, err := a.Adjoint(u)
	if err != nil {
		return Result{}, err
	}
	alfa := floats.Norm(v, 2)
	if alfa > 0 {
		floats.Scale(1/alfa, v)
	}

	arnorm := alfa * beta
	if arnorm == 0 {
		// Aᵀ·y = 0: the zero correction is already the least-squares
		// minimizer from x₀.
		return Result{X: x, Stop: StopExactSolution, ResidualNorm: beta}, nil
	}

	w := make([]float64, n)
	copy(w, v)

	var (
		rhobar = alfa
		phibar = beta
		rnorm  = beta
		r1norm = rnorm

		anorm, acond   float64
		ddnorm, res2   float64
		xnorm, xxnorm  float64
		z              float64
		cs2, sn2       = -1.0, 0.0
		itn            int
		stop           StopReason
		stopped        bool
	)

	for itn = 1; itn <= o.MaxIter; itn++ {
		if err = o.Callbacks.StepBegin(callback.State{Iter: itn - 1, X: x}); err != nil {
			return Result{X: x, Iters: itn - 1, Stop: stop, ResidualNorm: r1norm, NormalEqNorm: arnorm, CondA: acond}, err
		}

		// Continue the bidiagonalization: β·u = A·v − α·u, α·v = Aᵀ·u − β·v.
		av, ferr := a.Forward(v)
		if ferr != nil {
			return Result{}, ferr
		}
		floats.AddScaledTo(u, av, -alfa, u)
		beta = floats.Norm(u, 2)
		if beta > 0 {
			floats.Scale(1/beta, u)
			anorm = math.Sqrt(anorm*anorm + alfa*alfa + beta*beta + dampSq)

			atu, aerr := a.Adjoint(u)
			if aerr != nil {
				return Result{}, aerr
			}
			floats.AddScaledTo(v, atu, -beta, v)
			alfa = floats.Norm(v, 2)
			if alfa > 0 {
				floats.Scale(1/alfa, v)
			}
		}

		// Rotation eliminating the damping term.
		rhobar1 := rhobar
		psi := 0.0
		if damp > 0 {
			rhobar1 = math.Sqrt(rhobar*rhobar + dampSq)
			cs1 := rhobar / rhobar1
			sn1 := damp / rhobar1
			psi = sn1 * phibar
			phibar = cs1 * phibar
		}

		// Rotation eliminating the subdiagonal element β.
		rho := math.Sqrt(rhobar1*rhobar1 + beta*beta)
		if rho == 0 || !isFinite(rho) || !isFinite(alfa) || !isFinite(beta) {
			stop, stopped = StopNumericalBreakdown, true
		} else {
			cs := rhobar1 / rho
			sn := beta / rho
			theta := sn * alfa
			rhobar = -cs * alfa
			phi := cs * phibar
			phibar = sn * phibar
			tau := sn * phi

			// Update x and the search direction w.
			t1 := phi / rho
			t2 := -theta / rho
			ddnorm += (floats.Norm(w, 2) / rho) * (floats.Norm(w, 2) / rho)
			floats.AddScaled(x, t1, w)
			floats.AddScaledTo(w, v, t2, w)

			// Estimate ‖x‖ for the stopping tests.
			delta := sn2 * rho
			gambar := -cs2 * rho
			rhs := phi - delta*z
			zbar := rhs / gambar
			xnorm = math.Sqrt(xxnorm + zbar*zbar)
			gamma := math.Sqrt(gambar*gambar + theta*theta)
			cs2 = gambar / gamma
			sn2 = theta / gamma
			z = rhs / gamma
			xxnorm += z * z

			// Residual and condition estimates.
			acond = anorm * math.Sqrt(ddnorm)
			res1 := phibar * phibar
			res2 += psi * psi
			rnorm = math.Sqrt(res1 + res2)
			arnorm = alfa * math.Abs(tau)

			// Undo the damping contribution for the plain residual norm.
			r1sq := rnorm*rnorm - dampSq*xxnorm
			r1norm = math.Sqrt(math.Abs(r1sq))
			if r1sq < 0 {
				r1norm = -r1norm
			}

			if !isFinite(rnorm) || !isFinite(arnorm) {
				stop, stopped = StopNumericalBreakdown, true
			} else {
				test1 := rnorm / bnorm
				test2 := arnorm / (anorm*rnorm + machEps)
				test3 := 1 / (acond + machEps)
				t1rel := test1 / (1 + anorm*xnorm/bnorm)
				rtol := o.Btol + o.Atol*anorm*xnorm/bnorm

				// Machine-precision variants first, then user tolerances.
				switch {
				case 1+test3 <= 1:
					stop, stopped = StopConditionLimit, true
				case 1+test2 <= 1:
					stop, stopped = StopNormalEqTol, true
				case 1+t1rel <= 1:
					stop, stopped = StopResidualTol, true
				case ctol > 0 && test3 <= ctol:
					stop, stopped = StopConditionLimit, true
				case test2 <= o.Atol:
					stop, stopped = StopNormalEqTol, true
				case test1 <= rtol:
					stop, stopped = StopResidualTol, true
				}
			}
		}

		state := callback.State{Iter: itn - 1, X: x, Converged: stopped && stop.Converged()}
		if err = o.Callbacks.StepEnd(state); err != nil {
			return Result{X: x, Iters: itn, Stop: stop, ResidualNorm: r1norm, NormalEqNorm: arnorm, CondA: acond}, err
		}
		if stopped {
			if stop.Converged() {
				if err = o.Callbacks.Converged(state); err != nil {
					return Result{X: x, Iters: itn, Stop: stop, ResidualNorm: r1norm, NormalEqNorm: arnorm, CondA: acond}, err
				}
			}

			break
		}
	}

	if !stopped {
		stop = StopMaxIterations
		itn = o.MaxIter
	}

	return Result{
		X:            x,
		Iters:        itn,
		Stop:         stop,
		ResidualNorm: r1norm,
		NormalEqNorm: arnorm,
		CondA:        acond,
	}, nil
}

// LeastSquares solves min ‖A·x−y‖₂ with DefaultOptions. It is the
// convenience entry point for callers that just want an estimate.
func LeastSquares(a operator.Operator, y []float64) (Result, error) {
	opts := DefaultOptions()

	return Solve(a, y, &opts)
}

// machEps is the double-precision unit roundoff used to guard divisions in
// the stopping tests.
const machEps = 2.220446049250313e-16

// validateOptions applies defaults and rejects malformed settings.
func validateOptions(a operator.Operator, o *Options) error {
	if o.Damp < 0 {
		return ErrNegativeDamp
	}
	if o.Atol < 0 || o.Btol < 0 {
		return ErrBadTolerance
	}
	if o.ConLim < 0 {
		return ErrBadConLim
	}
	if o.MaxIter < 0 {
		return ErrBadMaxIter
	}
	if o.MaxIter == 0 {
		o.MaxIter = 2 * a.Cols()
	}
	if o.X0 != nil && len(o.X0) != a.Cols() {
		return fmt.Errorf("lsqr: X0 has len %d, operator has %d cols: %w",
			len(o.X0), a.Cols(), operator.ErrDimensionMismatch)
	}

	return nil
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
