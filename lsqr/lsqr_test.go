package lsqr_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linop/callback"
	"github.com/katalvlaran/linop/lsqr"
	"github.com/katalvlaran/linop/operator"
)

// newTrendOperator builds the [1, t] regression operator on t = 0..n-1,
// the workhorse system of these tests.
func newTrendOperator(t *testing.T, n int) *operator.Regression {
	t.Helper()
	taxis := make([]float64, n)
	for i := range taxis {
		taxis[i] = float64(i)
	}
	r, err := operator.NewRegression(taxis)
	require.NoError(t, err)

	return r
}

// TestSolve_ExactRecoveryNoiseFree: given y = A·x_true exactly, the solver
// must return x_true within 1e-6 (n=30, x=[1,2]).
func TestSolve_ExactRecoveryNoiseFree(t *testing.T) {
	a := newTrendOperator(t, 30)
	y, err := a.Forward([]float64{1.0, 2.0})
	require.NoError(t, err)

	res, err := lsqr.LeastSquares(a, y)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.X[0], 1e-6, "intercept")
	assert.InDelta(t, 2.0, res.X[1], 1e-6, "gradient")
	assert.True(t, res.Stop.Converged(), "noise-free system must converge, got %v", res.Stop)
	assert.Less(t, res.ResidualNorm, 1e-6, "residual of an exact system")
}

// TestSolve_IdentityOperator: solving I·x = y must return y itself.
func TestSolve_IdentityOperator(t *testing.T) {
	d, err := operator.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	require.NoError(t, err)

	res, err := lsqr.LeastSquares(d, []float64{1, 2, 3})
	require.NoError(t, err)
	for i, want := range []float64{1, 2, 3} {
		assert.InDelta(t, want, res.X[i], 1e-10, "x[%d]", i)
	}
}

// TestSolve_OverdeterminedLeastSquares checks the minimizer of an
// inconsistent 3x1 system: A = [1;1;1], y = [0, 3, 0] → x = mean(y) = 1.
func TestSolve_OverdeterminedLeastSquares(t *testing.T) {
	d, err := operator.NewDense(3, 1, []float64{1, 1, 1})
	require.NoError(t, err)

	res, err := lsqr.LeastSquares(d, []float64{0, 3, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.X[0], 1e-10, "least-squares mean")
	// r = (−1, 2, −1), ‖r‖ = √6
	assert.InDelta(t, math.Sqrt(6), res.ResidualNorm, 1e-8, "achieved residual norm")
}

// TestSolve_ZeroRHS: y = 0 means x = 0 is exact before any iteration.
func TestSolve_ZeroRHS(t *testing.T) {
	a := newTrendOperator(t, 10)

	res, err := lsqr.LeastSquares(a, make([]float64, 10))
	require.NoError(t, err)
	assert.Equal(t, lsqr.StopExactSolution, res.Stop)
	assert.Equal(t, 0, res.Iters, "no iteration should run")
	assert.Equal(t, []float64{0, 0}, res.X)
}

// TestSolve_X0AlreadyExact: a warm start at the true solution must be
// recognized without iterating.
func TestSolve_X0AlreadyExact(t *testing.T) {
	a := newTrendOperator(t, 12)
	y, err := a.Forward([]float64{-1, 0.5})
	require.NoError(t, err)

	opts := lsqr.DefaultOptions()
	opts.X0 = []float64{-1, 0.5}
	res, err := lsqr.Solve(a, y, &opts)
	require.NoError(t, err)
	assert.Equal(t, lsqr.StopExactSolution, res.Stop)
	assert.Equal(t, 0, res.Iters)
	assert.Equal(t, []float64{-1, 0.5}, res.X)
}

// TestSolve_MaxIterationsIsSoft: a one-iteration budget on a two-dimensional
// system must return the best iterate with StopMaxIterations, not an error.
func TestSolve_MaxIterationsIsSoft(t *testing.T) {
	a := newTrendOperator(t, 30)
	y, err := a.Forward([]float64{1, 2})
	require.NoError(t, err)

	opts := lsqr.DefaultOptions()
	opts.MaxIter = 1
	res, err := lsqr.Solve(a, y, &opts)
	require.NoError(t, err, "budget exhaustion is a status, never an error")
	assert.Equal(t, lsqr.StopMaxIterations, res.Stop)
	assert.Equal(t, 1, res.Iters)
	assert.False(t, res.Stop.Converged())
	assert.Len(t, res.X, 2, "best iterate is still returned")
}

// TestSolve_DampingShrinksSolution: with a large damping factor the ridge
// penalty must pull the estimate toward zero relative to the plain solve.
func TestSolve_DampingShrinksSolution(t *testing.T) {
	a := newTrendOperator(t, 30)
	y, err := a.Forward([]float64{1, 2})
	require.NoError(t, err)

	plain, err := lsqr.LeastSquares(a, y)
	require.NoError(t, err)

	opts := lsqr.DefaultOptions()
	opts.Damp = 50
	damped, err := lsqr.Solve(a, y, &opts)
	require.NoError(t, err)

	plainNorm := math.Hypot(plain.X[0], plain.X[1])
	dampedNorm := math.Hypot(damped.X[0], damped.X[1])
	assert.Less(t, dampedNorm, plainNorm, "damping must shrink ‖x‖")
}

// TestSolve_ConditionLimit: a geometric-decay diagonal system with a tight
// ConLim must stop on the condition-number estimate long before the
// residual tolerance can be met.
func TestSolve_ConditionLimit(t *testing.T) {
	const n = 50
	data := make([]float64, n*n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i*n+i] = math.Pow(10, -9*float64(i)/float64(n-1))
		y[i] = 1
	}
	d, err := operator.NewDense(n, n, data)
	require.NoError(t, err)

	opts := lsqr.DefaultOptions()
	opts.ConLim = 1e4
	res, err := lsqr.Solve(d, y, &opts)
	require.NoError(t, err)
	assert.Equal(t, lsqr.StopConditionLimit, res.Stop)
	assert.Greater(t, res.CondA, 1e3, "condition estimate at the stop")
}

// nanOp poisons the bidiagonalization with NaN.
type nanOp struct{}

func (nanOp) Rows() int { return 2 }
func (nanOp) Cols() int { return 2 }

func (nanOp) Forward(x []float64) ([]float64, error) {
	return []float64{math.NaN(), math.NaN()}, nil
}

func (nanOp) Adjoint(y []float64) ([]float64, error) {
	return []float64{math.NaN(), math.NaN()}, nil
}

// TestSolve_NumericalBreakdownSurfaced: NaN in the recurrence scalars must
// surface as a distinct stop reason, not silent garbage.
func TestSolve_NumericalBreakdownSurfaced(t *testing.T) {
	res, err := lsqr.LeastSquares(nanOp{}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, lsqr.StopNumericalBreakdown, res.Stop)
}

// TestSolve_InputValidation covers the fail-fast error taxonomy.
func TestSolve_InputValidation(t *testing.T) {
	a := newTrendOperator(t, 5)
	y := make([]float64, 5)

	_, err := lsqr.LeastSquares(nil, y)
	assert.ErrorIs(t, err, lsqr.ErrNilOperator)

	_, err = lsqr.LeastSquares(a, nil)
	assert.ErrorIs(t, err, lsqr.ErrEmptyRHS)

	_, err = lsqr.LeastSquares(a, make([]float64, 4))
	assert.ErrorIs(t, err, operator.ErrDimensionMismatch, "rhs length vs operator rows")

	opts := lsqr.DefaultOptions()
	opts.Damp = -1
	_, err = lsqr.Solve(a, y, &opts)
	assert.ErrorIs(t, err, lsqr.ErrNegativeDamp)

	opts = lsqr.DefaultOptions()
	opts.Atol = -1
	_, err = lsqr.Solve(a, y, &opts)
	assert.ErrorIs(t, err, lsqr.ErrBadTolerance)

	opts = lsqr.DefaultOptions()
	opts.ConLim = -1
	_, err = lsqr.Solve(a, y, &opts)
	assert.ErrorIs(t, err, lsqr.ErrBadConLim)

	opts = lsqr.DefaultOptions()
	opts.MaxIter = -1
	_, err = lsqr.Solve(a, y, &opts)
	assert.ErrorIs(t, err, lsqr.ErrBadMaxIter)

	opts = lsqr.DefaultOptions()
	opts.X0 = []float64{1}
	_, err = lsqr.Solve(a, y, &opts)
	assert.ErrorIs(t, err, operator.ErrDimensionMismatch, "X0 length vs operator cols")
}

// iterWatcher records the iteration indices it observes.
type iterWatcher struct {
	callback.BaseCallbacks
	iters []int
}

func (w *iterWatcher) OnStepEnd(s callback.State) error {
	w.iters = append(w.iters, s.Iter)

	return nil
}

// TestSolve_CallbacksPerIteration: StepEnd must fire once per iteration
// with 0-based consecutive indices.
func TestSolve_CallbacksPerIteration(t *testing.T) {
	a := newTrendOperator(t, 30)
	y, err := a.Forward([]float64{1, 2})
	require.NoError(t, err)

	w := &iterWatcher{}
	opts := lsqr.DefaultOptions()
	opts.Callbacks = callback.NewRegistry(w)
	res, err := lsqr.Solve(a, y, &opts)
	require.NoError(t, err)

	require.Equal(t, res.Iters, len(w.iters), "one StepEnd per iteration")
	for i, got := range w.iters {
		assert.Equal(t, i, got, "indices must be consecutive from 0")
	}
}

// abortAfter fails on a chosen iteration to force an abort.
type abortAfter struct {
	callback.BaseCallbacks
	at  int
	err error
}

func (a *abortAfter) OnStepEnd(s callback.State) error {
	if s.Iter == a.at {
		return a.err
	}

	return nil
}

// TestSolve_CallbackErrorAborts: a hook error must abort the solve and
// propagate unmodified.
func TestSolve_CallbackErrorAborts(t *testing.T) {
	a := newTrendOperator(t, 30)
	y, err := a.Forward([]float64{1, 2})
	require.NoError(t, err)

	boom := errors.New("recorder full")
	opts := lsqr.DefaultOptions()
	opts.Callbacks = callback.NewRegistry(&abortAfter{at: 0, err: boom})
	_, err = lsqr.Solve(a, y, &opts)
	assert.ErrorIs(t, err, boom)
}

// TestStopReason_Strings pins the user-visible names.
func TestStopReason_Strings(t *testing.T) {
	assert.Equal(t, "ExactSolution", lsqr.StopExactSolution.String())
	assert.Equal(t, "ConvergedResidual", lsqr.StopResidualTol.String())
	assert.Equal(t, "ConvergedNormalEquation", lsqr.StopNormalEqTol.String())
	assert.Equal(t, "ConditionNumberLimit", lsqr.StopConditionLimit.String())
	assert.Equal(t, "MaxIterationsReached", lsqr.StopMaxIterations.String())
	assert.Equal(t, "NumericalBreakdown", lsqr.StopNumericalBreakdown.String())
}
