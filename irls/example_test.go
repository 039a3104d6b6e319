package irls_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linop/callback"
	"github.com/katalvlaran/linop/irls"
	"github.com/katalvlaran/linop/lsqr"
	"github.com/katalvlaran/linop/operator"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleSolve
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Fit a line through 30 samples of y = 1 + 2t corrupted by two gross
//	outliers. Plain least squares is dragged far off; IRLS down-weights the
//	two bad observations round after round and lands close to the truth.
//
// Options mirror the classic robust-regression setup: 20 outer rounds,
// smooth ridge weighting with EpsR = 1e-2, relative tolerance 1e-2.
func ExampleSolve() {
	taxis := make([]float64, 30)
	for i := range taxis {
		taxis[i] = float64(i)
	}
	a, _ := operator.NewRegression(taxis)
	y, _ := a.Forward([]float64{1.0, 2.0})
	y[1] += 40
	y[28] -= 20

	plain, _ := lsqr.LeastSquares(a, y)
	plainErr := math.Hypot(plain.X[0]-1, plain.X[1]-2)

	opts := irls.DefaultOptions()
	opts.NOuter = 20
	opts.EpsR = 1e-2
	opts.TolIRLS = 1e-2
	robust, err := irls.Solve(a, y, &opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	robustErr := math.Hypot(robust.X[0]-1, robust.X[1]-2)

	fmt.Println("plain fit dragged off:", plainErr > 0.1)
	fmt.Println("robust fit close:", robustErr < 0.2)
	// Output:
	// plain fit dragged off: true
	// robust fit close: true
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleSolve_history
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Watch the reweighting happen: a subscriber records the weight vector of
//	every round. Round 0 always reports the initial all-ones weights —
//	no residual has informed them yet.
type weightLogger struct {
	callback.BaseCallbacks
	rounds int
	ones   bool
}

func (l *weightLogger) OnStepEnd(s callback.State) error {
	if s.Iter == 0 {
		l.ones = true
		for _, w := range s.Weights {
			if w != 1 {
				l.ones = false
			}
		}
	}
	l.rounds++

	return nil
}

func ExampleSolve_history() {
	taxis := make([]float64, 20)
	for i := range taxis {
		taxis[i] = float64(i)
	}
	a, _ := operator.NewRegression(taxis)
	y, _ := a.Forward([]float64{0.5, -1})
	y[7] += 25

	logger := &weightLogger{}
	opts := irls.DefaultOptions()
	opts.NOuter = 6
	opts.EpsR = 1e-2
	opts.TolIRLS = 1e-4
	opts.Callbacks = callback.NewRegistry(logger)

	res, err := irls.Solve(a, y, &opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fmt.Println("observed rounds == executed rounds:", logger.rounds == res.NOuter)
	fmt.Println("round-0 weights all ones:", logger.ones)
	// Output:
	// observed rounds == executed rounds: true
	// round-0 weights all ones: true
}
