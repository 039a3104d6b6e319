package operator_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/linop/operator"
)

// benchmarkForward applies op.Forward b.N times on a fixed random input.
// It resets the timer before entering the loop and fails on unexpected errors.
func benchmarkForward(b *testing.B, op operator.Operator) {
	rng := rand.New(rand.NewSource(1))
	x := make([]float64, op.Cols())
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err := op.Forward(x); err != nil {
			b.Fatalf("Forward failed: %v", err)
		}
	}
}

// newBenchDense builds a rows×cols dense operator with deterministic data.
func newBenchDense(b *testing.B, rows, cols int) *operator.Dense {
	rng := rand.New(rand.NewSource(2))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	d, err := operator.NewDense(rows, cols, data)
	if err != nil {
		b.Fatalf("NewDense failed: %v", err)
	}

	return d
}

// BenchmarkDense_ForwardSmall benchmarks a 100×100 dense forward.
func BenchmarkDense_ForwardSmall(b *testing.B) {
	benchmarkForward(b, newBenchDense(b, 100, 100))
}

// BenchmarkDense_ForwardMedium benchmarks a 500×500 dense forward.
func BenchmarkDense_ForwardMedium(b *testing.B) {
	benchmarkForward(b, newBenchDense(b, 500, 500))
}

// BenchmarkRegression_Forward benchmarks the matrix-free regression forward
// on 10k samples; no matrix storage is involved.
func BenchmarkRegression_Forward(b *testing.B) {
	taxis := make([]float64, 10000)
	for i := range taxis {
		taxis[i] = float64(i)
	}
	r, err := operator.NewRegression(taxis)
	if err != nil {
		b.Fatalf("NewRegression failed: %v", err)
	}
	benchmarkForward(b, r)
}

// BenchmarkWeighted_Forward benchmarks the weighting decorator over a
// 500×500 dense inner operator.
func BenchmarkWeighted_Forward(b *testing.B) {
	d := newBenchDense(b, 500, 500)
	w := make([]float64, 500)
	for i := range w {
		w[i] = 1
	}
	wop, err := operator.NewWeighted(d, w)
	if err != nil {
		b.Fatalf("NewWeighted failed: %v", err)
	}
	benchmarkForward(b, wop)
}
