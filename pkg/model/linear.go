package model

import (
	"errors"
	"math/rand"
	"runtime"
	"sync"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/optim"
)

// LinearRegression trained via mini-batch gradient descent.
type LinearRegression struct {
	W         []float64 // weights
	B         float64   // bias
	Lr        float64
	Epochs    int
	BatchSize int
	Seed      int64
}

// NewLinearRegression initializes a model with seeded small random weights
// so a run with the same seed and data is reproducible.
func NewLinearRegression(nFeatures int, lr float64, epochs, batchSize int, seed int64) *LinearRegression {
	rnd := rand.New(rand.NewSource(seed))
	w := make([]float64, nFeatures)
	for i := range w {
		w[i] = rnd.NormFloat64() * 0.01
	}
	return &LinearRegression{W: w, B: 0, Lr: lr, Epochs: epochs, BatchSize: batchSize, Seed: seed}
}

func (m *LinearRegression) Name() string { return LinearRegressionName }

// Predict returns predictions for rows in X. Rows are split across CPU
// cores; each worker writes to a disjoint slice range.
func (m *LinearRegression) Predict(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}
	pred := make([]float64, len(X))
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		s := w * rowsPerWorker
		e := s + rowsPerWorker
		if e > len(X) {
			e = len(X)
		}
		if s >= e {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				pred[i] = m.predictOne(X[i])
			}
		}(s, e)
	}
	wg.Wait()
	return pred
}

func (m *LinearRegression) predictOne(row []float64) float64 {
	sum := m.B
	for j, v := range row {
		sum += m.W[j] * v
	}
	return sum
}

// Fit trains the model with mini-batch SGD on the squared error loss. The
// epoch shuffle uses the model's seed, so training is deterministic.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("linear: empty training set")
	}
	if len(y) != len(X) {
		return errors.New("linear: X and y length mismatch")
	}
	if len(m.W) != len(X[0]) {
		return errors.New("linear: feature count mismatch between model and data")
	}

	opt := optim.NewSGD(m.Lr)
	rnd := rand.New(rand.NewSource(m.Seed))
	n := len(X)
	batch := m.BatchSize
	if batch <= 0 || batch > n {
		batch = n
	}

	for ep := 0; ep < m.Epochs; ep++ {
		order := rnd.Perm(n)
		for s := 0; s < n; s += batch {
			e := s + batch
			if e > n {
				e = n
			}
			gW := make([]float64, len(m.W))
			gb := 0.0
			for _, i := range order[s:e] {
				row := X[i]
				// d(MSE)/d(yhat) for one sample in the batch
				d := 2 * (m.predictOne(row) - y[i]) / float64(e-s)
				for j, xij := range row {
					gW[j] += d * xij
				}
				gb += d
			}
			opt.Step(m.W, gW)
			m.B -= m.Lr * gb
		}
	}
	return nil
}
