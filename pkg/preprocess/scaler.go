package preprocess

import (
	"errors"
	"math"
)

// StandardScaler standardizes each column to zero mean and unit variance.
// Fit learns the parameters on training data; Transform only ever applies
// the stored parameters, never refits.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit computes per-column mean and standard deviation. Columns with zero
// variance get std 1 so Transform leaves them centered instead of dividing
// by zero.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("scaler: empty training matrix")
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			s.Mean[j] += X[i][j]
		}
		s.Mean[j] /= float64(r)
		v := 0.0
		for i := 0; i < r; i++ {
			d := X[i][j] - s.Mean[j]
			v += d * d
		}
		v /= float64(r)
		s.Std[j] = math.Sqrt(v)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

// Fitted reports whether parameters have been learned.
func (s *StandardScaler) Fitted() bool { return len(s.Mean) > 0 }

// Transform standardizes every row of X with the stored parameters.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	if !s.Fitted() {
		return X
	}
	Y := make([][]float64, len(X))
	for i := range X {
		Y[i] = s.TransformRow(X[i])
	}
	return Y
}

// TransformRow standardizes a single feature vector.
func (s *StandardScaler) TransformRow(x []float64) []float64 {
	if !s.Fitted() {
		return x
	}
	y := make([]float64, len(x))
	for j := range x {
		y[j] = (x[j] - s.Mean[j]) / s.Std[j]
	}
	return y
}

// FitTransform fits on X and returns the standardized matrix.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X), nil
}
