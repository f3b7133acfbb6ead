package model

// Model is a supervised regression estimator. Fit trains on a design matrix
// and targets; Predict scores rows of features.
type Model interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
	Name() string
}

const (
	LinearRegressionName = "linear_regression"
	RegressionTreeName   = "decision_tree"
)
