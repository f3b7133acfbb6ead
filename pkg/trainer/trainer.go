// Package trainer fits both candidate models on a labeled table, scores
// them on a held-out split and persists the better one with its
// preprocessing artifacts.
package trainer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/artifact"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/model"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

// selectionTolerance is the R2 margin within which the two models are
// considered tied.
const selectionTolerance = 1e-9

// Config are the training hyperparameters.
type Config struct {
	Seed            int64
	TestRatio       float64
	Epochs          int
	LearningRate    float64
	BatchSize       int
	MaxDepth        int
	MinSamplesSplit int
}

// DefaultConfig matches the values used for the shipped artifacts.
func DefaultConfig() Config {
	return Config{
		Seed:            42,
		TestRatio:       0.2,
		Epochs:          200,
		LearningRate:    0.01,
		BatchSize:       32,
		MaxDepth:        8,
		MinSamplesSplit: 10,
	}
}

// Outcome is the result of one training run.
type Outcome struct {
	Bundle  *artifact.Bundle
	Metrics map[string]artifact.ModelMetrics
}

// Train fits a linear regression on standardized features and a regression
// tree on the raw encoded features, evaluates both on the held-out split by
// R2, and returns a bundle holding the winner. A tie goes to the simpler
// linear model.
func Train(table *dataset.Table, cfg Config) (*Outcome, error) {
	if len(table.Records) == 0 {
		return nil, fmt.Errorf("training table is empty")
	}

	encoders := preprocess.FitEncoders(table.Records)
	X, err := preprocess.Matrix(table.Records, encoders)
	if err != nil {
		return nil, fmt.Errorf("encode training table: %w", err)
	}

	XTrain, XTest, yTrain, yTest := TrainTestSplit(X, table.Scores, cfg.TestRatio, cfg.Seed)
	if len(XTrain) == 0 || len(XTest) == 0 {
		return nil, fmt.Errorf("split left an empty set (n=%d, ratio=%.2f)", len(X), cfg.TestRatio)
	}

	scaler := preprocess.NewStandardScaler()
	XTrainScaled, err := scaler.FitTransform(XTrain)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	XTestScaled := scaler.Transform(XTest)

	linear := model.NewLinearRegression(len(XTrain[0]), cfg.LearningRate, cfg.Epochs, cfg.BatchSize, cfg.Seed)
	tree := model.NewRegressionTree(
		model.WithMaxDepth(cfg.MaxDepth),
		model.WithMinSamplesSplit(cfg.MinSamplesSplit),
		model.WithTreeSeed(cfg.Seed),
	)

	// The two fits are independent, so run them side by side.
	var g errgroup.Group
	g.Go(func() error { return linear.Fit(XTrainScaled, yTrain) })
	g.Go(func() error { return tree.Fit(XTrain, yTrain) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fit models: %w", err)
	}

	linearPred := linear.Predict(XTestScaled)
	treePred := tree.Predict(XTest)

	metrics := map[string]artifact.ModelMetrics{
		model.LinearRegressionName: {
			R2:   model.R2(yTest, linearPred),
			RMSE: model.RMSE(yTest, linearPred),
		},
		model.RegressionTreeName: {
			R2:   model.R2(yTest, treePred),
			RMSE: model.RMSE(yTest, treePred),
		},
	}

	var chosen model.Model = linear
	useScaling := true
	if treeWins(metrics) {
		chosen = tree
		useScaling = false
	}

	meta := &artifact.Metadata{
		RunID:        uuid.NewString(),
		ModelType:    chosen.Name(),
		UseScaling:   useScaling,
		Metrics:      metrics,
		FeatureNames: preprocess.FeatureNames,
		Seed:         cfg.Seed,
		TrainSamples: len(XTrain),
		TestSamples:  len(XTest),
		CreatedAt:    time.Now().UTC(),
	}

	return &Outcome{
		Bundle: &artifact.Bundle{
			Model:    chosen,
			Encoders: encoders,
			Scaler:   scaler,
			Metadata: meta,
		},
		Metrics: metrics,
	}, nil
}

// treeWins reports whether the tree beat the linear model on held-out R2.
// Ties within selectionTolerance go to the linear model.
func treeWins(metrics map[string]artifact.ModelMetrics) bool {
	return metrics[model.RegressionTreeName].R2 > metrics[model.LinearRegressionName].R2+selectionTolerance
}

// TrainAndSave runs Train and persists the resulting bundle into dir.
func TrainAndSave(table *dataset.Table, cfg Config, dir string) (*Outcome, error) {
	out, err := Train(table, cfg)
	if err != nil {
		return nil, err
	}
	if err := artifact.Save(out.Bundle, dir); err != nil {
		return nil, err
	}
	return out, nil
}
