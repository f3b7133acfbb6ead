// Package artifact persists the trained model, encoders, scaler and
// metadata as flat gob files, one artifact per file. The files are written
// once by a training run and only ever read afterwards.
package artifact

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/model"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

const (
	ModelFile    = "model.gob"
	EncodersFile = "encoders.gob"
	ScalerFile   = "scaler.gob"
	MetadataFile = "metadata.gob"
)

// ModelMetrics are the held-out evaluation results for one candidate.
type ModelMetrics struct {
	R2   float64
	RMSE float64
}

// Metadata records which model was selected and the evaluation that
// justified the choice. Read-only at inference time.
type Metadata struct {
	RunID        string
	ModelType    string
	UseScaling   bool
	Metrics      map[string]ModelMetrics // keyed by model type, both candidates
	FeatureNames []string
	Seed         int64
	TrainSamples int
	TestSamples  int
	CreatedAt    time.Time
}

// Bundle is everything the predictor needs at inference time.
type Bundle struct {
	Model    model.Model
	Encoders map[string]*preprocess.LabelEncoder
	Scaler   *preprocess.StandardScaler
	Metadata *Metadata
}

func init() {
	// Concrete model types must be registered so the Model interface
	// round-trips through gob.
	gob.Register(&model.LinearRegression{})
	gob.Register(&model.RegressionTree{})
}

// Save writes all four artifacts into dir, creating it if needed.
func Save(b *Bundle, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := writeGob(filepath.Join(dir, ModelFile), &b.Model); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, EncodersFile), b.Encoders); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, ScalerFile), b.Scaler); err != nil {
		return err
	}
	return writeGob(filepath.Join(dir, MetadataFile), b.Metadata)
}

// Load reads all four artifacts from dir. The error names the artifact that
// failed so the operator knows which file is missing or corrupt.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{
		Encoders: map[string]*preprocess.LabelEncoder{},
		Scaler:   &preprocess.StandardScaler{},
		Metadata: &Metadata{},
	}
	if err := readGob(filepath.Join(dir, ModelFile), &b.Model); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, EncodersFile), &b.Encoders); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, ScalerFile), b.Scaler); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, MetadataFile), b.Metadata); err != nil {
		return nil, err
	}
	return b, nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load artifact %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
