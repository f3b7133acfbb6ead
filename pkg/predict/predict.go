// Package predict turns one household record into a quality of life score,
// a category and a list of recommendations, using artifacts persisted by a
// training run.
package predict

import (
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/artifact"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

// Category bands over the score, highest first.
const (
	CategoryExcellent        = "Excellent"
	CategoryGood             = "Good"
	CategoryFair             = "Fair"
	CategoryNeedsImprovement = "Needs Improvement"
)

// Result is one prediction with its interpretation.
type Result struct {
	Score           float64            `json:"score"`
	Category        string             `json:"category"`
	HealthScore     float64            `json:"health_score"`
	EducationScore  float64            `json:"education_score"`
	HousingScore    float64            `json:"housing_score"`
	Recommendations []string           `json:"recommendations"`
	Record          *preprocess.Record `json:"record"`
}

// Predictor holds the loaded artifacts. They are read-only after New, so a
// single Predictor is safe to share across requests.
type Predictor struct {
	bundle *artifact.Bundle
}

// New loads the persisted artifacts from dir. A missing or corrupt artifact
// is a fatal condition for the caller; the error names the failing file.
func New(dir string) (*Predictor, error) {
	b, err := artifact.Load(dir)
	if err != nil {
		return nil, err
	}
	return &Predictor{bundle: b}, nil
}

// Metadata exposes the training run metadata for display.
func (p *Predictor) Metadata() *artifact.Metadata { return p.bundle.Metadata }

// Encoders exposes the fitted vocabularies, e.g. to populate form options.
func (p *Predictor) Encoders() map[string]*preprocess.LabelEncoder { return p.bundle.Encoders }

// Predict scores one record. The model output is clamped to [0, 100] since
// the target is bounded; unknown categorical values are returned as errors,
// never coerced.
func (p *Predictor) Predict(r *preprocess.Record) (*Result, error) {
	x, err := preprocess.Features(r, p.bundle.Encoders)
	if err != nil {
		return nil, err
	}
	if p.bundle.Metadata.UseScaling {
		x = p.bundle.Scaler.TransformRow(x)
	}
	score := p.bundle.Model.Predict([][]float64{x})[0]
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	health, education, housing := preprocess.ComponentScores(r)
	return &Result{
		Score:           score,
		Category:        Categorize(score),
		HealthScore:     health,
		EducationScore:  education,
		HousingScore:    housing,
		Recommendations: Recommendations(r),
		Record:          r,
	}, nil
}

// Categorize maps a score to its band.
func Categorize(score float64) string {
	switch {
	case score >= 80:
		return CategoryExcellent
	case score >= 60:
		return CategoryGood
	case score >= 40:
		return CategoryFair
	default:
		return CategoryNeedsImprovement
	}
}

// Recommendations is the static rule table: each entry fires when the
// matching input falls below its threshold.
func Recommendations(r *preprocess.Record) []string {
	health, education, housing := preprocess.ComponentScores(r)

	recs := []string{}
	if health < 70 {
		recs = append(recs, "Consider living closer to health facilities or getting health insurance")
	}
	if education < 70 {
		recs = append(recs, "Invest in further education or skills training")
	}
	if housing < 70 {
		recs = append(recs, "Work towards improving housing quality and utilities")
	}
	if r.MonthlyIncomeTZS < 500_000 {
		recs = append(recs, "Explore income growth opportunities")
	}
	if !r.AccessToCleanWater {
		recs = append(recs, "Prioritize access to clean water")
	}
	if !r.ElectricityAccess {
		recs = append(recs, "Access to electricity improves quality of life")
	}
	return recs
}
