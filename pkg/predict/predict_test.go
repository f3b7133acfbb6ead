package predict

import (
	"errors"
	"testing"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/trainer"
)

// newTestPredictor trains a small bundle into a temp dir and loads it back.
func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()
	dir := t.TempDir()
	table := dataset.Generate(2000, 42)
	cfg := trainer.DefaultConfig()
	cfg.Epochs = 100
	if _, err := trainer.TrainAndSave(table, cfg, dir); err != nil {
		t.Fatalf("train: %v", err)
	}
	p, err := New(dir)
	if err != nil {
		t.Fatalf("load predictor: %v", err)
	}
	return p
}

func worstRecord() *preprocess.Record {
	return &preprocess.Record{
		Age: 18, Region: "Mara", UrbanRural: "Rural",
		EducationLevel: "No Education", EmploymentStatus: "Unemployed",
		MonthlyIncomeTZS: 0, FamilySize: 12,
		DistanceToHospitalKm: 180, DistanceToSchoolKm: 90,
		YearsOfEducation: 0, NumberOfRooms: 1,
		HousingType: "Mud/Grass",
	}
}

func bestRecord() *preprocess.Record {
	return &preprocess.Record{
		Age: 35, Region: "Dar es Salaam", UrbanRural: "Urban",
		EducationLevel: "Degree", EmploymentStatus: "Formal Employment",
		MonthlyIncomeTZS: 5_000_000, FamilySize: 3,
		DistanceToHospitalKm: 2, DistanceToSchoolKm: 1,
		YearsOfEducation: 17, NumberOfRooms: 6,
		HousingType: "Cement/Concrete", AccessToCleanWater: true,
		HealthInsurance: true, ElectricityAccess: true,
	}
}

func TestPredictScoreIsBounded(t *testing.T) {
	p := newTestPredictor(t)
	for _, r := range []*preprocess.Record{worstRecord(), bestRecord()} {
		res, err := p.Predict(r)
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("score out of [0,100]: %v", res.Score)
		}
	}
}

func TestWorstRecordNeedsImprovement(t *testing.T) {
	p := newTestPredictor(t)
	res, err := p.Predict(worstRecord())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Category != CategoryNeedsImprovement {
		t.Fatalf("expected %q for the worst record, got %q (score %v)",
			CategoryNeedsImprovement, res.Category, res.Score)
	}
	if len(res.Recommendations) == 0 {
		t.Fatal("worst record should produce recommendations")
	}
}

func TestBestRecordScoresWell(t *testing.T) {
	p := newTestPredictor(t)
	res, err := p.Predict(bestRecord())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Category != CategoryExcellent && res.Category != CategoryGood {
		t.Fatalf("expected Excellent or Good for the best record, got %q (score %v)",
			res.Category, res.Score)
	}
}

func TestUnknownRegionIsRejected(t *testing.T) {
	p := newTestPredictor(t)
	r := bestRecord()
	r.Region = "Zanzibar"

	_, err := p.Predict(r)
	var unknown *preprocess.UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
	if unknown.Field != "region" || unknown.Value != "Zanzibar" {
		t.Fatalf("error should carry field and value, got %+v", unknown)
	}
}

func TestCategorizeIsMonotonic(t *testing.T) {
	rank := map[string]int{
		CategoryNeedsImprovement: 0,
		CategoryFair:             1,
		CategoryGood:             2,
		CategoryExcellent:        3,
	}
	prev := -1
	for score := 0.0; score <= 100; score += 0.5 {
		r := rank[Categorize(score)]
		if r < prev {
			t.Fatalf("category got worse as the score rose at %v", score)
		}
		prev = r
	}
	if Categorize(80) != CategoryExcellent || Categorize(79.9) != CategoryGood {
		t.Fatal("Excellent threshold is not 80")
	}
	if Categorize(60) != CategoryGood || Categorize(59.9) != CategoryFair {
		t.Fatal("Good threshold is not 60")
	}
	if Categorize(40) != CategoryFair || Categorize(39.9) != CategoryNeedsImprovement {
		t.Fatal("Fair threshold is not 40")
	}
}

func TestRecommendationRules(t *testing.T) {
	recs := Recommendations(worstRecord())
	if len(recs) != 6 {
		t.Fatalf("worst record should trigger all six rules, got %d: %v", len(recs), recs)
	}
	if got := Recommendations(bestRecord()); len(got) != 0 {
		t.Fatalf("best record should trigger no rules, got %v", got)
	}
}

func TestMissingArtifactsFailLoudly(t *testing.T) {
	if _, err := New(t.TempDir()); err == nil {
		t.Fatal("expected error when artifacts are missing")
	}
}
