package preprocess

import (
	"errors"
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{
			Age: 30, Region: "Arusha", UrbanRural: "Urban",
			EducationLevel: "Secondary", EmploymentStatus: "Formal Employment",
			MonthlyIncomeTZS: 900_000, FamilySize: 4,
			DistanceToHospitalKm: 3, DistanceToSchoolKm: 1,
			YearsOfEducation: 11, NumberOfRooms: 3,
			HousingType: "Burnt Bricks", AccessToCleanWater: true,
			HealthInsurance: true, ElectricityAccess: true,
		},
		{
			Age: 55, Region: "Mara", UrbanRural: "Rural",
			EducationLevel: "No Education", EmploymentStatus: "Unemployed",
			MonthlyIncomeTZS: 50_000, FamilySize: 7,
			DistanceToHospitalKm: 40, DistanceToSchoolKm: 12,
			YearsOfEducation: 0, NumberOfRooms: 1,
			HousingType: "Mud/Grass",
		},
	}
}

func TestEncoderRejectsUnknownCategory(t *testing.T) {
	enc := FitEncoder("region", []string{"Arusha", "Mara"})

	if _, err := enc.Transform("Arusha"); err != nil {
		t.Fatalf("unexpected error for known category: %v", err)
	}

	_, err := enc.Transform("Zanzibar")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	var unknown *UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %T", err)
	}
	if unknown.Field != "region" || unknown.Value != "Zanzibar" {
		t.Fatalf("error should identify field and value, got %+v", unknown)
	}
}

func TestFitEncodersIsDeterministic(t *testing.T) {
	records := sampleRecords()
	a := FitEncoders(records)
	b := FitEncoders(records)

	for _, field := range CategoricalFields {
		if !reflect.DeepEqual(a[field].Mapping, b[field].Mapping) {
			t.Fatalf("field %s: refit produced a different mapping", field)
		}
	}
	// reversed input order must not change the codes either
	reversed := []Record{records[1], records[0]}
	c := FitEncoders(reversed)
	for _, field := range CategoricalFields {
		if !reflect.DeepEqual(a[field].Mapping, c[field].Mapping) {
			t.Fatalf("field %s: mapping depends on record order", field)
		}
	}
}

func TestFeaturesIsDeterministic(t *testing.T) {
	records := sampleRecords()
	encoders := FitEncoders(records)

	x1, err := Features(&records[0], encoders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x2, err := Features(&records[0], encoders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(x1, x2) {
		t.Fatal("same record produced different feature vectors")
	}
	if len(x1) != len(FeatureNames) {
		t.Fatalf("expected %d features, got %d", len(FeatureNames), len(x1))
	}
}

func TestFeaturesFailsOnUnknownRegion(t *testing.T) {
	records := sampleRecords()
	encoders := FitEncoders(records)

	bad := records[0]
	bad.Region = "Unguja"
	_, err := Features(&bad, encoders)
	var unknown *UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
	if unknown.Field != "region" {
		t.Fatalf("expected the region field to be named, got %q", unknown.Field)
	}
}

func TestComponentScores(t *testing.T) {
	r := sampleRecords()[0]
	health, education, housing := ComponentScores(&r)
	// hospital<5 (+20), water (+15), insurance (+15)
	if health != 100 {
		t.Fatalf("health: expected 100, got %v", health)
	}
	// 50 + 11*2 + 10 (school<3)
	if education != 82 {
		t.Fatalf("education: expected 82, got %v", education)
	}
	// burnt bricks 85 + electricity 10
	if housing != 95 {
		t.Fatalf("housing: expected 95, got %v", housing)
	}

	worst := sampleRecords()[1]
	h2, e2, ho2 := ComponentScores(&worst)
	if h2 != 50 || e2 != 50 || ho2 != 50 {
		t.Fatalf("worst record: expected 50/50/50, got %v/%v/%v", h2, e2, ho2)
	}
}

func TestScalerRefitIsIdentical(t *testing.T) {
	X := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}

	a := NewStandardScaler()
	if err := a.Fit(X); err != nil {
		t.Fatalf("fit: %v", err)
	}
	b := NewStandardScaler()
	if err := b.Fit(X); err != nil {
		t.Fatalf("refit: %v", err)
	}
	if !reflect.DeepEqual(a.Mean, b.Mean) || !reflect.DeepEqual(a.Std, b.Std) {
		t.Fatal("refitting on the same data produced different parameters")
	}
}

func TestScalerTransformUsesStoredParameters(t *testing.T) {
	s := NewStandardScaler()
	if err := s.Fit([][]float64{{0}, {10}}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	// mean 5, std 5
	got := s.TransformRow([]float64{5})
	if got[0] != 0 {
		t.Fatalf("expected 0, got %v", got[0])
	}
	got = s.TransformRow([]float64{10})
	if got[0] != 1 {
		t.Fatalf("expected 1, got %v", got[0])
	}

	// rows of Transform match TransformRow
	m := s.Transform([][]float64{{10}})
	if m[0][0] != 1 {
		t.Fatalf("Transform and TransformRow disagree: %v", m[0][0])
	}
}

func TestScalerZeroVarianceColumn(t *testing.T) {
	s := NewStandardScaler()
	if err := s.Fit([][]float64{{7}, {7}, {7}}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if s.Std[0] != 1 {
		t.Fatalf("zero-variance column should get std 1, got %v", s.Std[0])
	}
	if got := s.TransformRow([]float64{7})[0]; got != 0 {
		t.Fatalf("constant column should center to 0, got %v", got)
	}
}
