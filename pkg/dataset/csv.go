package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

// header is the column order of the dataset file.
var header = []string{
	"age",
	"region",
	"urban_rural",
	"education_level",
	"employment_status",
	"monthly_income_tzs",
	"family_size",
	"distance_to_hospital_km",
	"distance_to_school_km",
	"access_to_clean_water",
	"electricity_access",
	"housing_type",
	"years_of_education",
	"number_of_rooms",
	"health_insurance",
	"quality_of_life_score",
}

// WriteCSV writes the table to path with a header row.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range t.Records {
		r := &t.Records[i]
		row := []string{
			ftoa(r.Age),
			r.Region,
			r.UrbanRural,
			r.EducationLevel,
			r.EmploymentStatus,
			ftoa(r.MonthlyIncomeTZS),
			ftoa(r.FamilySize),
			ftoa(r.DistanceToHospitalKm),
			ftoa(r.DistanceToSchoolKm),
			yesNo(r.AccessToCleanWater),
			yesNo(r.ElectricityAccess),
			r.HousingType,
			ftoa(r.YearsOfEducation),
			ftoa(r.NumberOfRooms),
			yesNo(r.HealthInsurance),
			ftoa(t.Scores[i]),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a dataset file written by WriteCSV.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset file %s has no data rows", path)
	}
	if len(rows[0]) != len(header) {
		return nil, fmt.Errorf("dataset file %s: expected %d columns, got %d", path, len(header), len(rows[0]))
	}

	t := &Table{
		Records: make([]preprocess.Record, 0, len(rows)-1),
		Scores:  make([]float64, 0, len(rows)-1),
	}
	for i, row := range rows[1:] {
		r, score, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: %w", i+1, err)
		}
		t.Records = append(t.Records, r)
		t.Scores = append(t.Scores, score)
	}
	return t, nil
}

func parseRow(row []string) (preprocess.Record, float64, error) {
	var r preprocess.Record
	var err error
	fields := []struct {
		dst *float64
		col int
	}{
		{&r.Age, 0},
		{&r.MonthlyIncomeTZS, 5},
		{&r.FamilySize, 6},
		{&r.DistanceToHospitalKm, 7},
		{&r.DistanceToSchoolKm, 8},
		{&r.YearsOfEducation, 12},
		{&r.NumberOfRooms, 13},
	}
	for _, f := range fields {
		*f.dst, err = strconv.ParseFloat(row[f.col], 64)
		if err != nil {
			return r, 0, fmt.Errorf("column %s: %w", header[f.col], err)
		}
	}
	r.Region = row[1]
	r.UrbanRural = row[2]
	r.EducationLevel = row[3]
	r.EmploymentStatus = row[4]
	r.AccessToCleanWater = row[9] == "Yes"
	r.ElectricityAccess = row[10] == "Yes"
	r.HousingType = row[11]
	r.HealthInsurance = row[14] == "Yes"

	score, err := strconv.ParseFloat(row[15], 64)
	if err != nil {
		return r, 0, fmt.Errorf("column quality_of_life_score: %w", err)
	}
	return r, score, nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
