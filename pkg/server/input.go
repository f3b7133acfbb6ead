package server

import (
	"fmt"
	"strings"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

// Input is one form or JSON submission. Years of education are derived from
// the education level, as on the original form.
type Input struct {
	Age                  float64 `form:"age" json:"age"`
	Region               string  `form:"region" json:"region"`
	UrbanRural           string  `form:"urban_rural" json:"urban_rural"`
	EducationLevel       string  `form:"education_level" json:"education_level"`
	EmploymentStatus     string  `form:"employment_status" json:"employment_status"`
	MonthlyIncomeTZS     float64 `form:"monthly_income_tzs" json:"monthly_income_tzs"`
	FamilySize           float64 `form:"family_size" json:"family_size"`
	DistanceToHospitalKm float64 `form:"distance_to_hospital_km" json:"distance_to_hospital_km"`
	DistanceToSchoolKm   float64 `form:"distance_to_school_km" json:"distance_to_school_km"`
	NumberOfRooms        float64 `form:"number_of_rooms" json:"number_of_rooms"`
	HousingType          string  `form:"housing_type" json:"housing_type"`
	AccessToCleanWater   string  `form:"access_to_clean_water" json:"access_to_clean_water"`
	HealthInsurance      string  `form:"health_insurance" json:"health_insurance"`
	ElectricityAccess    string  `form:"electricity_access" json:"electricity_access"`
}

// numeric bounds accepted at the boundary, matching the original form's
// widget limits.
type bound struct {
	name    string
	value   float64
	lo, hi  float64
}

// Validate checks presence and numeric ranges and builds the Record. Range
// violations are rejected here, before the predictor is reached.
func (in *Input) Validate() (*preprocess.Record, error) {
	for _, f := range []struct{ name, value string }{
		{"region", in.Region},
		{"urban_rural", in.UrbanRural},
		{"education_level", in.EducationLevel},
		{"employment_status", in.EmploymentStatus},
		{"housing_type", in.HousingType},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("missing required field %q", f.name)
		}
	}

	for _, f := range []struct{ name, value string }{
		{"access_to_clean_water", in.AccessToCleanWater},
		{"health_insurance", in.HealthInsurance},
		{"electricity_access", in.ElectricityAccess},
	} {
		if f.value != "Yes" && f.value != "No" {
			return nil, fmt.Errorf("field %q must be \"Yes\" or \"No\", got %q", f.name, f.value)
		}
	}

	bounds := []bound{
		{"age", in.Age, 18, 100},
		{"monthly_income_tzs", in.MonthlyIncomeTZS, 0, 10_000_000},
		{"family_size", in.FamilySize, 1, 15},
		{"distance_to_hospital_km", in.DistanceToHospitalKm, 0, 200},
		{"distance_to_school_km", in.DistanceToSchoolKm, 0, 100},
		{"number_of_rooms", in.NumberOfRooms, 1, 15},
	}
	for _, b := range bounds {
		if b.value < b.lo || b.value > b.hi {
			return nil, fmt.Errorf("field %q out of range: %v (allowed %v to %v)", b.name, b.value, b.lo, b.hi)
		}
	}

	years, ok := preprocess.EducationYears[in.EducationLevel]
	if !ok {
		// Let the encoder produce the unrecognized-category error with
		// the proper field name.
		years = 0
	}

	return &preprocess.Record{
		Age:                  in.Age,
		Region:               in.Region,
		UrbanRural:           in.UrbanRural,
		EducationLevel:       in.EducationLevel,
		EmploymentStatus:     in.EmploymentStatus,
		MonthlyIncomeTZS:     in.MonthlyIncomeTZS,
		FamilySize:           in.FamilySize,
		DistanceToHospitalKm: in.DistanceToHospitalKm,
		DistanceToSchoolKm:   in.DistanceToSchoolKm,
		YearsOfEducation:     years,
		NumberOfRooms:        in.NumberOfRooms,
		HousingType:          in.HousingType,
		AccessToCleanWater:   in.AccessToCleanWater == "Yes",
		HealthInsurance:      in.HealthInsurance == "Yes",
		ElectricityAccess:    in.ElectricityAccess == "Yes",
	}, nil
}

func (in *Input) cacheKey() string {
	return fmt.Sprintf("%v|%s|%s|%s|%s|%v|%v|%v|%v|%v|%s|%s|%s|%s",
		in.Age, in.Region, in.UrbanRural, in.EducationLevel, in.EmploymentStatus,
		in.MonthlyIncomeTZS, in.FamilySize, in.DistanceToHospitalKm, in.DistanceToSchoolKm,
		in.NumberOfRooms, in.HousingType, in.AccessToCleanWater, in.HealthInsurance,
		in.ElectricityAccess)
}
