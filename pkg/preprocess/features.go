package preprocess

// FeatureNames is the fixed column order of the design matrix. Encoders and
// scaler parameters are aligned with this order, so it must never change
// between training and inference.
var FeatureNames = []string{
	"age",
	"monthly_income_tzs",
	"family_size",
	"distance_to_hospital_km",
	"distance_to_school_km",
	"years_of_education",
	"number_of_rooms",
	"region",
	"urban_rural",
	"education_level",
	"employment_status",
	"housing_type",
	"access_to_clean_water",
	"health_insurance",
	"electricity_access",
	"health_score",
	"education_score",
	"housing_score",
}

// housingQuality rates housing material on a 0-100 scale.
var housingQuality = map[string]float64{
	"Mud/Grass":       50,
	"Unburnt Bricks":  70,
	"Burnt Bricks":    85,
	"Cement/Concrete": 100,
}

// ComponentScores derives the health, education and housing sub-scores for
// a record. They feed the model as features and are echoed back to the user
// as the score breakdown.
func ComponentScores(r *Record) (health, education, housing float64) {
	health = 50
	if r.DistanceToHospitalKm < 5 {
		health += 20
	} else if r.DistanceToHospitalKm < 15 {
		health += 10
	}
	if r.AccessToCleanWater {
		health += 15
	}
	if r.HealthInsurance {
		health += 15
	}

	education = 50 + r.YearsOfEducation*2
	if r.DistanceToSchoolKm < 3 {
		education += 10
	} else if r.DistanceToSchoolKm < 10 {
		education += 2
	}

	housing = 50
	if q, ok := housingQuality[r.HousingType]; ok {
		housing = q
	}
	if r.ElectricityAccess {
		housing += 10
	}

	return min(health, 100), min(education, 100), min(housing, 100)
}

// Features encodes one record into a feature vector in FeatureNames order.
// Fails if any categorical value is missing from its encoder's vocabulary.
func Features(r *Record, encoders map[string]*LabelEncoder) ([]float64, error) {
	codes := make(map[string]float64, len(CategoricalFields))
	for _, field := range CategoricalFields {
		enc, ok := encoders[field]
		if !ok {
			return nil, &UnknownCategoryError{Field: field, Value: r.Categorical(field)}
		}
		code, err := enc.Transform(r.Categorical(field))
		if err != nil {
			return nil, err
		}
		codes[field] = float64(code)
	}
	health, education, housing := ComponentScores(r)

	return []float64{
		r.Age,
		r.MonthlyIncomeTZS,
		r.FamilySize,
		r.DistanceToHospitalKm,
		r.DistanceToSchoolKm,
		r.YearsOfEducation,
		r.NumberOfRooms,
		codes["region"],
		codes["urban_rural"],
		codes["education_level"],
		codes["employment_status"],
		codes["housing_type"],
		boolToFloat(r.AccessToCleanWater),
		boolToFloat(r.HealthInsurance),
		boolToFloat(r.ElectricityAccess),
		health,
		education,
		housing,
	}, nil
}

// Matrix encodes a slice of records into a design matrix.
func Matrix(records []Record, encoders map[string]*LabelEncoder) ([][]float64, error) {
	X := make([][]float64, len(records))
	for i := range records {
		x, err := Features(&records[i], encoders)
		if err != nil {
			return nil, err
		}
		X[i] = x
	}
	return X, nil
}
