package preprocess

// Record is a single household observation, as collected by the web form
// or synthesized into the dataset.
type Record struct {
	Age                  float64
	Region               string
	UrbanRural           string
	EducationLevel       string
	EmploymentStatus     string
	MonthlyIncomeTZS     float64
	FamilySize           float64
	DistanceToHospitalKm float64
	DistanceToSchoolKm   float64
	YearsOfEducation     float64
	NumberOfRooms        float64
	HousingType          string
	AccessToCleanWater   bool
	HealthInsurance      bool
	ElectricityAccess    bool
}

// CategoricalFields lists every field that gets a label encoder, in the
// order they appear in the feature vector.
var CategoricalFields = []string{
	"region",
	"urban_rural",
	"education_level",
	"employment_status",
	"housing_type",
}

// Categorical returns the record's value for an encoded field name.
func (r *Record) Categorical(field string) string {
	switch field {
	case "region":
		return r.Region
	case "urban_rural":
		return r.UrbanRural
	case "education_level":
		return r.EducationLevel
	case "employment_status":
		return r.EmploymentStatus
	case "housing_type":
		return r.HousingType
	}
	return ""
}

// EducationYears maps an education level to its years of schooling.
var EducationYears = map[string]float64{
	"No Education": 0,
	"Primary":      7,
	"Secondary":    11,
	"Certificate":  13,
	"Diploma":      15,
	"Degree":       17,
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
