package dataset

import (
	"math/rand"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

// Table is the labeled dataset: one record per row plus its target score.
type Table struct {
	Records []preprocess.Record
	Scores  []float64
}

// Regions is the training vocabulary for the region field.
var Regions = []string{
	"Dar es Salaam", "Arusha", "Mwanza", "Dodoma", "Mbeya",
	"Morogoro", "Tanga", "Kagera", "Shinyanga", "Mara",
}

var educationLevels = []string{
	"No Education", "Primary", "Secondary", "Certificate", "Diploma", "Degree",
}

var employmentStatuses = []string{
	"Unemployed", "Informal Employment", "Formal Employment", "Self Employed", "Student",
}

var housingTypes = []string{
	"Mud/Grass", "Unburnt Bricks", "Burnt Bricks", "Cement/Concrete",
}

// weighted draws an index from cumulative weights summing to 1.
func weighted(rnd *rand.Rand, weights []float64) int {
	r := rnd.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

// monthly income in TZS by employment status: base and spread of a
// truncated normal draw.
var incomeParams = map[string][2]float64{
	"Unemployed":          {80_000, 60_000},
	"Informal Employment": {250_000, 150_000},
	"Formal Employment":   {900_000, 500_000},
	"Self Employed":       {500_000, 400_000},
	"Student":             {100_000, 80_000},
}

// Generate synthesizes n labeled records. The same seed always produces the
// same table.
func Generate(n int, seed int64) *Table {
	rnd := rand.New(rand.NewSource(seed))
	t := &Table{
		Records: make([]preprocess.Record, n),
		Scores:  make([]float64, n),
	}

	for i := 0; i < n; i++ {
		r := preprocess.Record{}

		r.Region = Regions[weighted(rnd, []float64{0.20, 0.10, 0.12, 0.10, 0.09, 0.09, 0.08, 0.08, 0.07, 0.07})]
		urban := rnd.Float64() < 0.35
		if urban {
			r.UrbanRural = "Urban"
		} else {
			r.UrbanRural = "Rural"
		}

		r.Age = float64(18 + rnd.Intn(63))
		r.FamilySize = float64(1 + rnd.Intn(9))
		r.NumberOfRooms = float64(1 + rnd.Intn(6))

		r.EducationLevel = educationLevels[weighted(rnd, []float64{0.12, 0.38, 0.28, 0.08, 0.08, 0.06})]
		r.YearsOfEducation = preprocess.EducationYears[r.EducationLevel]
		r.EmploymentStatus = employmentStatuses[weighted(rnd, []float64{0.15, 0.35, 0.20, 0.22, 0.08})]

		params := incomeParams[r.EmploymentStatus]
		income := params[0] + rnd.NormFloat64()*params[1]
		// education lifts earnings
		income *= 1 + r.YearsOfEducation/20
		if urban {
			income *= 1.3
		}
		r.MonthlyIncomeTZS = clamp(income, 0, 10_000_000)

		if urban {
			r.DistanceToHospitalKm = round1(rnd.Float64() * 10)
			r.DistanceToSchoolKm = round1(rnd.Float64() * 5)
			r.AccessToCleanWater = rnd.Float64() < 0.85
			r.ElectricityAccess = rnd.Float64() < 0.80
			r.HousingType = housingTypes[weighted(rnd, []float64{0.05, 0.15, 0.35, 0.45})]
		} else {
			r.DistanceToHospitalKm = round1(rnd.Float64() * 60)
			r.DistanceToSchoolKm = round1(rnd.Float64() * 20)
			r.AccessToCleanWater = rnd.Float64() < 0.45
			r.ElectricityAccess = rnd.Float64() < 0.35
			r.HousingType = housingTypes[weighted(rnd, []float64{0.35, 0.35, 0.22, 0.08})]
		}
		r.HealthInsurance = rnd.Float64() < 0.30

		health, education, housing := preprocess.ComponentScores(&r)
		incomeScore := clamp(r.MonthlyIncomeTZS/20_000, 0, 100)
		score := 0.20*health + 0.20*education + 0.20*housing + 0.40*incomeScore
		score += rnd.NormFloat64() * 5

		t.Records[i] = r
		t.Scores[i] = clamp(score, 0, 100)
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
