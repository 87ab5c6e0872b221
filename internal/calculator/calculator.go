// Package calculator derives body-mass index and daily calorie needs from
// body metrics. All functions are total: unrecognized inputs fall back to
// documented defaults instead of failing.
package calculator

// Gender selects the Mifflin-St Jeor constant. Only Male is distinguished;
// every other value uses the female constant.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ActivityLevel scales basal metabolic rate into daily calorie needs
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightlyActive    ActivityLevel = "Lightly active"
	ModeratelyActive ActivityLevel = "Moderately active"
	VeryActive       ActivityLevel = "Very active"
	ExtraActive      ActivityLevel = "Extra active"
)

// ActivityLevels lists the recognized levels from least to most active
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive}

// Multiplier returns the activity factor; unrecognized levels count as Sedentary
func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case LightlyActive:
		return 1.375
	case ModeratelyActive:
		return 1.55
	case VeryActive:
		return 1.725
	case ExtraActive:
		return 1.9
	default:
		return 1.2
	}
}

// Metrics are the body measurements a calculation needs
type Metrics struct {
	WeightKg float64
	HeightCm float64
	Age      float64
	Gender   Gender
	Activity ActivityLevel
}

// Result holds the derived values
type Result struct {
	BMI          float64
	BMR          float64
	CalorieNeeds float64
}

// Calculate returns BMI, BMR and calorie needs for m
func Calculate(m Metrics) Result {
	bmr := BMR(m)
	return Result{
		BMI:          BMI(m.WeightKg, m.HeightCm),
		BMR:          bmr,
		CalorieNeeds: bmr * m.Activity.Multiplier(),
	}
}

// BMI is weight divided by height in meters squared
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMR uses the Mifflin-St Jeor equation
func BMR(m Metrics) float64 {
	base := 10*m.WeightKg + 6.25*m.HeightCm - 5*m.Age
	if m.Gender == Male {
		return base + 5
	}
	return base - 161
}

// BMICategory returns the WHO adult weight category for bmi
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
