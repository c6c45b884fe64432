// Package energy selects physiological energy equations and computes resting
// and total daily energy expenditure from validated biometric inputs.
//
// All functions are pure and deterministic; callers own the inputs for the
// duration of one synchronous call and results are constructed fresh.
package energy

import "github.com/nutriplan/nutriplan/internal/nutrition"

// Sex is the biological sex used by sex-dependent equations.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the nutrition-context activity classification used for
// equation selection. It is not the training experience level that drives the
// TDEE activity factor; keep the two apart.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
	ActivityAthlete   ActivityLevel = "athlete"
)

// EquationID tags which energy equation produced a result. Recorded once per
// computation for audit and report rendering.
type EquationID string

const (
	EquationCunningham1980   EquationID = "CUNNINGHAM_1980"
	EquationKatchMcArdle1996 EquationID = "KATCH_MCARDLE_1996"
	EquationMifflinStJeor    EquationID = "MIFFLIN_ST_JEOR_1990"
	EquationFAOWHOUNU2004    EquationID = "FAO_WHO_UNU_2004"
)

// Warning code emitted when anthropometrics are unusable.
const CodeInsufficientData = "INSUFFICIENT_DATA"

// Inputs is a snapshot of the biometric and activity data needed for
// equation selection and REE computation. Optional fields are pointers; nil
// means unknown.
type Inputs struct {
	Sex            Sex
	Age            int
	WeightKg       float64
	HeightCm       float64
	BodyFatPercent *float64
	FatFreeMassKg  *float64
	ActivityLevel  ActivityLevel
	IsAthlete      bool
}

// FatFreeMass returns the fat-free mass in kg, deriving it from body-fat
// percent when not supplied directly. The second return is false when no
// body-composition data is available.
func (in Inputs) FatFreeMass() (float64, bool) {
	if in.FatFreeMassKg != nil {
		return *in.FatFreeMassKg, true
	}
	if in.BodyFatPercent != nil {
		return in.WeightKg * (1 - *in.BodyFatPercent/100), true
	}
	return 0, false
}

// BMI returns the body mass index, or 0 when height is unusable.
func (in Inputs) BMI() float64 {
	if in.HeightCm <= 0 {
		return 0
	}
	heightM := in.HeightCm / 100
	return in.WeightKg / (heightM * heightM)
}

// Result is one REE computation with its audit fields.
type Result struct {
	// Equation is the formula that produced REEKcal. Empty when Valid is
	// false.
	Equation EquationID `json:"equation"`

	// REEKcal is the resting energy expenditure, rounded to whole kcal.
	REEKcal int `json:"reeKcal"`

	// FFMKg is the fat-free mass used, when one was available.
	FFMKg *float64 `json:"ffmKg,omitempty"`

	// Valid is false when the inputs could not support a numeric result.
	// Never compute on zero or negative body metrics.
	Valid bool `json:"valid"`

	Warnings []nutrition.Warning `json:"warnings,omitempty"`
}
