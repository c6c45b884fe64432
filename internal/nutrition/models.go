// Package nutrition derives caloric targets from energy expenditure and
// enforces safety guardrails on them.
//
// Every function in this package is pure: results are constructed fresh per
// call, never mutated after return, and identical inputs always produce
// identical outputs. The report and export surfaces recompute on demand and
// rely on that determinism.
package nutrition

// Goal is the user's stated dietary objective.
type Goal string

const (
	GoalCut      Goal = "cut"
	GoalMaintain Goal = "maintain"
	GoalBulk     Goal = "bulk"
)

// Valid reports whether g is one of the known goal tags.
func (g Goal) Valid() bool {
	switch g {
	case GoalCut, GoalMaintain, GoalBulk:
		return true
	}
	return false
}

// Warning codes emitted by the guardrail clamp.
const (
	CodeMissingInputs        = "MISSING_INPUTS"
	CodeLowKcalFloor         = "LOW_KCAL_FLOOR"
	CodeHighKcalCeil         = "HIGH_KCAL_CEIL"
	CodeDeficitTooAggressive = "DEFICIT_TOO_AGGRESSIVE"
	CodeSurplusTooHigh       = "SURPLUS_TOO_HIGH"
)

// Warning is a structured, human-readable note about an adjustment or a data
// gap. Warnings accumulate in order; the caller decides whether to surface
// them.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Macros is a daily macronutrient split in grams.
type Macros struct {
	ProteinG int `json:"proteinG"`
	CarbsG   int `json:"carbsG"`
	FatG     int `json:"fatG"`
}

// GuardrailInputs carries the proposed calorie target and the biometric
// fields used for confidence scoring. Pointer fields are optional; a nil
// value means the field is absent, which degrades confidence but never fails.
type GuardrailInputs struct {
	Sex      *string
	Age      *int
	WeightKg *float64
	HeightCm *float64
	TDEEKcal *int
	GoalKcal *int
	GoalType Goal
}

// GuardrailResult is the clamped calorie target with its audit trail.
// The Trace map is displayed to the end user as "why was my number adjusted",
// so its keys (tdee, proposed, floor, ceil, finalTarget, confidence) are a
// hard contract and must always be present and JSON-serializable.
type GuardrailResult struct {
	KcalTarget int                    `json:"kcalTarget"`
	Confidence float64                `json:"confidence"`
	Warnings   []Warning              `json:"warnings"`
	Trace      map[string]interface{} `json:"trace"`
}

// AdjustInputs feeds the goal adjuster.
type AdjustInputs struct {
	TDEEKcal int
	Goal     Goal

	// WeeklyTrainingKcal is the estimated calorie cost of the user's weekly
	// workout protocol. Zero when no protocol exists.
	WeeklyTrainingKcal int
}

// Adjustment is the goal adjuster's proposal. JSON keys match the plan
// documents already stored for existing users and must not be renamed.
type Adjustment struct {
	Goal               Goal `json:"goal"`
	WeeklyTrainingKcal int  `json:"treinoKcalSemanal"`
	DailyTrainingKcal  int  `json:"treinoKcalDiaMedio"`
	GoalDeltaKcal      int  `json:"deltaObjetivoKcal"`
	TargetKcal         int  `json:"caloriasAlvoFinal"`
}
