package energy

import (
	"math"

	"github.com/nutriplan/nutriplan/internal/nutrition"
)

// Compute selects an equation and computes resting energy expenditure in
// kcal/day, rounded to the nearest integer.
//
// Unusable anthropometrics (age, weight, or height at or below zero)
// short-circuit to an invalid result with an INSUFFICIENT_DATA warning; a
// numeric REE is never produced from zero or negative body metrics.
func Compute(in Inputs) Result {
	if in.Age <= 0 || in.WeightKg <= 0 || in.HeightCm <= 0 {
		return Result{
			Valid: false,
			Warnings: []nutrition.Warning{{
				Code:    CodeInsufficientData,
				Message: "age, weight and height are required for energy computation",
			}},
		}
	}

	eq := SelectEquation(in)

	var ree float64
	var ffmUsed *float64

	switch eq {
	case EquationCunningham1980:
		ffm, _ := in.FatFreeMass()
		ree = 500 + 22*ffm
		ffmUsed = &ffm
	case EquationKatchMcArdle1996:
		// FFM defaults to 0 if composition data vanished between selection
		// and computation. The selector's branch order makes that a
		// never-happens case, but it must degrade, not crash.
		ffm, _ := in.FatFreeMass()
		ree = 370 + 21.6*ffm
		ffmUsed = &ffm
	case EquationMifflinStJeor:
		sexTerm := -161.0
		if in.Sex == SexMale {
			sexTerm = 5
		}
		ree = 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.Age) + sexTerm
	default:
		ree = 24 * in.WeightKg
	}

	return Result{
		Equation: eq,
		REEKcal:  int(math.Round(ree)),
		FFMKg:    ffmUsed,
		Valid:    true,
	}
}

// TDEE converts a resting expenditure into total daily energy expenditure by
// applying a training-level activity factor, rounded to whole kcal.
func TDEE(reeKcal int, activityFactor float64) int {
	return int(math.Round(float64(reeKcal) * activityFactor))
}
