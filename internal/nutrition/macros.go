package nutrition

import "math"

// Macro split constants. Protein scales with body weight and goal, fat is a
// fixed share of the calorie target, carbohydrates take the remainder.
const (
	proteinPerKgCut      = 2.2
	proteinPerKgMaintain = 1.8
	proteinPerKgBulk     = 2.0

	fatKcalShare = 0.25

	// proteinKcalShareFallback is used when body weight is unknown and a
	// g/kg prescription cannot be computed.
	proteinKcalShareFallback = 0.30

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// SplitMacros derives a daily macronutrient split from a clamped calorie
// target. The split always sums to at most the target; carbs absorb the
// rounding slack and never go negative.
func SplitMacros(kcalTarget int, weightKg float64, goal Goal) Macros {
	if kcalTarget <= 0 {
		return Macros{}
	}

	var proteinG float64
	if weightKg > 0 {
		proteinG = weightKg * proteinPerKg(goal)
	} else {
		proteinG = float64(kcalTarget) * proteinKcalShareFallback / kcalPerGramProtein
	}

	fatG := float64(kcalTarget) * fatKcalShare / kcalPerGramFat

	remainder := float64(kcalTarget) - proteinG*kcalPerGramProtein - fatG*kcalPerGramFat
	carbsG := remainder / kcalPerGramCarbs
	if carbsG < 0 {
		carbsG = 0
	}

	return Macros{
		ProteinG: int(math.Round(proteinG)),
		CarbsG:   int(math.Round(carbsG)),
		FatG:     int(math.Round(fatG)),
	}
}

func proteinPerKg(goal Goal) float64 {
	switch goal {
	case GoalCut:
		return proteinPerKgCut
	case GoalBulk:
		return proteinPerKgBulk
	default:
		return proteinPerKgMaintain
	}
}
