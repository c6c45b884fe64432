package nutrition

import "math"

// Guardrail bounds. Absolute bounds protect against medically unsafe targets;
// relative bounds cap how far a target may drift from measured expenditure.
const (
	// FloorKcal is the absolute minimum daily target.
	FloorKcal = 1200

	// CeilKcal is the absolute maximum daily target.
	CeilKcal = 6000

	// MaxDeficitKcal is the largest allowed deficit below TDEE.
	MaxDeficitKcal = 1000

	// MaxSurplusKcal is the largest allowed surplus above TDEE.
	MaxSurplusKcal = 800
)

// Confidence scoring constants.
const (
	baseConfidence        = 0.85
	missingFieldPenalty   = 0.05
	minConfidence         = 0.2
	maxConfidence         = 0.95
	shortCircuitConfidence = 0.25
)

// ApplyGuardrails bounds a proposed calorie target within safe absolute and
// relative limits and reports why any adjustment occurred.
//
// The checks run in a fixed order and each evaluates against the running
// target, not the original proposal, so a single input can legitimately
// trigger both the floor and the deficit cap. There is no error path: every
// input configuration yields a usable, possibly low-confidence result.
func ApplyGuardrails(in GuardrailInputs) GuardrailResult {
	trace := map[string]interface{}{
		"floor": FloorKcal,
		"ceil":  CeilKcal,
	}

	// Without both expenditure and a goal there is nothing to clamp against.
	if in.TDEEKcal == nil || in.GoalKcal == nil {
		proposed := 0
		if in.GoalKcal != nil {
			proposed = *in.GoalKcal
		} else if in.TDEEKcal != nil {
			proposed = *in.TDEEKcal
		}
		trace["tdee"] = intOrNil(in.TDEEKcal)
		trace["proposed"] = proposed
		trace["finalTarget"] = proposed
		trace["confidence"] = shortCircuitConfidence
		return GuardrailResult{
			KcalTarget: proposed,
			Confidence: shortCircuitConfidence,
			Warnings: []Warning{{
				Code:    CodeMissingInputs,
				Message: "energy expenditure or goal calories missing; target not validated",
			}},
			Trace: trace,
		}
	}

	tdee := *in.TDEEKcal
	proposed := *in.GoalKcal
	target := float64(proposed)

	var warnings []Warning

	if target < FloorKcal {
		target = FloorKcal
		warnings = append(warnings, Warning{
			Code:    CodeLowKcalFloor,
			Message: "target raised to the 1200 kcal safety floor",
		})
	}

	if target > CeilKcal {
		target = CeilKcal
		warnings = append(warnings, Warning{
			Code:    CodeHighKcalCeil,
			Message: "target lowered to the 6000 kcal safety ceiling",
		})
	}

	if deficit := float64(tdee) - target; deficit > MaxDeficitKcal {
		target = float64(tdee - MaxDeficitKcal)
		warnings = append(warnings, Warning{
			Code:    CodeDeficitTooAggressive,
			Message: "deficit capped at 1000 kcal below daily expenditure",
		})
	}

	if surplus := target - float64(tdee); surplus > MaxSurplusKcal {
		target = float64(tdee + MaxSurplusKcal)
		warnings = append(warnings, Warning{
			Code:    CodeSurplusTooHigh,
			Message: "surplus capped at 800 kcal above daily expenditure",
		})
	}

	confidence := baseConfidence
	if in.Sex == nil {
		confidence -= missingFieldPenalty
	}
	if in.Age == nil {
		confidence -= missingFieldPenalty
	}
	if in.WeightKg == nil {
		confidence -= missingFieldPenalty
	}
	if in.HeightCm == nil {
		confidence -= missingFieldPenalty
	}
	confidence = clamp(confidence, minConfidence, maxConfidence)

	final := int(math.Round(target))

	trace["tdee"] = tdee
	trace["proposed"] = proposed
	trace["finalTarget"] = final
	trace["confidence"] = confidence

	return GuardrailResult{
		KcalTarget: final,
		Confidence: confidence,
		Warnings:   warnings,
		Trace:      trace,
	}
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

// intOrNil keeps the trace JSON-friendly: a typed nil pointer would encode
// as null anyway, but an untyped nil is clearer to downstream renderers.
func intOrNil(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
