package nutrition

import "math"

// Base goal deltas in kcal/day. The adjuster proposes, it never enforces:
// final safety clamping is ApplyGuardrails' exclusive responsibility, so these
// values may be aggressive.
const (
	cutDeltaKcal  = -500
	bulkDeltaKcal = 300

	// heavyTrainingDailyKcal marks a daily training expenditure above which a
	// cutting delta is softened to protect recovery.
	heavyTrainingDailyKcal = 500
	heavyTrainingCutRelief = 100
)

// AdjustForGoal shifts a TDEE toward a caloric target consistent with the
// user's goal, informed by the estimated weekly training expenditure.
//
// TDEE already includes the activity factor, so training calories are never
// added to the target directly; they only modulate the goal delta and are
// reported for the audit trail.
func AdjustForGoal(in AdjustInputs) Adjustment {
	dailyTraining := int(math.Round(float64(in.WeeklyTrainingKcal) / 7))

	var delta int
	switch in.Goal {
	case GoalCut:
		delta = cutDeltaKcal
		if dailyTraining > heavyTrainingDailyKcal {
			delta += heavyTrainingCutRelief
		}
	case GoalBulk:
		delta = bulkDeltaKcal
	default:
		// Maintain, or an unknown tag: no shift.
		delta = 0
	}

	return Adjustment{
		Goal:               in.Goal,
		WeeklyTrainingKcal: in.WeeklyTrainingKcal,
		DailyTrainingKcal:  dailyTraining,
		GoalDeltaKcal:      delta,
		TargetKcal:         in.TDEEKcal + delta,
	}
}
