package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriplan/nutriplan/internal/nutrition"
)

func TestAdjustForGoal(t *testing.T) {
	tests := []struct {
		name       string
		in         nutrition.AdjustInputs
		wantDelta  int
		wantTarget int
	}{
		{
			name:       "cut proposes 500 deficit",
			in:         nutrition.AdjustInputs{TDEEKcal: 2800, Goal: nutrition.GoalCut},
			wantDelta:  -500,
			wantTarget: 2300,
		},
		{
			name:       "maintain proposes no shift",
			in:         nutrition.AdjustInputs{TDEEKcal: 2800, Goal: nutrition.GoalMaintain},
			wantDelta:  0,
			wantTarget: 2800,
		},
		{
			name:       "bulk proposes 300 surplus",
			in:         nutrition.AdjustInputs{TDEEKcal: 2800, Goal: nutrition.GoalBulk},
			wantDelta:  300,
			wantTarget: 3100,
		},
		{
			name: "heavy training softens a cut",
			in: nutrition.AdjustInputs{
				TDEEKcal: 3200, Goal: nutrition.GoalCut,
				WeeklyTrainingKcal: 4200, // 600/day
			},
			wantDelta:  -400,
			wantTarget: 2800,
		},
		{
			name: "moderate training does not soften a cut",
			in: nutrition.AdjustInputs{
				TDEEKcal: 2800, Goal: nutrition.GoalCut,
				WeeklyTrainingKcal: 2100, // 300/day
			},
			wantDelta:  -500,
			wantTarget: 2300,
		},
		{
			name:       "unknown goal behaves as maintain",
			in:         nutrition.AdjustInputs{TDEEKcal: 2500, Goal: nutrition.Goal("shred")},
			wantDelta:  0,
			wantTarget: 2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nutrition.AdjustForGoal(tt.in)
			assert.Equal(t, tt.wantDelta, got.GoalDeltaKcal)
			assert.Equal(t, tt.wantTarget, got.TargetKcal)
			assert.Equal(t, tt.in.Goal, got.Goal)
			assert.Equal(t, tt.in.WeeklyTrainingKcal, got.WeeklyTrainingKcal)
		})
	}
}

func TestAdjustForGoal_DailyTrainingAverage(t *testing.T) {
	got := nutrition.AdjustForGoal(nutrition.AdjustInputs{
		TDEEKcal: 2600, Goal: nutrition.GoalMaintain, WeeklyTrainingKcal: 1750,
	})
	assert.Equal(t, 250, got.DailyTrainingKcal)
}

func TestSplitMacros(t *testing.T) {
	// 80kg cut at 2200 kcal: protein 176g (704 kcal), fat 61g (550 kcal),
	// carbs take the remainder.
	m := nutrition.SplitMacros(2200, 80, nutrition.GoalCut)
	assert.Equal(t, 176, m.ProteinG)
	assert.Equal(t, 61, m.FatG)
	// Remainder 946 kcal -> 236.5g rounds half away from zero.
	assert.Equal(t, 237, m.CarbsG)
}

func TestSplitMacros_UnknownWeightFallsBackToShares(t *testing.T) {
	m := nutrition.SplitMacros(2000, 0, nutrition.GoalMaintain)
	// 30% of kcal as protein: 600/4 = 150g.
	assert.Equal(t, 150, m.ProteinG)
	assert.Equal(t, 56, m.FatG) // 500/9 = 55.6
}

func TestSplitMacros_NeverNegativeCarbs(t *testing.T) {
	// Tiny target with a heavy lifter: protein alone exceeds the budget.
	m := nutrition.SplitMacros(800, 120, nutrition.GoalBulk)
	assert.GreaterOrEqual(t, m.CarbsG, 0)
}

func TestSplitMacros_ZeroTarget(t *testing.T) {
	assert.Equal(t, nutrition.Macros{}, nutrition.SplitMacros(0, 80, nutrition.GoalCut))
}
