package training_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/training"
)

func intPtr(v int) *int { return &v }

func TestAssessLoad_RiskTiers(t *testing.T) {
	tests := []struct {
		name string
		in   training.LoadInputs
		want training.Risk
	}{
		{
			// 4 * 6 * (240/4) / 60 = 24
			name: "moderate volume stays low",
			in:   training.LoadInputs{Sessions: 4, AvgRPE: 6, Minutes: 240},
			want: training.RiskLow,
		},
		{
			// 5 * 7 * (300/5) / 60 = 35
			name: "sustained effort is moderate",
			in:   training.LoadInputs{Sessions: 5, AvgRPE: 7, Minutes: 300},
			want: training.RiskModerate,
		},
		{
			// 6 * 8.5 * (420/6) / 60 = 59.5
			name: "heavy week is high",
			in:   training.LoadInputs{Sessions: 6, AvgRPE: 8.5, Minutes: 420},
			want: training.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := training.AssessLoad(tt.in)
			assert.Equal(t, tt.want, got.Risk)
			assert.Empty(t, got.Warnings)
		})
	}
}

func TestAssessLoad_MissingDataStillClassifies(t *testing.T) {
	got := training.AssessLoad(training.LoadInputs{Sessions: 3})

	assert.Equal(t, training.RiskLow, got.Risk)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, training.CodeLowRecoveryData, got.Warnings[0].Code)
	assert.Equal(t, false, got.Trace["complete"])
}

func TestAssessLoad_OverreachingWarning(t *testing.T) {
	got := training.AssessLoad(training.LoadInputs{
		Sessions: 5, AvgRPE: 7, Minutes: 300, // moderate
		SorenessScore: intPtr(8),
	})

	assert.Equal(t, training.RiskModerate, got.Risk)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, training.CodeOverreaching, got.Warnings[0].Code)
}

func TestAssessLoad_OvertrainingNeedsHighRisk(t *testing.T) {
	// Poor sleep on a moderate week is not flagged.
	moderate := training.AssessLoad(training.LoadInputs{
		Sessions: 5, AvgRPE: 7, Minutes: 300,
		SleepScore: intPtr(3),
	})
	assert.Empty(t, moderate.Warnings)

	high := training.AssessLoad(training.LoadInputs{
		Sessions: 6, AvgRPE: 8.5, Minutes: 420,
		SleepScore: intPtr(3),
	})
	assert.Equal(t, training.RiskHigh, high.Risk)
	require.Len(t, high.Warnings, 1)
	assert.Equal(t, training.CodeOvertrainingRisk, high.Warnings[0].Code)
}

func TestAssessLoad_WarningsStack(t *testing.T) {
	got := training.AssessLoad(training.LoadInputs{
		Sessions: 6, AvgRPE: 9, Minutes: 420,
		SorenessScore: intPtr(9),
		SleepScore:    intPtr(2),
	})

	assert.Equal(t, training.RiskHigh, got.Risk)
	codes := make([]string, 0, len(got.Warnings))
	for _, w := range got.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []string{training.CodeOverreaching, training.CodeOvertrainingRisk}, codes)
}
