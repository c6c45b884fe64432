package energy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/energy"
)

func TestCompute_MifflinPath(t *testing.T) {
	// Male, 40y, 90kg, 175cm, no composition data. BMI ~29.4 selects
	// Mifflin: 10*90 + 6.25*175 - 5*40 + 5 = 1798.75, rounds to 1799.
	result := energy.Compute(energy.Inputs{
		Sex: energy.SexMale, Age: 40, WeightKg: 90, HeightCm: 175,
	})

	require.True(t, result.Valid)
	assert.Equal(t, energy.EquationMifflinStJeor, result.Equation)
	assert.Equal(t, 1799, result.REEKcal)
	assert.Nil(t, result.FFMKg)
}

func TestCompute_FAOFallback(t *testing.T) {
	// Female, 25y, 55kg, 160cm, BMI ~21.5: weight-only fallback, 24*55.
	result := energy.Compute(energy.Inputs{
		Sex: energy.SexFemale, Age: 25, WeightKg: 55, HeightCm: 160,
	})

	require.True(t, result.Valid)
	assert.Equal(t, energy.EquationFAOWHOUNU2004, result.Equation)
	assert.Equal(t, 1320, result.REEKcal)
}

func TestCompute_CunninghamWithDirectFFM(t *testing.T) {
	result := energy.Compute(energy.Inputs{
		Sex: energy.SexMale, Age: 30, WeightKg: 80, HeightCm: 180,
		IsAthlete:     true,
		FatFreeMassKg: floatPtr(60),
	})

	require.True(t, result.Valid)
	assert.Equal(t, energy.EquationCunningham1980, result.Equation)
	// 500 + 22*60
	assert.Equal(t, 1820, result.REEKcal)
	require.NotNil(t, result.FFMKg)
	assert.InDelta(t, 60, *result.FFMKg, 0.001)
}

func TestCompute_KatchWithDerivedFFM(t *testing.T) {
	result := energy.Compute(energy.Inputs{
		Sex: energy.SexMale, Age: 35, WeightKg: 85, HeightCm: 178,
		BodyFatPercent: floatPtr(20),
	})

	require.True(t, result.Valid)
	assert.Equal(t, energy.EquationKatchMcArdle1996, result.Equation)
	// FFM = 85 * 0.8 = 68; 370 + 21.6*68 = 1838.8 -> 1839
	assert.Equal(t, 1839, result.REEKcal)
	require.NotNil(t, result.FFMKg)
	assert.InDelta(t, 68, *result.FFMKg, 0.001)
}

func TestCompute_InvalidAnthropometricsShortCircuit(t *testing.T) {
	tests := []struct {
		name   string
		inputs energy.Inputs
	}{
		{"zero age", energy.Inputs{Sex: energy.SexMale, Age: 0, WeightKg: 80, HeightCm: 180}},
		{"negative weight", energy.Inputs{Sex: energy.SexMale, Age: 30, WeightKg: -1, HeightCm: 180}},
		{"zero height", energy.Inputs{Sex: energy.SexMale, Age: 30, WeightKg: 80, HeightCm: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := energy.Compute(tt.inputs)
			assert.False(t, result.Valid)
			assert.Zero(t, result.REEKcal)
			assert.Empty(t, result.Equation)
			require.Len(t, result.Warnings, 1)
			assert.Equal(t, energy.CodeInsufficientData, result.Warnings[0].Code)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	inputs := energy.Inputs{
		Sex: energy.SexFemale, Age: 29, WeightKg: 63.5, HeightCm: 167,
		BodyFatPercent: floatPtr(24.5),
	}

	first := energy.Compute(inputs)
	second := energy.Compute(inputs)
	assert.Equal(t, first, second)
}

func TestTDEE_ActivityFactors(t *testing.T) {
	tests := []struct {
		name   string
		ree    int
		factor float64
		want   int
	}{
		{"beginner", 1800, 1.40, 2520},
		{"intermediate", 1800, 1.55, 2790},
		{"advanced", 1800, 1.70, 3060},
		{"neutral fallback", 1800, 1.45, 2610},
		{"rounds to nearest", 1799, 1.55, 2788}, // 2788.45
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, energy.TDEE(tt.ree, tt.factor))
		})
	}
}
