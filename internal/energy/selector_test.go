package energy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriplan/nutriplan/internal/energy"
)

func floatPtr(v float64) *float64 { return &v }

func TestSelectEquation_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		inputs energy.Inputs
		want   energy.EquationID
	}{
		{
			name: "athlete with direct FFM picks Cunningham",
			inputs: energy.Inputs{
				Sex: energy.SexMale, Age: 28, WeightKg: 80, HeightCm: 180,
				IsAthlete:     true,
				FatFreeMassKg: floatPtr(60),
			},
			want: energy.EquationCunningham1980,
		},
		{
			name: "athlete activity level with derivable FFM picks Cunningham",
			inputs: energy.Inputs{
				Sex: energy.SexFemale, Age: 30, WeightKg: 62, HeightCm: 168,
				ActivityLevel:  energy.ActivityAthlete,
				BodyFatPercent: floatPtr(18),
			},
			want: energy.EquationCunningham1980,
		},
		{
			name: "lean athlete without composition data falls to FAO",
			inputs: energy.Inputs{
				Sex: energy.SexMale, Age: 28, WeightKg: 80, HeightCm: 180,
				IsAthlete: true,
			},
			want: energy.EquationFAOWHOUNU2004,
		},
		{
			name: "body fat alone picks Katch-McArdle",
			inputs: energy.Inputs{
				Sex: energy.SexMale, Age: 35, WeightKg: 85, HeightCm: 178,
				BodyFatPercent: floatPtr(22),
			},
			want: energy.EquationKatchMcArdle1996,
		},
		{
			name: "BMI at or above 25 picks Mifflin",
			inputs: energy.Inputs{
				Sex: energy.SexMale, Age: 40, WeightKg: 90, HeightCm: 175,
			},
			want: energy.EquationMifflinStJeor,
		},
		{
			name: "lean profile with no composition data falls back to FAO",
			inputs: energy.Inputs{
				Sex: energy.SexFemale, Age: 25, WeightKg: 55, HeightCm: 160,
			},
			want: energy.EquationFAOWHOUNU2004,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, energy.SelectEquation(tt.inputs))
		})
	}
}

func TestSelectEquation_AthleteIgnoresBMI(t *testing.T) {
	// Equation precedence must hold regardless of BMI: a heavy athlete with
	// known fat-free mass still gets the composition-aware equation.
	inputs := energy.Inputs{
		Sex: energy.SexMale, Age: 30, WeightKg: 110, HeightCm: 175,
		IsAthlete:     true,
		FatFreeMassKg: floatPtr(60),
	}
	assert.Greater(t, inputs.BMI(), 25.0)
	assert.Equal(t, energy.EquationCunningham1980, energy.SelectEquation(inputs))
}

func TestSelectEquation_AthleteFlagFallsBackWithoutComposition(t *testing.T) {
	// The athlete flag alone is not enough for Cunningham: without any
	// composition data the overweight branch takes over.
	inputs := energy.Inputs{
		Sex: energy.SexMale, Age: 30, WeightKg: 95, HeightCm: 170,
		ActivityLevel: energy.ActivityAthlete,
	}
	assert.Equal(t, energy.EquationMifflinStJeor, energy.SelectEquation(inputs))
}
