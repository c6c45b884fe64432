package plan_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/plan"
	"github.com/nutriplan/nutriplan/internal/profile"
	"github.com/nutriplan/nutriplan/internal/training"
)

func newTestService(t *testing.T, flagValues map[string]*featureflags.Flag) (*plan.Service, *profile.Service) {
	t.Helper()

	profiles := profile.NewService(profile.NewInMemoryRepository())

	flags := featureflags.NewService(featureflags.ServiceConfig{
		Repository:   featureflags.NewInMemoryRepositoryWithFlags(flagValues),
		Logger:       zerolog.Nop(),
		DefaultFlags: featureflags.DefaultFlags(),
	})

	svc := plan.NewService(plan.ServiceConfig{
		Profiles:     profiles,
		Plans:        plan.NewInMemoryRepository(),
		FeatureFlags: flags,
		Logger:       zerolog.Nop(),
	})
	return svc, profiles
}

func seedProfile(t *testing.T, profiles *profile.Service, p *profile.Profile) {
	t.Helper()
	_, err := profiles.Upsert(context.Background(), p)
	require.NoError(t, err)
}

func TestCompute_FullPipeline(t *testing.T) {
	svc, profiles := newTestService(t, nil)
	ctx := context.Background()

	seedProfile(t, profiles, &profile.Profile{
		UserID:              "usr_full",
		Sex:                 energy.SexMale,
		Age:                 30,
		WeightKg:            95,
		HeightCm:            175,
		ActivityLevel:       energy.ActivityModerate,
		Goal:                nutrition.GoalMaintain,
		LevelOverride:       training.LevelIntermediate,
		TrainingDaysPerWeek: 4,
	})

	p, err := svc.Compute(ctx, "usr_full")
	require.NoError(t, err)

	// BMI 31.0 with no composition data selects Mifflin-St Jeor:
	// 10*95 + 6.25*175 - 5*30 + 5 = 1898.75 -> 1899
	assert.Equal(t, energy.EquationMifflinStJeor, p.Equation)
	assert.Equal(t, 1899, p.REEKcal)

	// Intermediate activity factor 1.55: 1899 * 1.55 = 2943.45 -> 2943
	assert.Equal(t, 2943, p.TDEEKcal)
	assert.Equal(t, training.LevelIntermediate, p.TrainingLevel)

	// 4 sessions of 60 min at MET 5.0 for 95 kg: 4 * 475 = 1900 kcal/week
	require.NotNil(t, p.Protocol)
	assert.Len(t, p.Protocol.Sessions, 4)
	assert.Equal(t, 1900, p.Adjustment.WeeklyTrainingKcal)
	assert.Equal(t, 0, p.Adjustment.GoalDeltaKcal)

	// Maintain: target stays at TDEE and passes the guardrails untouched
	assert.Equal(t, 2943, p.KcalTarget)
	assert.InDelta(t, 0.85, p.Confidence, 1e-9)
	assert.Empty(t, p.Warnings)

	// Maintain protein prescription: 1.8 g/kg * 95 = 171 g
	assert.Equal(t, 171, p.Macros.ProteinG)

	assert.Contains(t, p.Trace, "floor")
	assert.Contains(t, p.Trace, "finalTarget")
	assert.NotContains(t, p.Trace, "trainingLoad")
	assert.Regexp(t, `^plan_`, p.ID)

	// The plan replaced whatever was stored before
	latest, err := svc.GetLatest(ctx, "usr_full")
	require.NoError(t, err)
	assert.Equal(t, p.ID, latest.ID)
}

func TestCompute_InsufficientData(t *testing.T) {
	svc, profiles := newTestService(t, nil)
	ctx := context.Background()

	// No anthropometrics at all: the pipeline degrades, it never errors
	seedProfile(t, profiles, &profile.Profile{
		UserID: "usr_empty",
		Goal:   nutrition.GoalCut,
	})

	p, err := svc.Compute(ctx, "usr_empty")
	require.NoError(t, err)

	assert.Equal(t, energy.EquationID(""), p.Equation)
	assert.Equal(t, 0, p.REEKcal)
	assert.Equal(t, 0, p.TDEEKcal)
	assert.Nil(t, p.Protocol)

	assert.Equal(t, 0, p.KcalTarget)
	assert.Equal(t, nutrition.Macros{}, p.Macros)
	assert.InDelta(t, 0.25, p.Confidence, 1e-9)

	codes := warningCodes(p.Warnings)
	assert.Contains(t, codes, energy.CodeInsufficientData)
	assert.Contains(t, codes, nutrition.CodeMissingInputs)
}

func TestCompute_ProtocolGenerationDisabled(t *testing.T) {
	svc, profiles := newTestService(t, map[string]*featureflags.Flag{
		featureflags.FlagDisableProtocolGeneration: {
			Key:   featureflags.FlagDisableProtocolGeneration,
			Value: true,
		},
	})
	ctx := context.Background()

	seedProfile(t, profiles, &profile.Profile{
		UserID:              "usr_noproto",
		Sex:                 energy.SexMale,
		Age:                 30,
		WeightKg:            95,
		HeightCm:            175,
		ActivityLevel:       energy.ActivityModerate,
		Goal:                nutrition.GoalMaintain,
		LevelOverride:       training.LevelIntermediate,
		TrainingDaysPerWeek: 4,
	})

	p, err := svc.Compute(ctx, "usr_noproto")
	require.NoError(t, err)

	assert.Nil(t, p.Protocol)
	assert.Equal(t, 0, p.Adjustment.WeeklyTrainingKcal)
	assert.Equal(t, p.TDEEKcal, p.KcalTarget)
}

func TestCompute_TrainingLoadFoldedIntoTrace(t *testing.T) {
	svc, profiles := newTestService(t, nil)
	ctx := context.Background()

	soreness := 8
	seedProfile(t, profiles, &profile.Profile{
		UserID:              "usr_load",
		Sex:                 energy.SexFemale,
		Age:                 28,
		WeightKg:            62,
		HeightCm:            165,
		ActivityLevel:       energy.ActivityHigh,
		Goal:                nutrition.GoalBulk,
		TrainingDaysPerWeek: 5,
		WeeklySignal: &training.LoadInputs{
			Sessions:      5,
			AvgRPE:        8.5,
			Minutes:       360,
			SorenessScore: &soreness,
		},
	})

	p, err := svc.Compute(ctx, "usr_load")
	require.NoError(t, err)

	// loadIndex = 5 * 8.5 * 72 / 60 = 51, a high-risk week
	require.Contains(t, p.Trace, "trainingLoad")
	folded, ok := p.Trace["trainingLoad"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(training.RiskHigh), folded["risk"])

	assert.Contains(t, warningCodes(p.Warnings), training.CodeOverreaching)
}

func TestCompute_LoadAssessmentDisabled(t *testing.T) {
	svc, profiles := newTestService(t, map[string]*featureflags.Flag{
		featureflags.FlagDisableLoadAssessment: {
			Key:   featureflags.FlagDisableLoadAssessment,
			Value: true,
		},
	})
	ctx := context.Background()

	seedProfile(t, profiles, &profile.Profile{
		UserID:              "usr_noload",
		Sex:                 energy.SexFemale,
		Age:                 28,
		WeightKg:            62,
		HeightCm:            165,
		ActivityLevel:       energy.ActivityHigh,
		Goal:                nutrition.GoalBulk,
		TrainingDaysPerWeek: 5,
		WeeklySignal: &training.LoadInputs{
			Sessions: 5,
			AvgRPE:   8.5,
			Minutes:  360,
		},
	})

	p, err := svc.Compute(ctx, "usr_noload")
	require.NoError(t, err)
	assert.NotContains(t, p.Trace, "trainingLoad")
}

func TestCompute_ProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Compute(context.Background(), "usr_missing")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestGetLatest_NotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.GetLatest(context.Background(), "usr_missing")
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}

func warningCodes(warnings []nutrition.Warning) []string {
	codes := make([]string, 0, len(warnings))
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	return codes
}
