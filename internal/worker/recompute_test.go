package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/plan"
	"github.com/nutriplan/nutriplan/internal/profile"
	"github.com/nutriplan/nutriplan/internal/worker"
)

func TestDefaultRecomputeConfig(t *testing.T) {
	cfg := worker.DefaultRecomputeConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.MaxUsersPerRun)
}

type testEnv struct {
	profiles *profile.Service
	plans    *plan.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	profiles := profile.NewService(profile.NewInMemoryRepository())
	plans := plan.NewService(plan.ServiceConfig{
		Profiles: profiles,
		Plans:    plan.NewInMemoryRepository(),
		Logger:   zerolog.Nop(),
	})
	return &testEnv{profiles: profiles, plans: plans}
}

func (e *testEnv) seedProfile(t *testing.T, userID string) {
	t.Helper()

	_, err := e.profiles.Upsert(context.Background(), &profile.Profile{
		UserID:              userID,
		Sex:                 energy.SexMale,
		Age:                 30,
		WeightKg:            95,
		HeightCm:            175,
		ActivityLevel:       energy.ActivityModerate,
		Goal:                nutrition.GoalMaintain,
		TrainingDaysPerWeek: 4,
	})
	require.NoError(t, err)
}

func TestRecomputeJob_Run(t *testing.T) {
	env := newTestEnv(t)
	env.seedProfile(t, "usr_a")
	env.seedProfile(t, "usr_b")

	job := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Logger:   zerolog.Nop(),
		Plans:    env.plans,
		Profiles: env.profiles,
	})

	result, err := job.Run(context.Background(), []string{"usr_a", "usr_b"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalUsers)
	assert.Equal(t, 2, result.Successful)
	assert.Zero(t, result.Failed)

	// Both users now have a stored plan.
	for _, userID := range []string{"usr_a", "usr_b"} {
		p, err := env.plans.GetLatest(context.Background(), userID)
		require.NoError(t, err)
		assert.Positive(t, p.KcalTarget)
	}
}

func TestRecomputeJob_Run_SkipsMissingProfiles(t *testing.T) {
	env := newTestEnv(t)
	env.seedProfile(t, "usr_a")

	job := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Logger:   zerolog.Nop(),
		Plans:    env.plans,
		Profiles: env.profiles,
	})

	result, err := job.Run(context.Background(), []string{"usr_a", "usr_gone"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)
}

func TestRecomputeJob_RunAll(t *testing.T) {
	env := newTestEnv(t)
	env.seedProfile(t, "usr_a")
	env.seedProfile(t, "usr_b")
	env.seedProfile(t, "usr_c")

	job := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Logger:   zerolog.Nop(),
		Plans:    env.plans,
		Profiles: env.profiles,
	})

	result, err := job.RunAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalUsers)
	assert.Equal(t, 3, result.Successful)
}

func TestRecomputeJob_Run_CappedByMaxUsers(t *testing.T) {
	env := newTestEnv(t)
	env.seedProfile(t, "usr_a")
	env.seedProfile(t, "usr_b")

	job := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Config:   worker.RecomputeConfig{MaxUsersPerRun: 1},
		Logger:   zerolog.Nop(),
		Plans:    env.plans,
		Profiles: env.profiles,
	})

	result, err := job.Run(context.Background(), []string{"usr_a", "usr_b"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalUsers)
	assert.Equal(t, 1, result.Successful)
}

func TestRecomputeJob_Run_DisabledByFlag(t *testing.T) {
	env := newTestEnv(t)
	env.seedProfile(t, "usr_a")

	flagRepo := featureflags.NewInMemoryRepository()
	flags := featureflags.NewService(featureflags.ServiceConfig{
		Repository: flagRepo,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, flags.SetFlag(context.Background(), &featureflags.Flag{
		Key:   featureflags.FlagDisablePlanRecompute,
		Value: true,
	}))

	job := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Logger:   zerolog.Nop(),
		Plans:    env.plans,
		Profiles: env.profiles,
		Flags:    flags,
	})

	_, err := job.Run(context.Background(), []string{"usr_a"})
	assert.ErrorIs(t, err, worker.ErrRecomputeDisabled)
}

func TestRecomputeJob_GetMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.seedProfile(t, "usr_a")

	job := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Logger:   zerolog.Nop(),
		Plans:    env.plans,
		Profiles: env.profiles,
	})

	_, err := job.Run(context.Background(), []string{"usr_a"})
	require.NoError(t, err)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(1), metrics.SuccessfulPlans)
	assert.False(t, metrics.LastRunAt.IsZero())

	snapshot := job.MetricsSnapshot()
	assert.Equal(t, int64(1), snapshot["total_runs"])
}
