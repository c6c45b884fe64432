package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/plan"
	"github.com/nutriplan/nutriplan/internal/profile"
)

// ErrRecomputeDisabled is returned when the recompute feature flag is off.
var ErrRecomputeDisabled = errors.New("plan recompute is disabled")

// RecomputeJob recomputes stored plans when profiles change. Profile edits
// publish a message naming the user; scheduled runs recompute the whole
// population (guardrail or equation changes roll out without an app update).
type RecomputeJob struct {
	config   RecomputeConfig
	logger   zerolog.Logger
	plans    *plan.Service
	profiles *profile.Service

	// flags is optional; nil means recompute is always on.
	flags *featureflags.Service

	metrics *RecomputeMetrics
}

// RecomputeMetrics tracks recompute job statistics.
type RecomputeMetrics struct {
	mu sync.RWMutex

	TotalRuns       int64
	SuccessfulPlans int64
	FailedPlans     int64
	SkippedUsers int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RecomputeJobConfig holds configuration for creating a RecomputeJob.
type RecomputeJobConfig struct {
	Config   RecomputeConfig
	Logger   zerolog.Logger
	Plans    *plan.Service
	Profiles *profile.Service
	Flags    *featureflags.Service
}

// NewRecomputeJob creates a new recompute job processor.
func NewRecomputeJob(cfg RecomputeJobConfig) *RecomputeJob {
	return &RecomputeJob{
		config:   cfg.Config.withDefaults(),
		logger:   cfg.Logger,
		plans:    cfg.Plans,
		profiles: cfg.Profiles,
		flags:    cfg.Flags,
		metrics:  &RecomputeMetrics{},
	}
}

// RecomputeResult contains the result of one recompute run.
type RecomputeResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalUsers int
	Successful int
	Failed     int
	Skipped    int
	Errors     []RecomputeError
}

// RecomputeError records a per-user failure.
type RecomputeError struct {
	UserID string
	Error  string
}

// Run recomputes plans for the given users through a bounded worker pool.
func (j *RecomputeJob) Run(ctx context.Context, userIDs []string) (*RecomputeResult, error) {
	if j.flags != nil && j.flags.IsPlanRecomputeDisabled(ctx) {
		return nil, ErrRecomputeDisabled
	}

	if j.config.MaxUsersPerRun > 0 && len(userIDs) > j.config.MaxUsersPerRun {
		j.logger.Warn().
			Int("requested", len(userIDs)).
			Int("cap", j.config.MaxUsersPerRun).
			Msg("recompute run capped")
		userIDs = userIDs[:j.config.MaxUsersPerRun]
	}

	startTime := time.Now()
	result := &RecomputeResult{
		StartTime:  startTime,
		TotalUsers: len(userIDs),
	}

	j.logger.Info().
		Int("total_users", result.TotalUsers).
		Int("concurrency", j.config.Concurrency).
		Msg("starting plan recompute job")

	usersChan := make(chan string, len(userIDs))
	resultsChan := make(chan userResult, len(userIDs))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.recomputeWorker(ctx, usersChan, resultsChan)
		}()
	}

	for _, id := range userIDs {
		usersChan <- id
	}
	close(usersChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for ur := range resultsChan {
		switch {
		case ur.skipped:
			result.Skipped++
		case ur.err != nil:
			result.Failed++
			result.Errors = append(result.Errors, RecomputeError{
				UserID: ur.userID,
				Error:  ur.err.Error(),
			})
		default:
			result.Successful++
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("plan recompute job completed")

	return result, nil
}

// RunAll recomputes every stored profile's plan.
func (j *RecomputeJob) RunAll(ctx context.Context) (*RecomputeResult, error) {
	userIDs, err := j.profiles.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	return j.Run(ctx, userIDs)
}

type userResult struct {
	userID  string
	skipped bool
	err     error
}

func (j *RecomputeJob) recomputeWorker(ctx context.Context, users <-chan string, results chan<- userResult) {
	for userID := range users {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.recomputeUser(ctx, userID)
		}
	}
}

func (j *RecomputeJob) recomputeUser(ctx context.Context, userID string) userResult {
	userCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, err := j.plans.Compute(userCtx, userID)
	if err != nil {
		// A deleted profile between publish and consume is not a failure.
		if errors.Is(err, profile.ErrProfileNotFound) {
			j.logger.Debug().Str("user_id", userID).Msg("profile gone, skipping recompute")
			return userResult{userID: userID, skipped: true}
		}
		return userResult{userID: userID, err: err}
	}
	return userResult{userID: userID}
}

func (j *RecomputeJob) updateMetrics(result *RecomputeResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulPlans += int64(result.Successful)
	j.metrics.FailedPlans += int64(result.Failed)
	j.metrics.SkippedUsers += int64(result.Skipped)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RecomputeJob) GetMetrics() RecomputeMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RecomputeMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SuccessfulPlans: j.metrics.SuccessfulPlans,
		FailedPlans:     j.metrics.FailedPlans,
		SkippedUsers: j.metrics.SkippedUsers,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RecomputeJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"successful_plans":  m.SuccessfulPlans,
		"failed_plans":      m.FailedPlans,
		"skipped_users":     m.SkippedUsers,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
