// Package worker provides background job processing for NutriPlan.
package worker

import "time"

// RecomputeConfig holds configuration for the plan recompute job.
type RecomputeConfig struct {
	// Concurrency is the number of concurrent recompute operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each user's recompute.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxUsersPerRun caps a single run; 0 means unlimited. Whole-population
	// runs triggered by schedule use this to bound job duration.
	MaxUsersPerRun int
}

// DefaultRecomputeConfig returns the default recompute configuration.
func DefaultRecomputeConfig() RecomputeConfig {
	return RecomputeConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

func (c RecomputeConfig) withDefaults() RecomputeConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}
