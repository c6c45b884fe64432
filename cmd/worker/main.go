// Package main provides the entrypoint for the NutriPlan recompute worker.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/database"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/plan"
	"github.com/nutriplan/nutriplan/internal/profile"
	"github.com/nutriplan/nutriplan/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "nutriplan-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting NutriPlan worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Wire the recompute pipeline
	profileService := profile.NewService(profile.NewPostgresRepository(pool))
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewPostgresRepository(pool),
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	planService := plan.NewService(plan.ServiceConfig{
		Profiles:     profileService,
		Plans:        plan.NewPostgresRepository(pool),
		FeatureFlags: ffService,
		Logger:       log,
	})

	recomputeConfig := worker.DefaultRecomputeConfig()
	if v := os.Getenv("WORKER_CONCURRENCY"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			recomputeConfig.Concurrency = n
		}
	}
	if v := os.Getenv("WORKER_MAX_USERS_PER_RUN"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			recomputeConfig.MaxUsersPerRun = n
		}
	}

	recomputeJob := worker.NewRecomputeJob(worker.RecomputeJobConfig{
		Config:   recomputeConfig,
		Logger:   log,
		Plans:    planService,
		Profiles: profileService,
		Flags:    ffService,
	})

	// Health and metrics endpoints
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"version": Version,
		})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(recomputeJob.MetricsSnapshot())
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	// Start the Pub/Sub subscriber when configured; otherwise fall back to
	// a periodic whole-population recompute (local development).
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")

	if projectID != "" && subscription != "" {
		pubsubHandler, psErr := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RecomputeJob:     recomputeJob,
			Logger:           log,
		})
		if psErr != nil {
			log.Fatal().Err(psErr).Msg("failed to create pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if recvErr := pubsubHandler.Start(ctx); recvErr != nil && ctx.Err() == nil {
				log.Fatal().Err(recvErr).Msg("pubsub receive error")
			}
		}()
		log.Info().
			Str("project", projectID).
			Str("subscription", subscription).
			Msg("pubsub subscriber started")
	} else {
		log.Warn().Msg("pubsub not configured - running periodic recompute loop")
		go func() {
			ticker := time.NewTicker(1 * time.Hour)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, runErr := recomputeJob.RunAll(ctx); runErr != nil {
						log.Error().Err(runErr).Msg("periodic recompute failed")
					}
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
