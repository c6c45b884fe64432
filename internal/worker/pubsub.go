package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// PubSubHandler handles Pub/Sub messages for the worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	recomputeJob     *RecomputeJob
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	RecomputeJob     *RecomputeJob
	Logger           zerolog.Logger
}

// RecomputeMessage represents a plan recompute job message. The API
// publishes one per profile change; the scheduler publishes RecomputeAll
// after guardrail or equation rollouts.
type RecomputeMessage struct {
	JobType      string   `json:"job_type"`
	UserIDs      []string `json:"user_ids,omitempty"`
	RecomputeAll bool     `json:"recompute_all,omitempty"`
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Configure receive settings.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		recomputeJob:     cfg.RecomputeJob,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	// Parse message.
	var recomputeMsg RecomputeMessage
	if err := json.Unmarshal(msg.Data, &recomputeMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	// Handle based on job type.
	var err error
	switch recomputeMsg.JobType {
	case "plan_recompute":
		err = h.handlePlanRecompute(ctx, recomputeMsg)
	case "health_check":
		err = h.handleHealthCheck(ctx)
	default:
		logger.Warn().Str("job_type", recomputeMsg.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}

	if err != nil {
		// A disabled flag is operator intent, not a delivery failure;
		// redelivering would just spin until the flag flips.
		if errors.Is(err, ErrRecomputeDisabled) {
			logger.Info().Msg("recompute disabled by feature flag, dropping message")
			msg.Ack()
			return
		}
		logger.Error().Err(err).Msg("job failed")
		msg.Nack()
		return
	}

	duration := time.Since(startTime)
	logger.Info().
		Str("job_type", recomputeMsg.JobType).
		Dur("duration", duration).
		Msg("job completed successfully")

	msg.Ack()
}

func (h *PubSubHandler) handlePlanRecompute(ctx context.Context, msg RecomputeMessage) error {
	h.logger.Info().
		Bool("recompute_all", msg.RecomputeAll).
		Int("user_count", len(msg.UserIDs)).
		Msg("starting plan recompute")

	var (
		result *RecomputeResult
		err    error
	)
	if msg.RecomputeAll {
		result, err = h.recomputeJob.RunAll(ctx)
	} else {
		if len(msg.UserIDs) == 0 {
			return fmt.Errorf("recompute message names no users")
		}
		result, err = h.recomputeJob.Run(ctx, msg.UserIDs)
	}
	if err != nil {
		return err
	}

	h.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("total_users", result.TotalUsers).
		Msg("plan recompute completed")

	// Consider it successful if more than half succeeded.
	if result.Failed > result.Successful {
		return fmt.Errorf("too many recompute failures: %d/%d", result.Failed, result.TotalUsers)
	}

	return nil
}

func (h *PubSubHandler) handleHealthCheck(ctx context.Context) error {
	h.logger.Debug().Msg("running health check")

	// Listing profiles verifies database connectivity without touching
	// any stored plan.
	if _, err := h.recomputeJob.profiles.ListUserIDs(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	h.logger.Debug().Msg("health check passed")
	return nil
}
