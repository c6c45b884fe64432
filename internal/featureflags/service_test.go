package featureflags_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/featureflags"
)

func TestService_GetFlag(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	// Test getting a default flag
	flag := service.GetFlag(ctx, featureflags.FlagDisableProtocolGeneration)
	if flag == nil {
		t.Fatal("expected flag to be returned")
	}
	if flag.Key != featureflags.FlagDisableProtocolGeneration {
		t.Errorf("expected key %q, got %q", featureflags.FlagDisableProtocolGeneration, flag.Key)
	}
	if flag.BoolValue(true) != false {
		t.Error("expected disable_protocol_generation to be false by default")
	}
}

func TestService_SetFlag(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	err := service.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableProtocolGeneration,
		Value: true,
	})
	if err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	// Verify it was updated
	flag := service.GetFlag(ctx, featureflags.FlagDisableProtocolGeneration)
	if flag == nil {
		t.Fatal("expected flag to be returned")
	}
	if flag.BoolValue(false) != true {
		t.Error("expected disable_protocol_generation to be true after update")
	}
}

func TestService_SetFlags(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	err := service.SetFlags(ctx, []*featureflags.Flag{
		{Key: featureflags.FlagDisableProtocolGeneration, Value: true},
		{Key: featureflags.FlagDisableLoadAssessment, Value: true},
	})
	if err != nil {
		t.Fatalf("failed to set flags: %v", err)
	}

	if !service.IsProtocolGenerationDisabled(ctx) {
		t.Error("expected protocol generation to be disabled")
	}
	if !service.IsLoadAssessmentDisabled(ctx) {
		t.Error("expected load assessment to be disabled")
	}
}

func TestService_GetAllFlags(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	// With an empty repository all defaults are returned
	flags := service.GetAllFlags(ctx)
	if len(flags) != len(featureflags.DefaultFlags()) {
		t.Errorf("expected %d default flags, got %d", len(featureflags.DefaultFlags()), len(flags))
	}

	// Repository values take precedence over defaults
	if err := repo.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagEnableRunImport,
		Value: false,
	}); err != nil {
		t.Fatalf("failed to seed flag: %v", err)
	}
	service.InvalidateCache()

	flags = service.GetAllFlags(ctx)
	if flags[featureflags.FlagEnableRunImport].BoolValue(true) != false {
		t.Error("expected repository value to override default")
	}
}

func TestService_CacheInvalidation(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Hour,
	})

	ctx := context.Background()

	if err := service.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableSubscriptionGate,
		Value: true,
	}); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	// Mutate the repository directly; the stale cache still wins
	if err := repo.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableSubscriptionGate,
		Value: false,
	}); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if !service.IsSubscriptionGateDisabled(ctx) {
		t.Error("expected cached value to be served before invalidation")
	}

	service.InvalidateCache()
	if service.IsSubscriptionGateDisabled(ctx) {
		t.Error("expected repository value after invalidation")
	}
}
