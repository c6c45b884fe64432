package billing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SubscriptionChecker is the provider interface the service consumes.
type SubscriptionChecker interface {
	GetSubscription(ctx context.Context, userID string) (*Subscription, error)
}

// ServiceConfig holds configuration for the billing service.
type ServiceConfig struct {
	// Provider is the subscription backend client.
	Provider SubscriptionChecker

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long confirmed subscription states are cached
	// (default: 5 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale states during backend outages
	// (default: 24 hours).
	StaleIfErrorTTL time.Duration
}

// Service answers subscription questions with caching and fail-soft outage
// behavior: a backend outage degrades to cached or unknown status, never to a
// failed request.
type Service struct {
	provider        SubscriptionChecker
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*Subscription
}

// NewService creates a new billing service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	staleTTL := cfg.StaleIfErrorTTL
	if staleTTL == 0 {
		staleTTL = 24 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleTTL,
		cache:           make(map[string]*Subscription),
	}
}

// GetSubscription returns the user's subscription state. Never returns an
// error: outages produce a stale cached state or StatusUnknown.
func (s *Service) GetSubscription(ctx context.Context, userID string) *Subscription {
	if cached := s.getCached(userID, s.cacheTTL); cached != nil {
		return cached
	}

	sub, err := s.provider.GetSubscription(ctx, userID)
	if err == nil {
		s.setCached(sub)
		return sub
	}

	if errors.Is(err, ErrNotSubscribed) {
		sub = &Subscription{
			UserID:    userID,
			Status:    StatusExpired,
			CheckedAt: time.Now(),
		}
		s.setCached(sub)
		return sub
	}

	// Backend outage: serve stale if we have it, unknown otherwise
	s.logger.Warn().Err(err).Str("user_id", userID).Msg("subscription backend unavailable")

	if stale := s.getCached(userID, s.staleIfErrorTTL); stale != nil {
		return stale
	}

	return &Subscription{
		UserID:    userID,
		Status:    StatusUnknown,
		CheckedAt: time.Now(),
	}
}

// HasPremium reports whether the user may use premium features. Unknown
// status passes the gate: billing outages must not lock paying users out.
func (s *Service) HasPremium(ctx context.Context, userID string) bool {
	sub := s.GetSubscription(ctx, userID)
	return sub.Status.Premium() || sub.Status == StatusUnknown
}

func (s *Service) getCached(userID string, maxAge time.Duration) *Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.cache[userID]
	if !ok || time.Since(sub.CheckedAt) > maxAge {
		return nil
	}
	return sub
}

func (s *Service) setCached(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[sub.UserID] = sub
}
