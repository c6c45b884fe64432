package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/provider/resilience"
)

// ProviderName identifies the subscription backend for circuit breaker naming.
const ProviderName = "billing"

// ErrNotSubscribed is returned when the backend has no subscription on record.
var ErrNotSubscribed = errors.New("no subscription on record")

// ClientConfig holds configuration for the billing backend client.
type ClientConfig struct {
	// BaseURL is the subscription backend base URL (required).
	BaseURL string

	// APIKey authenticates server-to-server calls (required).
	APIKey string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a subscription backend API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new billing backend client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// subscriptionResponse is the backend's wire format.
type subscriptionResponse struct {
	UserID    string     `json:"userId"`
	Status    string     `json:"status"`
	Plan      string     `json:"plan"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// GetSubscription fetches a user's subscription state from the backend.
// Returns ErrNotSubscribed when the backend has never seen the user.
func (c *Client) GetSubscription(ctx context.Context, userID string) (*Subscription, error) {
	url := fmt.Sprintf("%s/v1/subscriptions/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, ErrNotSubscribed
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &Subscription{
		UserID:    userID,
		Status:    parseStatus(body.Status),
		Plan:      body.Plan,
		ExpiresAt: body.ExpiresAt,
		CheckedAt: time.Now(),
	}, nil
}

func parseStatus(s string) Status {
	switch Status(s) {
	case StatusActive, StatusGrace, StatusExpired:
		return Status(s)
	default:
		return StatusUnknown
	}
}
