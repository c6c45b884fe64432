// Package billing integrates with the external subscription backend. The
// backend is optional infrastructure: when it is down the API keeps serving
// and reports subscription status as unknown rather than failing requests.
package billing

import "time"

// Status is the subscription state reported by the billing backend.
type Status string

const (
	// StatusActive is a paid, current subscription.
	StatusActive Status = "active"

	// StatusGrace is an expired subscription inside its grace window.
	StatusGrace Status = "grace"

	// StatusExpired is a lapsed or never-purchased subscription.
	StatusExpired Status = "expired"

	// StatusUnknown means the backend could not be reached and no cached
	// answer exists. Callers decide whether unknown users pass the gate.
	StatusUnknown Status = "unknown"
)

// Premium reports whether this status grants access to premium features.
func (s Status) Premium() bool {
	return s == StatusActive || s == StatusGrace
}

// Subscription is one user's subscription state at a point in time.
type Subscription struct {
	UserID    string     `json:"userId"`
	Status    Status     `json:"status"`
	Plan      string     `json:"plan,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	// CheckedAt is when the backend last confirmed this state; stale values
	// are served during outages.
	CheckedAt time.Time `json:"checkedAt"`
}
