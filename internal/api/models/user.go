package models

// Me represents the authenticated user's account summary.
type Me struct {
	UserID       string        `json:"userId"`
	Email        string        `json:"email"`
	Locale       string        `json:"locale"`
	Subscription *Subscription `json:"subscription,omitempty"`
	CreatedAt    Timestamp     `json:"createdAt"`
}

// Subscription summarizes the user's billing state as reported by the
// subscription provider.
type Subscription struct {
	Status    string     `json:"status"`
	Plan      string     `json:"plan,omitempty"`
	Premium   bool       `json:"premium"`
	ExpiresAt *Timestamp `json:"expiresAt,omitempty"`
	CheckedAt Timestamp  `json:"checkedAt"`
}
