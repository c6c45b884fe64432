package profile

import (
	"context"
	"errors"
)

// Repository errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Repository defines the interface for profile persistence.
type Repository interface {
	// Get retrieves a user's profile.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Upsert creates or replaces a user's profile.
	Upsert(ctx context.Context, p *Profile) error

	// Delete removes a user's profile.
	Delete(ctx context.Context, userID string) error

	// ListUserIDs returns the IDs of every user with a stored profile,
	// in stable order. Used by the recompute worker.
	ListUserIDs(ctx context.Context) ([]string, error)
}
