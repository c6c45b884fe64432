package plan

import "context"

// Repository defines the interface for plan persistence. Plans are stored as
// one JSON document per user; a recompute replaces the previous document
// (last write wins).
type Repository interface {
	// GetLatest retrieves the user's current plan.
	GetLatest(ctx context.Context, userID string) (*Plan, error)

	// Save stores a plan, replacing the user's previous one.
	Save(ctx context.Context, p *Plan) error

	// Delete removes a user's plan.
	Delete(ctx context.Context, userID string) error
}
