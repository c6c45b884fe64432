package profile

import (
	"context"
	"errors"
	"time"
)

// Service provides profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a user's profile.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Upsert creates or replaces a user's profile, stamping timestamps. The
// caller is expected to have validated the input at the API boundary.
func (s *Service) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	now := time.Now()

	existing, err := s.repo.Get(ctx, p.UserID)
	switch {
	case err == nil:
		p.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrProfileNotFound):
		p.CreatedAt = now
	default:
		return nil, err
	}
	p.UpdatedAt = now

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a user's profile.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// ListUserIDs returns the IDs of every user with a stored profile.
func (s *Service) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListUserIDs(ctx)
}
