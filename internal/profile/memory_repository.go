package profile

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository for tests
// and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewInMemoryRepository creates a new in-memory profile repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{profiles: make(map[string]*Profile)}
}

// Get retrieves a user's profile.
func (r *InMemoryRepository) Get(_ context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return copyProfile(p), nil
}

// Upsert creates or replaces a user's profile.
func (r *InMemoryRepository) Upsert(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[p.UserID] = copyProfile(p)
	return nil
}

// Delete removes a user's profile.
func (r *InMemoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, userID)
	return nil
}

// ListUserIDs returns the IDs of every user with a stored profile.
func (r *InMemoryRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// copyProfile deep-copies a profile so callers cannot mutate stored state.
func copyProfile(p *Profile) *Profile {
	if p == nil {
		return nil
	}

	c := *p
	if p.BodyFatPercent != nil {
		v := *p.BodyFatPercent
		c.BodyFatPercent = &v
	}
	if p.FatFreeMassKg != nil {
		v := *p.FatFreeMassKg
		c.FatFreeMassKg = &v
	}
	if p.WeeklySignal != nil {
		sig := *p.WeeklySignal
		if p.WeeklySignal.SorenessScore != nil {
			v := *p.WeeklySignal.SorenessScore
			sig.SorenessScore = &v
		}
		if p.WeeklySignal.SleepScore != nil {
			v := *p.WeeklySignal.SleepScore
			sig.SleepScore = &v
		}
		c.WeeklySignal = &sig
	}
	return &c
}
