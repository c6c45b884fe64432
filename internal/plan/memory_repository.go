package plan

import (
	"context"
	"encoding/json"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository for tests
// and local development. Plans are stored as their JSON encoding, matching
// the production document store, which also catches non-serializable traces
// early.
type InMemoryRepository struct {
	mu    sync.RWMutex
	plans map[string][]byte
}

// NewInMemoryRepository creates a new in-memory plan repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{plans: make(map[string][]byte)}
}

// GetLatest retrieves the user's current plan.
func (r *InMemoryRepository) GetLatest(_ context.Context, userID string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.plans[userID]
	if !ok {
		return nil, ErrPlanNotFound
	}

	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save stores a plan, replacing the user's previous one.
func (r *InMemoryRepository) Save(_ context.Context, p *Plan) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.UserID] = raw
	return nil
}

// Delete removes a user's plan.
func (r *InMemoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.plans, userID)
	return nil
}
