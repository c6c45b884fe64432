package plan

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository. The plan
// is stored as a single JSONB document keyed by user, mirroring the
// namespaced-blob shape older clients persist locally.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL plan repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetLatest retrieves the user's current plan.
func (r *PostgresRepository) GetLatest(ctx context.Context, userID string) (*Plan, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT document FROM plans WHERE user_id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save stores a plan, replacing the user's previous one.
func (r *PostgresRepository) Save(ctx context.Context, p *Plan) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO plans (user_id, plan_id, document, computed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			document = EXCLUDED.document,
			computed_at = EXCLUDED.computed_at
	`, p.UserID, p.ID, raw, p.ComputedAt)
	return err
}

// Delete removes a user's plan.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE user_id = $1`, userID)
	return err
}
