package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nutriplan/nutriplan/internal/training"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a user's profile.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT
			user_id, sex, age, weight_kg, height_cm,
			body_fat_percent, fat_free_mass_kg,
			activity_level, is_athlete, goal,
			level_override, assessed_level, training_days_per_week,
			signal_sessions, signal_avg_rpe, signal_minutes,
			signal_soreness, signal_sleep,
			created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var (
		p               Profile
		signalSessions  *int
		signalAvgRPE    *float64
		signalMinutes   *int
		signalSoreness  *int
		signalSleep     *int
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Sex,
		&p.Age,
		&p.WeightKg,
		&p.HeightCm,
		&p.BodyFatPercent,
		&p.FatFreeMassKg,
		&p.ActivityLevel,
		&p.IsAthlete,
		&p.Goal,
		&p.LevelOverride,
		&p.AssessedLevel,
		&p.TrainingDaysPerWeek,
		&signalSessions,
		&signalAvgRPE,
		&signalMinutes,
		&signalSoreness,
		&signalSleep,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if signalSessions != nil || signalAvgRPE != nil || signalMinutes != nil {
		sig := training.LoadInputs{
			SorenessScore: signalSoreness,
			SleepScore:    signalSleep,
		}
		if signalSessions != nil {
			sig.Sessions = *signalSessions
		}
		if signalAvgRPE != nil {
			sig.AvgRPE = *signalAvgRPE
		}
		if signalMinutes != nil {
			sig.Minutes = *signalMinutes
		}
		p.WeeklySignal = &sig
	}

	return &p, nil
}

// Upsert creates or replaces a user's profile.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, sex, age, weight_kg, height_cm,
			body_fat_percent, fat_free_mass_kg,
			activity_level, is_athlete, goal,
			level_override, assessed_level, training_days_per_week,
			signal_sessions, signal_avg_rpe, signal_minutes,
			signal_soreness, signal_sleep,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (user_id) DO UPDATE SET
			sex = EXCLUDED.sex,
			age = EXCLUDED.age,
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			body_fat_percent = EXCLUDED.body_fat_percent,
			fat_free_mass_kg = EXCLUDED.fat_free_mass_kg,
			activity_level = EXCLUDED.activity_level,
			is_athlete = EXCLUDED.is_athlete,
			goal = EXCLUDED.goal,
			level_override = EXCLUDED.level_override,
			assessed_level = EXCLUDED.assessed_level,
			training_days_per_week = EXCLUDED.training_days_per_week,
			signal_sessions = EXCLUDED.signal_sessions,
			signal_avg_rpe = EXCLUDED.signal_avg_rpe,
			signal_minutes = EXCLUDED.signal_minutes,
			signal_soreness = EXCLUDED.signal_soreness,
			signal_sleep = EXCLUDED.signal_sleep,
			updated_at = EXCLUDED.updated_at
	`

	var (
		signalSessions *int
		signalAvgRPE   *float64
		signalMinutes  *int
		signalSoreness *int
		signalSleep    *int
	)
	if sig := p.WeeklySignal; sig != nil {
		signalSessions = &sig.Sessions
		signalAvgRPE = &sig.AvgRPE
		signalMinutes = &sig.Minutes
		signalSoreness = sig.SorenessScore
		signalSleep = sig.SleepScore
	}

	_, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.Sex,
		p.Age,
		p.WeightKg,
		p.HeightCm,
		p.BodyFatPercent,
		p.FatFreeMassKg,
		p.ActivityLevel,
		p.IsAthlete,
		p.Goal,
		p.LevelOverride,
		p.AssessedLevel,
		p.TrainingDaysPerWeek,
		signalSessions,
		signalAvgRPE,
		signalMinutes,
		signalSoreness,
		signalSleep,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Delete removes a user's profile.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

// ListUserIDs returns the IDs of every user with a stored profile.
func (r *PostgresRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
