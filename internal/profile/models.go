// Package profile stores the biometric and goal data collected by the
// onboarding flow. It is the read-side collaborator of the plan pipeline:
// the pipeline consumes snapshots from here and never writes back.
package profile

import (
	"time"

	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/training"
)

// Profile is a user's biometric snapshot, goal, and training preferences.
// Optional fields are pointers; nil means never captured. Inputs are
// validated once at the API boundary so the computation pipeline can rely on
// a strict schema.
type Profile struct {
	// UserID is the owning user (format: usr_XXXX).
	UserID string

	Sex      energy.Sex
	Age      int
	WeightKg float64
	HeightCm float64

	// Body composition, when a skinfold or bioimpedance assessment exists.
	BodyFatPercent *float64
	FatFreeMassKg  *float64

	// ActivityLevel is the nutrition-context classification used for
	// equation selection.
	ActivityLevel energy.ActivityLevel
	IsAthlete     bool

	Goal nutrition.Goal

	// LevelOverride is an explicit training-level choice made by the user;
	// AssessedLevel comes from the latest coach assessment. ResolveLevel
	// arbitrates between them.
	LevelOverride training.Level
	AssessedLevel training.Level

	// TrainingDaysPerWeek drives the weekly protocol generator.
	TrainingDaysPerWeek int

	// WeeklySignal is the rolling 7-day training load signal, when the user
	// logs sessions.
	WeeklySignal *training.LoadInputs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnergyInputs projects the profile into the shape the energy calculator
// consumes.
func (p *Profile) EnergyInputs() energy.Inputs {
	return energy.Inputs{
		Sex:            p.Sex,
		Age:            p.Age,
		WeightKg:       p.WeightKg,
		HeightCm:       p.HeightCm,
		BodyFatPercent: p.BodyFatPercent,
		FatFreeMassKg:  p.FatFreeMassKg,
		ActivityLevel:  p.ActivityLevel,
		IsAthlete:      p.IsAthlete,
	}
}

// TrainingLevel resolves the effective training level for this profile.
func (p *Profile) TrainingLevel() training.Level {
	return training.ResolveLevel(p.LevelOverride, p.AssessedLevel, p.ActivityLevel)
}
