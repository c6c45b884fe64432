package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/profile"
	"github.com/nutriplan/nutriplan/internal/training"
)

// ServiceConfig holds configuration for the plan service.
type ServiceConfig struct {
	// Profiles is the read-side source of biometric snapshots.
	Profiles *profile.Service

	// Plans is the plan document store.
	Plans Repository

	// FeatureFlags is the feature flag service (optional).
	FeatureFlags *featureflags.Service

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service runs the computation pipeline and persists the resulting plan.
type Service struct {
	profiles     *profile.Service
	plans        Repository
	featureFlags *featureflags.Service
	logger       zerolog.Logger
}

// NewService creates a new plan service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		profiles:     cfg.Profiles,
		plans:        cfg.Plans,
		featureFlags: cfg.FeatureFlags,
		logger:       cfg.Logger,
	}
}

// Compute runs the full pipeline against the user's current profile snapshot
// and persists the resulting plan, replacing any previous one.
//
// The pipeline never fails on incomplete biometrics: an unusable profile
// produces a low-confidence plan with MISSING_INPUTS warnings instead of an
// error. Only missing profiles and storage failures surface as errors.
func (s *Service) Compute(ctx context.Context, userID string) (*Plan, error) {
	prof, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := energy.Compute(prof.EnergyInputs())
	level := prof.TrainingLevel()

	warnings := append([]nutrition.Warning{}, res.Warnings...)

	gin := nutrition.GuardrailInputs{GoalType: prof.Goal}
	if prof.Sex != "" {
		sex := string(prof.Sex)
		gin.Sex = &sex
	}
	if prof.Age > 0 {
		gin.Age = &prof.Age
	}
	if prof.WeightKg > 0 {
		gin.WeightKg = &prof.WeightKg
	}
	if prof.HeightCm > 0 {
		gin.HeightCm = &prof.HeightCm
	}

	var (
		tdeeKcal   int
		adjustment nutrition.Adjustment
		protocol   *training.Protocol
	)
	if res.Valid {
		tdeeKcal = energy.TDEE(res.REEKcal, level.ActivityFactor())
		gin.TDEEKcal = &tdeeKcal

		weeklyTrainingKcal := 0
		if !s.protocolGenerationDisabled(ctx) {
			p := training.BuildProtocol(level, prof.Goal, prof.TrainingDaysPerWeek)
			weeklyTrainingKcal = training.WeeklyTrainingKcal(p, prof.WeightKg)
			protocol = &p
		}

		adjustment = nutrition.AdjustForGoal(nutrition.AdjustInputs{
			TDEEKcal:           tdeeKcal,
			Goal:               prof.Goal,
			WeeklyTrainingKcal: weeklyTrainingKcal,
		})
		gin.GoalKcal = &adjustment.TargetKcal
	}

	guard := nutrition.ApplyGuardrails(gin)
	warnings = append(warnings, guard.Warnings...)

	trace := guard.Trace
	if prof.WeeklySignal != nil && !s.loadAssessmentDisabled(ctx) {
		load := training.AssessLoad(*prof.WeeklySignal)
		warnings = append(warnings, load.Warnings...)
		trace["trainingLoad"] = map[string]interface{}{
			"risk":  string(load.Risk),
			"trace": load.Trace,
		}
	}

	p := &Plan{
		ID:            newPlanID(),
		UserID:        userID,
		Equation:      res.Equation,
		REEKcal:       res.REEKcal,
		TDEEKcal:      tdeeKcal,
		TrainingLevel: level,
		Adjustment:    adjustment,
		KcalTarget:    guard.KcalTarget,
		Macros:        nutrition.SplitMacros(guard.KcalTarget, prof.WeightKg, prof.Goal),
		Confidence:    guard.Confidence,
		Warnings:      warnings,
		Trace:         trace,
		Protocol:      protocol,
		ComputedAt:    time.Now().UTC(),
	}

	if err := s.plans.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("plan_id", p.ID).
		Str("equation", string(p.Equation)).
		Int("kcal_target", p.KcalTarget).
		Float64("confidence", p.Confidence).
		Int("warnings", len(p.Warnings)).
		Msg("plan computed")

	return p, nil
}

// GetLatest retrieves the user's current plan.
func (s *Service) GetLatest(ctx context.Context, userID string) (*Plan, error) {
	return s.plans.GetLatest(ctx, userID)
}

// Delete removes the user's current plan.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.plans.Delete(ctx, userID)
}

func (s *Service) protocolGenerationDisabled(ctx context.Context) bool {
	if s.featureFlags == nil {
		return false
	}
	return s.featureFlags.IsProtocolGenerationDisabled(ctx)
}

func (s *Service) loadAssessmentDisabled(ctx context.Context) bool {
	if s.featureFlags == nil {
		return false
	}
	return s.featureFlags.IsLoadAssessmentDisabled(ctx)
}

func newPlanID() string {
	return "plan_" + uuid.New().String()[:22]
}
