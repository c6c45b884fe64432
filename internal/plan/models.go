// Package plan orchestrates the nutrition pipeline end to end: equation
// selection, energy computation, goal adjustment, guardrail clamping, macro
// split, and the weekly workout protocol. It also persists the resulting
// plan document.
package plan

import (
	"errors"
	"time"

	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/training"
)

// Service errors.
var (
	ErrPlanNotFound = errors.New("plan not found")
)

// Plan is one computed nutrition/training plan document. It is the value the
// report renderer and PDF exporter consume read-only; everything in it must
// serialize to JSON without cycles.
type Plan struct {
	ID     string `json:"planId"`
	UserID string `json:"userId"`

	// Equation and energy figures. Zero/empty when the profile lacked
	// usable anthropometrics.
	Equation energy.EquationID `json:"equation,omitempty"`
	REEKcal  int               `json:"reeKcal"`
	TDEEKcal int               `json:"tdeeKcal"`

	TrainingLevel training.Level       `json:"trainingLevel,omitempty"`
	Adjustment    nutrition.Adjustment `json:"adjustment"`

	KcalTarget int              `json:"kcalTarget"`
	Macros     nutrition.Macros `json:"macros"`
	Confidence float64          `json:"confidence"`

	// Warnings accumulate across the whole pipeline in computation order:
	// energy, guardrails, training load.
	Warnings []nutrition.Warning `json:"warnings"`

	// Trace is the audit panel shown to the user ("why was my number
	// adjusted"). Guardrail keys are always present; the training-load
	// assessment is folded in under "trainingLoad" when a signal exists.
	Trace map[string]interface{} `json:"trace"`

	Protocol *training.Protocol `json:"protocol,omitempty"`

	ComputedAt time.Time `json:"computedAt"`
}
