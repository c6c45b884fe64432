package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/billing"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/plan"
	"github.com/nutriplan/nutriplan/internal/profile"
)

// PlanHandler handles plan computation and retrieval.
type PlanHandler struct {
	service *plan.Service
	billing *billing.Service
	flags   *featureflags.Service
	logger  zerolog.Logger
}

// PlanHandlerConfig holds dependencies for the plan handler. Billing and
// flags are optional; without billing the compute endpoint is ungated.
type PlanHandlerConfig struct {
	Service *plan.Service
	Billing *billing.Service
	Flags   *featureflags.Service
	Logger  zerolog.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(cfg PlanHandlerConfig) *PlanHandler {
	return &PlanHandler{
		service: cfg.Service,
		billing: cfg.Billing,
		flags:   cfg.Flags,
		logger:  cfg.Logger.With().Str("handler", "plan").Logger(),
	}
}

// ComputePlan handles POST /v1/plans:compute - run the full pipeline over
// the user's current profile and persist the resulting plan.
func (h *PlanHandler) ComputePlan(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if !h.subscriptionGateDisabled(r) && h.billing != nil {
		if !h.billing.HasPremium(r.Context(), userID) {
			response.Forbidden(w, r, "An active subscription is required to compute plans")
			return
		}
	}

	p, err := h.service.Compute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "Complete onboarding before computing a plan")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("plan computation failed")
		response.InternalError(w, r, "Plan computation failed")
		return
	}

	response.Created(w, r, "/v1/me/plan", p)
}

// GetLatestPlan handles GET /v1/me/plan - the most recent computed plan.
func (h *PlanHandler) GetLatestPlan(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	p, err := h.service.GetLatest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.NotFound(w, r, "No plan has been computed yet")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("plan lookup failed")
		response.InternalError(w, r, "Failed to load plan")
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}

// DeletePlan handles DELETE /v1/me/plan.
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.NotFound(w, r, "No plan has been computed yet")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("plan delete failed")
		response.InternalError(w, r, "Failed to delete plan")
		return
	}

	response.NoContent(w, r)
}

func (h *PlanHandler) subscriptionGateDisabled(r *http.Request) bool {
	return h.flags != nil && h.flags.IsSubscriptionGateDisabled(r.Context())
}
