package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/models"
	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/auth"
	"github.com/nutriplan/nutriplan/internal/billing"
)

// MeHandler handles the authenticated account endpoints.
type MeHandler struct {
	auth    *auth.Service
	billing *billing.Service
	logger  zerolog.Logger
}

// NewMeHandler creates a new MeHandler. The billing service is optional;
// when nil the account summary omits the subscription block.
func NewMeHandler(authService *auth.Service, billingService *billing.Service, logger zerolog.Logger) *MeHandler {
	return &MeHandler{
		auth:    authService,
		billing: billingService,
		logger:  logger.With().Str("handler", "me").Logger(),
	}
}

// GetMe handles GET /v1/me - account summary with subscription state.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.NotFound(w, r, "Account not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("account lookup failed")
		response.InternalError(w, r, "Failed to load account")
		return
	}

	me := models.Me{
		UserID:    user.ID,
		Email:     user.Email,
		Locale:    user.Locale,
		CreatedAt: models.Timestamp(user.CreatedAt),
	}
	if h.billing != nil {
		me.Subscription = subscriptionView(h.billing.GetSubscription(r.Context(), userID))
	}

	response.JSON(w, r, http.StatusOK, me)
}

// GetSubscription handles GET /v1/me/subscription - current billing state.
func (h *MeHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	if h.billing == nil {
		response.ServiceUnavailable(w, r, "Subscription information is unavailable")
		return
	}

	userID := GetUserID(r.Context())
	sub := h.billing.GetSubscription(r.Context(), userID)
	response.JSON(w, r, http.StatusOK, subscriptionView(sub))
}

func subscriptionView(sub *billing.Subscription) *models.Subscription {
	if sub == nil {
		return nil
	}
	view := &models.Subscription{
		Status:    string(sub.Status),
		Plan:      sub.Plan,
		Premium:   sub.Status.Premium(),
		CheckedAt: models.Timestamp(sub.CheckedAt),
	}
	if sub.ExpiresAt != nil {
		t := models.Timestamp(*sub.ExpiresAt)
		view.ExpiresAt = &t
	}
	if view.CheckedAt.Time().IsZero() {
		view.CheckedAt = models.Timestamp(time.Now())
	}
	return view
}
