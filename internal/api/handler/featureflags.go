package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/featureflags"
)

// FeatureFlagsHandler handles the admin feature flag endpoints.
type FeatureFlagsHandler struct {
	service *featureflags.Service
	logger  zerolog.Logger
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service, logger zerolog.Logger) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{
		service: service,
		logger:  logger.With().Str("handler", "featureflags").Logger(),
	}
}

// ListFeatureFlags handles GET /v1/admin/feature-flags - all flags with
// defaults merged in.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	flags := h.service.GetAllFlags(r.Context())
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"flags": flags,
	})
}

// UpsertFeatureFlags handles PUT /v1/admin/feature-flags - create or update
// flags.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Flags []*featureflags.Flag `json:"flags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}
	if len(req.Flags) == 0 {
		response.BadRequest(w, r, "At least one flag is required", nil)
		return
	}
	for _, f := range req.Flags {
		if f == nil || f.Key == "" {
			response.BadRequest(w, r, "Every flag needs a key", nil)
			return
		}
	}

	if err := h.service.SetFlags(r.Context(), req.Flags); err != nil {
		h.logger.Error().Err(err).Msg("feature flag upsert failed")
		response.InternalError(w, r, "Failed to save feature flags")
		return
	}

	response.NoContent(w, r)
}

// InvalidateCache handles POST /v1/admin/feature-flags/invalidate.
func (h *FeatureFlagsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()
	response.NoContent(w, r)
}
