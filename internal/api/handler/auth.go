// Package handler provides HTTP handlers for the NutriPlan API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/models"
	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/auth"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	service *auth.Service
	logger  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *auth.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// fieldErrors converts auth validation errors to the API error shape.
func fieldErrors(errs []auth.FieldError) []models.FieldError {
	out := make([]models.FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, models.FieldError{Field: e.Field, Message: e.Message, Code: e.Code})
	}
	return out
}

// Register handles POST /v1/auth/register - create an account with email
// and password.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "Validation failed", fieldErrors(errs))
		return
	}

	tokens, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			response.Conflict(w, r, "An account with this email already exists")
			return
		}
		h.logger.Error().Err(err).Msg("registration failed")
		response.InternalError(w, r, "Registration failed")
		return
	}

	response.JSON(w, r, http.StatusCreated, tokens)
}

// Login handles POST /v1/auth/login - exchange email and password for
// tokens.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "Validation failed", fieldErrors(errs))
		return
	}

	tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "Invalid email or password")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		response.InternalError(w, r, "Login failed")
		return
	}

	response.JSON(w, r, http.StatusOK, tokens)
}

// RefreshToken handles POST /v1/auth/refresh - exchange a refresh token for
// a new token pair. The used refresh token is revoked (rotation).
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "Validation failed", fieldErrors(errs))
		return
	}

	tokens, err := h.service.RefreshAccessToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			response.Unauthorized(w, r, "Invalid or expired refresh token")
			return
		}
		h.logger.Error().Err(err).Msg("token refresh failed")
		response.InternalError(w, r, "Token refresh failed")
		return
	}

	response.JSON(w, r, http.StatusOK, tokens)
}

// Logout handles POST /v1/auth/logout - revoke a single refresh token.
// Always returns 204; revoking an unknown token is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if req.RefreshToken != "" {
		if err := h.service.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil {
			h.logger.Warn().Err(err).Msg("refresh token revocation failed")
		}
	}

	response.NoContent(w, r)
}

// LogoutAll handles POST /v1/auth/logout-all - revoke every refresh token
// for the authenticated user. Requires a valid access token.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "Authentication required")
		return
	}

	if err := h.service.RevokeAllTokens(r.Context(), userID); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("logout-all failed")
		response.InternalError(w, r, "Logout failed")
		return
	}

	response.NoContent(w, r)
}
