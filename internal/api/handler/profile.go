package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/models"
	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/profile"
	"github.com/nutriplan/nutriplan/internal/training"
)

// ProfileHandler handles the onboarding profile endpoints.
type ProfileHandler struct {
	service *profile.Service
	logger  zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *profile.Service, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("handler", "profile").Logger(),
	}
}

// GetProfile handles GET /v1/me/profile - retrieve the user's profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	prof, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "No profile exists for this user")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		response.InternalError(w, r, "Failed to load profile")
		return
	}

	response.JSON(w, r, http.StatusOK, profileView(prof))
}

// UpsertProfile handles PUT /v1/me/profile - create or replace the user's
// profile. The replace is whole-document; omitted optional fields clear.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "Validation failed", errs)
		return
	}

	prof := profileFromInput(userID, &input)
	saved, err := h.service.Upsert(r.Context(), prof)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("profile upsert failed")
		response.InternalError(w, r, "Failed to save profile")
		return
	}

	response.JSON(w, r, http.StatusOK, profileView(saved))
}

// DeleteProfile handles DELETE /v1/me/profile.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "No profile exists for this user")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("profile delete failed")
		response.InternalError(w, r, "Failed to delete profile")
		return
	}

	response.NoContent(w, r)
}

func profileFromInput(userID string, in *models.ProfileInput) *profile.Profile {
	prof := &profile.Profile{
		UserID:              userID,
		Sex:                 energy.Sex(in.Sex),
		Age:                 in.Age,
		WeightKg:            in.WeightKg,
		HeightCm:            in.HeightCm,
		BodyFatPercent:      in.BodyFatPercent,
		FatFreeMassKg:       in.FatFreeMassKg,
		ActivityLevel:       energy.ActivityLevel(in.ActivityLevel),
		IsAthlete:           in.IsAthlete,
		Goal:                nutrition.Goal(in.Goal),
		TrainingDaysPerWeek: in.TrainingDaysPerWeek,
	}
	if in.TrainingLevel != nil {
		prof.LevelOverride = training.Level(*in.TrainingLevel)
	}
	if s := in.WeeklySignal; s != nil {
		prof.WeeklySignal = &training.LoadInputs{
			Sessions:      s.Sessions,
			AvgRPE:        s.AvgRPE,
			Minutes:       s.Minutes,
			SorenessScore: s.SorenessScore,
			SleepScore:    s.SleepScore,
		}
	}
	return prof
}

func profileView(prof *profile.Profile) *models.ProfileView {
	view := &models.ProfileView{
		Sex:                 models.Sex(prof.Sex),
		Age:                 prof.Age,
		WeightKg:            prof.WeightKg,
		HeightCm:            prof.HeightCm,
		BodyFatPercent:      prof.BodyFatPercent,
		FatFreeMassKg:       prof.FatFreeMassKg,
		ActivityLevel:       models.ActivityLevel(prof.ActivityLevel),
		IsAthlete:           prof.IsAthlete,
		Goal:                models.Goal(prof.Goal),
		EffectiveLevel:      models.TrainingLevel(prof.TrainingLevel()),
		TrainingDaysPerWeek: prof.TrainingDaysPerWeek,
		CreatedAt:           models.Timestamp(prof.CreatedAt),
		UpdatedAt:           models.Timestamp(prof.UpdatedAt),
	}
	if prof.LevelOverride != training.LevelUnknown {
		lvl := models.TrainingLevel(prof.LevelOverride)
		view.TrainingLevel = &lvl
	}
	if s := prof.WeeklySignal; s != nil {
		view.WeeklySignal = &models.WeeklySignalInput{
			Sessions:      s.Sessions,
			AvgRPE:        s.AvgRPE,
			Minutes:       s.Minutes,
			SorenessScore: s.SorenessScore,
			SleepScore:    s.SleepScore,
		}
	}
	return view
}
