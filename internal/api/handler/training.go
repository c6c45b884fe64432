package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/models"
	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/training"
)

// TrainingHandler handles the training-load preview endpoint.
type TrainingHandler struct {
	flags  *featureflags.Service
	logger zerolog.Logger
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(flags *featureflags.Service, logger zerolog.Logger) *TrainingHandler {
	return &TrainingHandler{
		flags:  flags,
		logger: logger.With().Str("handler", "training").Logger(),
	}
}

// AssessLoad handles POST /v1/training/load:assess - classify a 7-day
// training signal without touching the stored profile. The app uses this to
// preview the risk tier as the user edits their log.
func (h *TrainingHandler) AssessLoad(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && h.flags.IsLoadAssessmentDisabled(r.Context()) {
		response.ServiceUnavailable(w, r, "Training load assessment is temporarily disabled")
		return
	}

	var req models.WeeklySignalInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "Validation failed", errs)
		return
	}

	result := training.AssessLoad(training.LoadInputs{
		Sessions:      req.Sessions,
		AvgRPE:        req.AvgRPE,
		Minutes:       req.Minutes,
		SorenessScore: req.SorenessScore,
		SleepScore:    req.SleepScore,
	})

	response.JSON(w, r, http.StatusOK, result)
}
