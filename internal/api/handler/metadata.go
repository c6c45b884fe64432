package handler

import (
	"net/http"

	"github.com/nutriplan/nutriplan/internal/api/models"
	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/energy"
	"github.com/nutriplan/nutriplan/internal/nutrition"
	"github.com/nutriplan/nutriplan/internal/training"
)

// MetadataHandler serves static API metadata.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// GetEnums handles GET /v1/metadata/enums - enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		Sexes: []models.Sex{models.SexMale, models.SexFemale},
		ActivityLevels: []models.ActivityLevel{
			models.ActivitySedentary,
			models.ActivityLight,
			models.ActivityModerate,
			models.ActivityHigh,
			models.ActivityAthlete,
		},
		Goals: []models.Goal{models.GoalCut, models.GoalMaintain, models.GoalBulk},
		TrainingLevels: []models.TrainingLevel{
			models.TrainingLevelBeginner,
			models.TrainingLevelIntermediate,
			models.TrainingLevelAdvanced,
		},
		Equations: []string{
			string(energy.EquationCunningham1980),
			string(energy.EquationKatchMcArdle1996),
			string(energy.EquationMifflinStJeor),
			string(energy.EquationFAOWHOUNU2004),
		},
		WarningCodes: []string{
			energy.CodeInsufficientData,
			nutrition.CodeMissingInputs,
			nutrition.CodeLowKcalFloor,
			nutrition.CodeHighKcalCeil,
			nutrition.CodeDeficitTooAggressive,
			nutrition.CodeSurplusTooHigh,
			training.CodeLowRecoveryData,
			training.CodeOverreaching,
			training.CodeOvertrainingRisk,
		},
	}

	response.JSON(w, r, http.StatusOK, enums)
}
