package models

// Enums lists the enum values accepted by the API. Clients use this to
// populate onboarding pickers without hardcoding values.
type Enums struct {
	Sexes          []Sex           `json:"sexes"`
	ActivityLevels []ActivityLevel `json:"activityLevels"`
	Goals          []Goal          `json:"goals"`
	TrainingLevels []TrainingLevel `json:"trainingLevels"`
	Equations      []string        `json:"equations"`
	WarningCodes   []string        `json:"warningCodes"`
}
