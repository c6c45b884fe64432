package training

import "github.com/nutriplan/nutriplan/internal/nutrition"

// Risk is the coarse 7-day training load tier.
type Risk string

const (
	RiskLow      Risk = "low"
	RiskModerate Risk = "moderate"
	RiskHigh     Risk = "high"
)

// Warning codes emitted by the load heuristic.
const (
	CodeLowRecoveryData  = "LOW_RECOVERY_DATA"
	CodeOverreaching     = "OVERREACHING"
	CodeOvertrainingRisk = "OVERTRAINING_RISK"
)

// Load index thresholds.
const (
	highLoadIndex     = 45.0
	moderateLoadIndex = 30.0

	sorenessWarningFloor = 7
	sleepWarningCeil     = 4
)

// LoadInputs is the rolling 7-day training signal. Soreness and sleep are
// 0-10 self-reported scores; nil means not reported.
type LoadInputs struct {
	Sessions      int
	AvgRPE        float64
	Minutes       int
	SorenessScore *int
	SleepScore    *int
}

// LoadResult classifies the signal into a risk tier with recovery warnings.
type LoadResult struct {
	Risk     Risk                   `json:"risk"`
	Warnings []nutrition.Warning    `json:"warnings"`
	Trace    map[string]interface{} `json:"trace"`
}

// AssessLoad classifies a 7-day rolling training load.
//
// loadIndex = sessions * avgRPE * (minutes/sessions) / 60. Missing core
// fields emit LOW_RECOVERY_DATA but still produce a (less confident) tier
// rather than failing.
func AssessLoad(in LoadInputs) LoadResult {
	var warnings []nutrition.Warning

	complete := in.Sessions > 0 && in.AvgRPE > 0 && in.Minutes > 0
	if !complete {
		warnings = append(warnings, nutrition.Warning{
			Code:    CodeLowRecoveryData,
			Message: "incomplete 7-day training signal; load classification is approximate",
		})
	}

	var loadIndex float64
	if in.Sessions > 0 {
		loadIndex = float64(in.Sessions) * in.AvgRPE * (float64(in.Minutes) / float64(in.Sessions)) / 60
	}

	risk := RiskLow
	switch {
	case loadIndex > highLoadIndex:
		risk = RiskHigh
	case loadIndex > moderateLoadIndex:
		risk = RiskModerate
	}

	if risk != RiskLow && in.SorenessScore != nil && *in.SorenessScore >= sorenessWarningFloor {
		warnings = append(warnings, nutrition.Warning{
			Code:    CodeOverreaching,
			Message: "elevated load with high soreness; consider a lighter week",
		})
	}
	if risk == RiskHigh && in.SleepScore != nil && *in.SleepScore <= sleepWarningCeil {
		warnings = append(warnings, nutrition.Warning{
			Code:    CodeOvertrainingRisk,
			Message: "high load with poor sleep; overtraining risk",
		})
	}

	return LoadResult{
		Risk:     risk,
		Warnings: warnings,
		Trace: map[string]interface{}{
			"sessions":  in.Sessions,
			"avgRPE":    in.AvgRPE,
			"minutes":   in.Minutes,
			"loadIndex": loadIndex,
			"complete":  complete,
		},
	}
}
