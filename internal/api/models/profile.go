package models

// ProfileInput is the request body for creating or replacing the user's
// onboarding profile. Optional fields are pointers; omitting one clears it.
type ProfileInput struct {
	Sex      Sex     `json:"sex"`
	Age      int     `json:"age"`
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`

	BodyFatPercent *float64 `json:"bodyFatPercent,omitempty"`
	FatFreeMassKg  *float64 `json:"fatFreeMassKg,omitempty"`

	ActivityLevel ActivityLevel `json:"activityLevel"`
	IsAthlete     bool          `json:"isAthlete"`

	Goal Goal `json:"goal"`

	TrainingLevel       *TrainingLevel `json:"trainingLevel,omitempty"`
	TrainingDaysPerWeek int            `json:"trainingDaysPerWeek"`

	WeeklySignal *WeeklySignalInput `json:"weeklySignal,omitempty"`
}

// WeeklySignalInput is the rolling 7-day training signal reported by the
// app. Soreness and sleep are 0-10 self-reported scores.
type WeeklySignalInput struct {
	Sessions      int     `json:"sessions"`
	AvgRPE        float64 `json:"avgRPE"`
	Minutes       int     `json:"minutes"`
	SorenessScore *int    `json:"sorenessScore,omitempty"`
	SleepScore    *int    `json:"sleepScore,omitempty"`
}

// Validate checks the profile input and returns structured field errors.
// Zero values are allowed for the anthropometrics; the plan pipeline treats
// them as missing and degrades gracefully. Values that are present must be
// in range.
func (p *ProfileInput) Validate() []FieldError {
	var errs []FieldError

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message, Code: "invalid"})
	}

	switch p.Sex {
	case "", SexMale, SexFemale:
	default:
		add("sex", "must be one of: male, female")
	}
	if p.Age < 0 || p.Age > 120 {
		add("age", "must be between 0 and 120")
	}
	if p.WeightKg < 0 || p.WeightKg > 400 {
		add("weightKg", "must be between 0 and 400")
	}
	if p.HeightCm < 0 || p.HeightCm > 260 {
		add("heightCm", "must be between 0 and 260")
	}
	if p.BodyFatPercent != nil && (*p.BodyFatPercent <= 0 || *p.BodyFatPercent >= 75) {
		add("bodyFatPercent", "must be between 0 and 75")
	}
	if p.FatFreeMassKg != nil && (*p.FatFreeMassKg <= 0 || *p.FatFreeMassKg > 200) {
		add("fatFreeMassKg", "must be between 0 and 200")
	}

	switch p.ActivityLevel {
	case "", ActivitySedentary, ActivityLight, ActivityModerate, ActivityHigh, ActivityAthlete:
	default:
		add("activityLevel", "must be one of: sedentary, light, moderate, high, athlete")
	}

	switch p.Goal {
	case "", GoalCut, GoalMaintain, GoalBulk:
	default:
		add("goal", "must be one of: cut, maintain, bulk")
	}

	if p.TrainingLevel != nil {
		switch *p.TrainingLevel {
		case TrainingLevelBeginner, TrainingLevelIntermediate, TrainingLevelAdvanced:
		default:
			add("trainingLevel", "must be one of: iniciante, intermediario, avancado")
		}
	}
	if p.TrainingDaysPerWeek < 0 || p.TrainingDaysPerWeek > 7 {
		add("trainingDaysPerWeek", "must be between 0 and 7")
	}

	if p.WeeklySignal != nil {
		for _, e := range p.WeeklySignal.Validate() {
			e.Field = "weeklySignal." + e.Field
			errs = append(errs, e)
		}
	}

	return errs
}

// Validate checks the weekly training signal.
func (s *WeeklySignalInput) Validate() []FieldError {
	var errs []FieldError

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message, Code: "invalid"})
	}

	if s.Sessions < 0 || s.Sessions > 21 {
		add("sessions", "must be between 0 and 21")
	}
	if s.AvgRPE < 0 || s.AvgRPE > 10 {
		add("avgRPE", "must be between 0 and 10")
	}
	if s.Minutes < 0 || s.Minutes > 7*24*60 {
		add("minutes", "must be a plausible weekly total")
	}
	if s.SorenessScore != nil && (*s.SorenessScore < 0 || *s.SorenessScore > 10) {
		add("sorenessScore", "must be between 0 and 10")
	}
	if s.SleepScore != nil && (*s.SleepScore < 0 || *s.SleepScore > 10) {
		add("sleepScore", "must be between 0 and 10")
	}

	return errs
}

// ProfileView is the response body for profile reads.
type ProfileView struct {
	Sex      Sex     `json:"sex,omitempty"`
	Age      int     `json:"age,omitempty"`
	WeightKg float64 `json:"weightKg,omitempty"`
	HeightCm float64 `json:"heightCm,omitempty"`

	BodyFatPercent *float64 `json:"bodyFatPercent,omitempty"`
	FatFreeMassKg  *float64 `json:"fatFreeMassKg,omitempty"`

	ActivityLevel ActivityLevel `json:"activityLevel,omitempty"`
	IsAthlete     bool          `json:"isAthlete"`

	Goal Goal `json:"goal,omitempty"`

	TrainingLevel       *TrainingLevel `json:"trainingLevel,omitempty"`
	EffectiveLevel      TrainingLevel  `json:"effectiveLevel,omitempty"`
	TrainingDaysPerWeek int            `json:"trainingDaysPerWeek"`

	WeeklySignal *WeeklySignalInput `json:"weeklySignal,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}
