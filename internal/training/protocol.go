package training

import (
	"math"

	"github.com/nutriplan/nutriplan/internal/nutrition"
)

// SessionFocus labels the dominant stimulus of a workout session.
type SessionFocus string

const (
	FocusFullBody     SessionFocus = "full_body"
	FocusUpper        SessionFocus = "upper"
	FocusLower        SessionFocus = "lower"
	FocusPush         SessionFocus = "push"
	FocusPull         SessionFocus = "pull"
	FocusConditioning SessionFocus = "conditioning"
)

// Session is one planned workout in the weekly protocol.
type Session struct {
	Day     int          `json:"day"` // 1-7, Monday-based
	Focus   SessionFocus `json:"focus"`
	Sets    int          `json:"sets"`
	RPECap  float64      `json:"rpeCap"`
	Minutes int          `json:"minutes"`
	MET     float64      `json:"met"`
}

// Protocol is a rules-derived weekly workout plan.
type Protocol struct {
	Level       Level     `json:"level"`
	DaysPerWeek int       `json:"daysPerWeek"`
	Sessions    []Session `json:"sessions"`
}

// Per-level session templates. Volume and intensity caps step up with
// experience; conditioning work fills extra days on a cut.
var levelTemplates = map[Level]struct {
	sets    int
	rpeCap  float64
	minutes int
	met     float64
}{
	LevelBeginner:     {sets: 12, rpeCap: 7, minutes: 45, met: 4.0},
	LevelIntermediate: {sets: 16, rpeCap: 8, minutes: 60, met: 5.0},
	LevelAdvanced:     {sets: 20, rpeCap: 9, minutes: 75, met: 6.0},
}

// splitByDays maps training frequency to a session focus rotation.
var splitByDays = map[int][]SessionFocus{
	2: {FocusFullBody, FocusFullBody},
	3: {FocusFullBody, FocusFullBody, FocusFullBody},
	4: {FocusUpper, FocusLower, FocusUpper, FocusLower},
	5: {FocusUpper, FocusLower, FocusPush, FocusPull, FocusLower},
	6: {FocusPush, FocusPull, FocusLower, FocusPush, FocusPull, FocusLower},
}

// BuildProtocol derives a weekly workout protocol from training level, goal,
// and desired frequency. Deterministic: the same inputs always yield the same
// protocol. daysPerWeek is clamped to [2, 6]; an unknown level is planned as
// beginner.
func BuildProtocol(level Level, goal nutrition.Goal, daysPerWeek int) Protocol {
	if daysPerWeek < 2 {
		daysPerWeek = 2
	}
	if daysPerWeek > 6 {
		daysPerWeek = 6
	}

	tplLevel := level
	if !tplLevel.Valid() {
		tplLevel = LevelBeginner
	}
	tpl := levelTemplates[tplLevel]

	focuses := splitByDays[daysPerWeek]
	sessions := make([]Session, 0, daysPerWeek)

	// Spread sessions over the week so rest days fall between workouts.
	dayStride := 7.0 / float64(daysPerWeek)
	for i, focus := range focuses {
		s := Session{
			Day:     1 + int(float64(i)*dayStride),
			Focus:   focus,
			Sets:    tpl.sets,
			RPECap:  tpl.rpeCap,
			Minutes: tpl.minutes,
			MET:     tpl.met,
		}
		// On a cut the last session of the week becomes conditioning: volume
		// is harder to recover from in a deficit than steady-state work.
		if goal == nutrition.GoalCut && i == len(focuses)-1 {
			s.Focus = FocusConditioning
			s.Sets = 0
			s.MET = 7.0
			s.Minutes = 30
		}
		sessions = append(sessions, s)
	}

	return Protocol{
		Level:       tplLevel,
		DaysPerWeek: daysPerWeek,
		Sessions:    sessions,
	}
}

// WeeklyTrainingKcal estimates the calorie cost of one week of the protocol
// using the standard MET equation (kcal = MET * kg * hours). Returns 0 when
// body weight is unknown.
func WeeklyTrainingKcal(p Protocol, weightKg float64) int {
	if weightKg <= 0 {
		return 0
	}
	var kcal float64
	for _, s := range p.Sessions {
		kcal += s.MET * weightKg * float64(s.Minutes) / 60
	}
	return int(math.Round(kcal))
}
