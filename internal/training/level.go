// Package training classifies training experience and load, and builds the
// weekly workout protocol.
package training

import "github.com/nutriplan/nutriplan/internal/energy"

// Level is the user's training experience tier. It is deliberately a
// different type from energy.ActivityLevel: activity level feeds equation
// selection, training level feeds the activity-factor multiplier and the
// protocol generator. The two were conflated in older plan documents and must
// stay distinct here.
//
// Wire values are kept as stored in existing plan documents.
type Level string

const (
	LevelUnknown      Level = ""
	LevelBeginner     Level = "iniciante"
	LevelIntermediate Level = "intermediario"
	LevelAdvanced     Level = "avancado"
)

// Valid reports whether l is a known non-empty level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// ActivityFactor returns the TDEE multiplier for the level. An unknown level
// gets a neutral fallback rather than an error.
func (l Level) ActivityFactor() float64 {
	switch l {
	case LevelBeginner:
		return 1.40
	case LevelIntermediate:
		return 1.55
	case LevelAdvanced:
		return 1.70
	default:
		return 1.45
	}
}

// ResolveLevel picks the effective training level from the available signals,
// in a single explicit precedence: an explicit profile override wins, then
// the latest assessment, then a coarse mapping from the nutrition activity
// level. Anything else resolves to unknown.
func ResolveLevel(override, assessed Level, activity energy.ActivityLevel) Level {
	if override.Valid() {
		return override
	}
	if assessed.Valid() {
		return assessed
	}
	switch activity {
	case energy.ActivitySedentary, energy.ActivityLight:
		return LevelBeginner
	case energy.ActivityModerate:
		return LevelIntermediate
	case energy.ActivityHigh, energy.ActivityAthlete:
		return LevelAdvanced
	}
	return LevelUnknown
}
