// Package run computes statistics over imported GPS run tracks: distance,
// moving time, pace, elevation gain, and per-kilometre splits. All functions
// are pure; the HTTP layer owns decoding and validation.
package run

// TrackPoint is one GPS sample of a recorded run.
type TrackPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// ElevationM is the altitude in metres; nil when the recording device
	// did not report it.
	ElevationM *float64 `json:"elevationM,omitempty"`

	// OffsetSec is seconds elapsed since the start of the run.
	OffsetSec int `json:"offsetSec"`
}

// Split is the timing of one kilometre of the run. The final split may cover
// less than a full kilometre.
type Split struct {
	Km          int     `json:"km"` // 1-based
	DistanceM   float64 `json:"distanceM"`
	DurationSec int     `json:"durationSec"`

	// PaceSecPerKm is the split pace normalized to a full kilometre.
	PaceSecPerKm int `json:"paceSecPerKm"`
}

// Stats summarizes a recorded run.
type Stats struct {
	DistanceM   float64 `json:"distanceM"`
	DurationSec int     `json:"durationSec"`

	// MovingSec excludes stretches where the runner was effectively
	// stationary (GPS drift while paused).
	MovingSec int `json:"movingSec"`

	// AvgPaceSecPerKm is moving time over distance; 0 when the track is too
	// short to pace.
	AvgPaceSecPerKm int `json:"avgPaceSecPerKm"`

	ElevationGainM float64 `json:"elevationGainM"`

	Splits []Split `json:"splits,omitempty"`
}
