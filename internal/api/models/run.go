package models

import "github.com/nutriplan/nutriplan/internal/run"

// Run analysis limits.
const (
	MaxTrackPoints = 100000
	MaxPolylineLen = 500000
)

// RunAnalyzeRequest is the request body for run analysis. Exactly one of
// Points or Polyline must be set. Polyline submissions carry the total
// duration separately because the encoding has no time dimension.
type RunAnalyzeRequest struct {
	Points      []run.TrackPoint `json:"points,omitempty"`
	Polyline    string           `json:"polyline,omitempty"`
	DurationSec int              `json:"durationSec,omitempty"`
}

// Validate checks the run analysis request.
func (r *RunAnalyzeRequest) Validate() []FieldError {
	var errs []FieldError

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message, Code: "invalid"})
	}

	hasPoints := len(r.Points) > 0
	hasPolyline := r.Polyline != ""

	switch {
	case !hasPoints && !hasPolyline:
		add("points", "either points or polyline is required")
	case hasPoints && hasPolyline:
		add("polyline", "points and polyline are mutually exclusive")
	}

	if len(r.Points) > MaxTrackPoints {
		add("points", "too many track points")
	}
	if len(r.Polyline) > MaxPolylineLen {
		add("polyline", "polyline too long")
	}
	if hasPolyline && r.DurationSec <= 0 {
		add("durationSec", "required with polyline and must be positive")
	}

	for i, p := range r.Points {
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			add("points", "coordinate out of range")
			break
		}
		if i > 0 && p.OffsetSec < r.Points[i-1].OffsetSec {
			add("points", "offsets must be non-decreasing")
			break
		}
	}

	return errs
}

// RunAnalysis is the response body for run analysis.
type RunAnalysis struct {
	Stats      run.Stats `json:"stats"`
	AnalyzedAt Timestamp `json:"analyzedAt"`
}
