package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriplan/nutriplan/internal/api/models"
	"github.com/nutriplan/nutriplan/internal/api/response"
	"github.com/nutriplan/nutriplan/internal/featureflags"
	"github.com/nutriplan/nutriplan/internal/run"
	"github.com/nutriplan/nutriplan/pkg/polyline"
)

// RunHandler handles GPS run analysis.
type RunHandler struct {
	flags  *featureflags.Service
	logger zerolog.Logger
}

// NewRunHandler creates a new RunHandler. Flags are optional; without them
// run import is always on.
func NewRunHandler(flags *featureflags.Service, logger zerolog.Logger) *RunHandler {
	return &RunHandler{
		flags:  flags,
		logger: logger.With().Str("handler", "run").Logger(),
	}
}

// AnalyzeRun handles POST /v1/runs:analyze - compute distance, pace,
// elevation gain, and splits for a recorded run. Stateless; nothing is
// persisted.
func (h *RunHandler) AnalyzeRun(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && !h.flags.IsRunImportEnabled(r.Context()) {
		response.ServiceUnavailable(w, r, "Run import is temporarily disabled")
		return
	}

	var req models.RunAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "Validation failed", errs)
		return
	}

	points := req.Points
	if req.Polyline != "" {
		points = run.FromPolyline(polyline.Decode(req.Polyline), req.DurationSec)
	}

	stats := run.ComputeStats(points)
	h.logger.Debug().
		Int("points", len(points)).
		Float64("distance_m", stats.DistanceM).
		Msg("run analyzed")

	response.JSON(w, r, http.StatusOK, models.RunAnalysis{
		Stats:      stats,
		AnalyzedAt: models.Timestamp(time.Now()),
	})
}
