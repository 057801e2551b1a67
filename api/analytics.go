package api

import (
	"net/http"

	"github.com/mstern/applytrack/internal/tracker"
)

type AnalyticsHandler struct {
	tracker *tracker.Tracker
}

func NewAnalyticsHandler(t *tracker.Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: t}
}

// Stats serves the dashboard rollup. Storage failures degrade to a
// zero-valued record rather than an error status.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.tracker.ApplicationStats(r.Context()), http.StatusOK)
}

func (h *AnalyticsHandler) InterviewAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.tracker.InterviewAnalytics(r.Context()), http.StatusOK)
}

func (h *AnalyticsHandler) StageAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.tracker.StageAnalytics(r.Context()), http.StatusOK)
}

func (h *AnalyticsHandler) Stages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"stages": h.tracker.Stages()}, http.StatusOK)
}
