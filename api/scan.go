package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mstern/applytrack/internal/jobs"
	"github.com/mstern/applytrack/internal/scanner"
)

type ScanHandler struct {
	pool jobEnqueuer
}

func NewScanHandler(pool jobEnqueuer) *ScanHandler {
	return &ScanHandler{pool: pool}
}

// ScanEmail accepts a raw inbound email and queues it for classification.
// Classification and the resulting response log happen in the background.
func (h *ScanHandler) ScanEmail(w http.ResponseWriter, r *http.Request) {
	var email scanner.Email
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(email.Subject) == "" && strings.TrimSpace(email.Body) == "" {
		http.Error(w, "subject or body is required", http.StatusBadRequest)
		return
	}

	jobID, err := h.pool.Enqueue(r.Context(), jobs.TypeProcessEmail, email, 50, 5)
	if err != nil {
		http.Error(w, "failed to enqueue email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"job_id": jobID, "status": "queued"}, http.StatusAccepted)
}
