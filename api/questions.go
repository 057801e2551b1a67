package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mstern/applytrack/internal/jobs"
	"github.com/mstern/applytrack/pkg/repository"
)

// jobEnqueuer is the slice of the worker pool the handlers need.
type jobEnqueuer interface {
	Enqueue(ctx context.Context, typ string, payload any, priority, maxAttempts int) (int64, error)
}

type QuestionsHandler struct {
	appRepo      repository.ApplicationRepo
	questionRepo repository.QuestionRepo
	pool         jobEnqueuer
}

func NewQuestionsHandler(ar repository.ApplicationRepo, qr repository.QuestionRepo, pool jobEnqueuer) *QuestionsHandler {
	return &QuestionsHandler{appRepo: ar, questionRepo: qr, pool: pool}
}

type generateRequest struct {
	ApplicationID int64  `json:"application_id"`
	InterviewType string `json:"interview_type"`
	Count         int    `json:"count,omitempty"`
}

// Generate enqueues question generation for an application. The work runs
// in the background; questions become available on the list endpoint.
func (h *QuestionsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.ApplicationID <= 0 || strings.TrimSpace(req.InterviewType) == "" {
		http.Error(w, "application_id and interview_type are required", http.StatusBadRequest)
		return
	}

	app, err := h.appRepo.GetApplication(r.Context(), req.ApplicationID)
	if err != nil {
		http.Error(w, "failed to load application", http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	payload := jobs.GenerateQuestionsPayload{
		ApplicationID: app.ID,
		InterviewType: req.InterviewType,
		Company:       app.Company,
		Position:      app.Position,
		Count:         req.Count,
	}
	jobID, err := h.pool.Enqueue(r.Context(), jobs.TypeGenerateQuestions, payload, 100, 3)
	if err != nil {
		http.Error(w, "failed to enqueue generation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"job_id": jobID, "status": "queued"}, http.StatusAccepted)
}

func (h *QuestionsHandler) ListByApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	questions, err := h.questionRepo.ListQuestionsByApplication(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to list questions", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"total": len(questions),
		"items": questions,
	}
	writeJSON(w, resp, http.StatusOK)
}
