package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mstern/applytrack/internal/tracker"
	"github.com/mstern/applytrack/pkg/models"
)

type ApplicationsHandler struct {
	tracker *tracker.Tracker
}

func NewApplicationsHandler(t *tracker.Tracker) *ApplicationsHandler {
	return &ApplicationsHandler{tracker: t}
}

type idResponse struct {
	ID int64 `json:"id"`
}

func (h *ApplicationsHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var app models.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	app.Company = strings.TrimSpace(app.Company)
	app.Position = strings.TrimSpace(app.Position)
	if app.Company == "" || app.Position == "" {
		http.Error(w, "company and position are required", http.StatusBadRequest)
		return
	}

	id := h.tracker.LogApplication(r.Context(), &app)
	if id == 0 {
		http.Error(w, "failed to store application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, idResponse{ID: id}, http.StatusCreated)
}

func (h *ApplicationsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")

	limit := 0
	if l := q.Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 || v > 500 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = v
	}

	apps := h.tracker.ListApplications(r.Context(), status, limit)

	resp := map[string]any{
		"total": len(apps),
		"items": apps,
	}
	writeJSON(w, resp, http.StatusOK)
}

func (h *ApplicationsHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail := h.tracker.GetApplication(r.Context(), id)
	if detail == nil {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	writeJSON(w, detail, http.StatusOK)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	// Missing row and write failure look the same here.
	if !h.tracker.UpdateStatus(r.Context(), id, req.Status) {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"id": id, "status": req.Status}, http.StatusOK)
}

type advanceStageRequest struct {
	Stage   string               `json:"stage"`
	Details *models.StageDetails `json:"details,omitempty"`
}

func (h *ApplicationsHandler) AdvanceStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req advanceStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !slices.Contains(models.Stages, req.Stage) {
		http.Error(w, "unknown interview stage", http.StatusBadRequest)
		return
	}

	if !h.tracker.AdvanceInterviewStage(r.Context(), id, req.Stage, req.Details) {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"id": id, "stage": req.Stage}, http.StatusOK)
}

func (h *ApplicationsHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var resp models.Response
	if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	resp.ApplicationID = id
	if strings.TrimSpace(resp.ResponseType) == "" {
		http.Error(w, "response_type is required", http.StatusBadRequest)
		return
	}

	respID := h.tracker.LogResponse(r.Context(), &resp)
	if respID == 0 {
		http.Error(w, "failed to store response", http.StatusInternalServerError)
		return
	}

	writeJSON(w, idResponse{ID: respID}, http.StatusCreated)
}

func (h *ApplicationsHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var session models.InterviewSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	session.ApplicationID = id
	if strings.TrimSpace(session.InterviewType) == "" {
		http.Error(w, "interview_type is required", http.StatusBadRequest)
		return
	}

	sessionID := h.tracker.LogInterview(r.Context(), &session)
	if sessionID == 0 {
		http.Error(w, "failed to store interview", http.StatusInternalServerError)
		return
	}

	writeJSON(w, idResponse{ID: sessionID}, http.StatusCreated)
}

func (h *ApplicationsHandler) CreateOutcome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var outcome models.Outcome
	if err := json.NewDecoder(r.Body).Decode(&outcome); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	outcome.ApplicationID = id
	if strings.TrimSpace(outcome.FinalOutcome) == "" {
		http.Error(w, "final_outcome is required", http.StatusBadRequest)
		return
	}

	outcomeID := h.tracker.LogOutcome(r.Context(), &outcome)
	if outcomeID == 0 {
		http.Error(w, "failed to store outcome", http.StatusInternalServerError)
		return
	}

	writeJSON(w, idResponse{ID: outcomeID}, http.StatusCreated)
}

// pathID parses the {id} path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
