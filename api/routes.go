package api

import (
	"github.com/gorilla/mux"

	"github.com/mstern/applytrack/internal/config"
	"github.com/mstern/applytrack/internal/db"
	"github.com/mstern/applytrack/internal/repository/sqlite"
	"github.com/mstern/applytrack/internal/tracker"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB, pool jobEnqueuer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and tracker facade
	repo := sqlite.New(d, logger)
	store := tracker.New(repo, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	applicationsHandler := NewApplicationsHandler(store)
	analyticsHandler := NewAnalyticsHandler(store)
	questionsHandler := NewQuestionsHandler(repo, repo, pool)
	scanHandler := NewScanHandler(pool)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Application endpoints
	apiV1.HandleFunc("/applications", applicationsHandler.CreateApplication).Methods("POST")
	apiV1.HandleFunc("/applications", applicationsHandler.ListApplications).Methods("GET")
	apiV1.HandleFunc("/applications/{id}", applicationsHandler.GetApplication).Methods("GET")
	apiV1.HandleFunc("/applications/{id}/status", applicationsHandler.UpdateStatus).Methods("PUT")
	apiV1.HandleFunc("/applications/{id}/advance-stage", applicationsHandler.AdvanceStage).Methods("POST")
	apiV1.HandleFunc("/applications/{id}/responses", applicationsHandler.CreateResponse).Methods("POST")
	apiV1.HandleFunc("/applications/{id}/interviews", applicationsHandler.CreateInterview).Methods("POST")
	apiV1.HandleFunc("/applications/{id}/outcome", applicationsHandler.CreateOutcome).Methods("POST")
	apiV1.HandleFunc("/applications/{id}/questions", questionsHandler.ListByApplication).Methods("GET")

	// Analytics endpoints
	apiV1.HandleFunc("/stats", analyticsHandler.Stats).Methods("GET")
	apiV1.HandleFunc("/analytics/interviews", analyticsHandler.InterviewAnalytics).Methods("GET")
	apiV1.HandleFunc("/analytics/stages", analyticsHandler.StageAnalytics).Methods("GET")
	apiV1.HandleFunc("/stages", analyticsHandler.Stages).Methods("GET")

	// Background work endpoints
	apiV1.HandleFunc("/questions/generate", questionsHandler.Generate).Methods("POST")
	apiV1.HandleFunc("/scan/email", scanHandler.ScanEmail).Methods("POST")

	return r
}
