// Package tracker is the public surface of the application tracking
// store. It is deliberately fail-soft: repository errors are logged and
// converted to sentinel results (id 0, false, empty records) instead of
// propagating to callers. The dashboard prefers an empty answer over an
// error page.
package tracker

import (
	"context"
	"log/slog"

	"github.com/mstern/applytrack/pkg/models"
	"github.com/mstern/applytrack/pkg/repository"
)

// Store bundles the repository interfaces the tracker needs.
type Store interface {
	repository.ApplicationRepo
	repository.ResponseRepo
	repository.InterviewRepo
	repository.OutcomeRepo
	repository.AnalyticsRepo
}

type Tracker struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{store: store, logger: logger}
}

// LogApplication records a new application and returns its id, or 0 on
// storage failure. Empty company/position are persisted as-is; validation
// is the caller's job.
func (t *Tracker) LogApplication(ctx context.Context, a *models.Application) int64 {
	id, err := t.store.CreateApplication(ctx, a)
	if err != nil {
		t.logger.Error("log application", "err", err)
		return 0
	}

	return id
}

// LogResponse records an inbound company response and applies the status
// push to the parent application. Returns 0 on storage failure. A
// dangling application id is accepted; the push then matches no rows.
func (t *Tracker) LogResponse(ctx context.Context, resp *models.Response) int64 {
	id, err := t.store.CreateResponse(ctx, resp)
	if err != nil {
		t.logger.Error("log response", "err", err, "application_id", resp.ApplicationID)
		return 0
	}

	return id
}

// LogInterview records an interview session. No status push.
func (t *Tracker) LogInterview(ctx context.Context, s *models.InterviewSession) int64 {
	id, err := t.store.CreateInterview(ctx, s)
	if err != nil {
		t.logger.Error("log interview", "err", err, "application_id", s.ApplicationID)
		return 0
	}

	return id
}

// LogOutcome records a terminal outcome and overwrites the application
// status with final_outcome.
func (t *Tracker) LogOutcome(ctx context.Context, o *models.Outcome) int64 {
	id, err := t.store.CreateOutcome(ctx, o)
	if err != nil {
		t.logger.Error("log outcome", "err", err, "application_id", o.ApplicationID)
		return 0
	}

	return id
}

// AdvanceInterviewStage moves the application to newStage and optionally
// records an interview session for it. Returns false both for a missing
// application and for a storage failure; the two are not distinguished.
func (t *Tracker) AdvanceInterviewStage(ctx context.Context, id int64, newStage string, details *models.StageDetails) bool {
	ok, err := t.store.AdvanceStage(ctx, id, newStage, details)
	if err != nil {
		t.logger.Error("advance stage", "err", err, "application_id", id, "stage", newStage)
		return false
	}

	return ok
}

// UpdateStatus sets the status label on an application. Any string is
// accepted.
func (t *Tracker) UpdateStatus(ctx context.Context, id int64, status string) bool {
	ok, err := t.store.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		t.logger.Error("update status", "err", err, "application_id", id)
		return false
	}

	return ok
}

// GetApplication returns the application with its nested stage history,
// or nil when it does not exist or the read fails.
func (t *Tracker) GetApplication(ctx context.Context, id int64) *models.ApplicationDetail {
	detail, err := t.store.GetApplicationDetail(ctx, id)
	if err != nil {
		t.logger.Error("get application", "err", err, "application_id", id)
		return nil
	}

	return detail
}

// ListApplications returns applications ordered by application date
// descending, optionally filtered by status. Failure yields an empty
// list.
func (t *Tracker) ListApplications(ctx context.Context, status string, limit int) []models.Application {
	apps, err := t.store.ListApplications(ctx, status, limit)
	if err != nil {
		t.logger.Error("list applications", "err", err)
		return []models.Application{}
	}
	if apps == nil {
		apps = []models.Application{}
	}

	return apps
}

// ApplicationStats returns the dashboard rollup, or a zero-valued record
// when the read fails.
func (t *Tracker) ApplicationStats(ctx context.Context) *models.ApplicationStats {
	stats, err := t.store.ApplicationStats(ctx)
	if err != nil {
		t.logger.Error("application stats", "err", err)
		return models.EmptyApplicationStats()
	}

	return stats
}

func (t *Tracker) InterviewAnalytics(ctx context.Context) *models.InterviewAnalytics {
	analytics, err := t.store.InterviewAnalytics(ctx)
	if err != nil {
		t.logger.Error("interview analytics", "err", err)
		return models.EmptyInterviewAnalytics()
	}

	return analytics
}

func (t *Tracker) StageAnalytics(ctx context.Context) *models.StageAnalytics {
	analytics, err := t.store.StageAnalytics(ctx)
	if err != nil {
		t.logger.Error("stage analytics", "err", err)
		return models.EmptyStageAnalytics()
	}

	return analytics
}

// Stages returns the static ordered stage label list.
func (t *Tracker) Stages() []string {
	out := make([]string, len(models.Stages))
	copy(out, models.Stages)
	return out
}
