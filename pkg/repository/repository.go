package repository

import (
	"context"

	"github.com/mstern/applytrack/pkg/models"
)

// Repository interfaces for domain entities. These are the public
// contracts consumers should depend on; concrete implementations live
// under internal/.

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	GetApplicationDetail(ctx context.Context, id int64) (*models.ApplicationDetail, error)
	ListApplications(ctx context.Context, status string, limit int) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) (bool, error)
	AdvanceStage(ctx context.Context, id int64, stage string, details *models.StageDetails) (bool, error)
}

type ResponseRepo interface {
	// CreateResponse inserts the response and applies the status push to
	// the parent application in the same transaction.
	CreateResponse(ctx context.Context, r *models.Response) (int64, error)
}

type InterviewRepo interface {
	CreateInterview(ctx context.Context, s *models.InterviewSession) (int64, error)
}

type OutcomeRepo interface {
	// CreateOutcome inserts the outcome and overwrites the parent
	// application status with final_outcome.
	CreateOutcome(ctx context.Context, o *models.Outcome) (int64, error)
}

type AnalyticsRepo interface {
	ApplicationStats(ctx context.Context) (*models.ApplicationStats, error)
	InterviewAnalytics(ctx context.Context) (*models.InterviewAnalytics, error)
	StageAnalytics(ctx context.Context) (*models.StageAnalytics, error)
}

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, q *models.GeneratedQuestion) (int64, error)
	ListQuestionsByApplication(ctx context.Context, applicationID int64) ([]models.GeneratedQuestion, error)
}

type SchemaRepo interface {
	GetSchema(ctx context.Context, version string) (*models.Schema, error)
	ListSchemas(ctx context.Context) ([]models.Schema, error)
}

type TemplateRepo interface {
	GetTemplates(ctx context.Context, interviewType string) (*models.QuestionTemplate, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
