package mock

import (
	"context"

	"github.com/mstern/applytrack/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
	Apps  *ApplicationRepo
	Store *Store
}

func NewMocks() *Mocks {
	return &Mocks{
		Users: &UserRepo{},
		Apps:  &ApplicationRepo{},
		Store: &Store{},
	}
}

type UserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

// ApplicationRepo is an in-memory ApplicationRepo keyed by id.
type ApplicationRepo struct {
	Apps      map[int64]*models.Application
	nextID    int64
	CreateErr error
	GetErr    error
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if m.Apps == nil {
		m.Apps = map[int64]*models.Application{}
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	if stored.Status == "" {
		stored.Status = models.StatusApplied
	}
	m.Apps[stored.ID] = &stored
	return stored.ID, nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Apps[id], nil
}

func (m *ApplicationRepo) GetApplicationDetail(ctx context.Context, id int64) (*models.ApplicationDetail, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	app := m.Apps[id]
	if app == nil {
		return nil, nil
	}
	return &models.ApplicationDetail{
		Application: *app,
		Responses:   []models.Response{},
		Interviews:  []models.InterviewSession{},
		Outcomes:    []models.Outcome{},
	}, nil
}

func (m *ApplicationRepo) ListApplications(ctx context.Context, status string, limit int) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range m.Apps {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) (bool, error) {
	a, ok := m.Apps[id]
	if !ok {
		return false, nil
	}
	a.Status = status
	return true, nil
}

func (m *ApplicationRepo) AdvanceStage(ctx context.Context, id int64, stage string, details *models.StageDetails) (bool, error) {
	a, ok := m.Apps[id]
	if !ok {
		return false, nil
	}
	a.Status = stage
	a.InterviewStage = &stage
	return true, nil
}

// Store implements tracker.Store with canned results and error switches.
type Store struct {
	ApplicationRepo

	Responses  []models.Response
	Interviews []models.InterviewSession
	Outcomes   []models.Outcome

	ResponseErr  error
	InterviewErr error
	OutcomeErr   error
	AnalyticsErr error

	Stats          *models.ApplicationStats
	InterviewStats *models.InterviewAnalytics
	StageStats     *models.StageAnalytics
}

func (m *Store) CreateResponse(ctx context.Context, r *models.Response) (int64, error) {
	if m.ResponseErr != nil {
		return 0, m.ResponseErr
	}
	stored := *r
	stored.ID = int64(len(m.Responses) + 1)
	m.Responses = append(m.Responses, stored)
	if a, ok := m.Apps[r.ApplicationID]; ok {
		if push := models.ResponseStatusPush(r.ResponseType); push != "" {
			a.Status = push
		}
	}
	return stored.ID, nil
}

func (m *Store) CreateInterview(ctx context.Context, s *models.InterviewSession) (int64, error) {
	if m.InterviewErr != nil {
		return 0, m.InterviewErr
	}
	stored := *s
	stored.ID = int64(len(m.Interviews) + 1)
	m.Interviews = append(m.Interviews, stored)
	return stored.ID, nil
}

func (m *Store) CreateOutcome(ctx context.Context, o *models.Outcome) (int64, error) {
	if m.OutcomeErr != nil {
		return 0, m.OutcomeErr
	}
	stored := *o
	stored.ID = int64(len(m.Outcomes) + 1)
	m.Outcomes = append(m.Outcomes, stored)
	if a, ok := m.Apps[o.ApplicationID]; ok {
		a.Status = o.FinalOutcome
	}
	return stored.ID, nil
}

func (m *Store) ApplicationStats(ctx context.Context) (*models.ApplicationStats, error) {
	if m.AnalyticsErr != nil {
		return nil, m.AnalyticsErr
	}
	if m.Stats == nil {
		return models.EmptyApplicationStats(), nil
	}
	return m.Stats, nil
}

func (m *Store) InterviewAnalytics(ctx context.Context) (*models.InterviewAnalytics, error) {
	if m.AnalyticsErr != nil {
		return nil, m.AnalyticsErr
	}
	if m.InterviewStats == nil {
		return models.EmptyInterviewAnalytics(), nil
	}
	return m.InterviewStats, nil
}

func (m *Store) StageAnalytics(ctx context.Context) (*models.StageAnalytics, error) {
	if m.AnalyticsErr != nil {
		return nil, m.AnalyticsErr
	}
	if m.StageStats == nil {
		return models.EmptyStageAnalytics(), nil
	}
	return m.StageStats, nil
}
