package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mstern/applytrack/pkg/models"
)

const applicationColumns = `id, company, position, application_date, status, interview_stage, current_stage_date, platform, job_url, salary_range, location, notes, created_at, updated_at`

// CreateApplication inserts a new application row. The store does not
// reject empty company/position; that validation belongs to callers.
func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	if a.ApplicationDate == "" {
		a.ApplicationDate = today()
	}
	if a.Status == "" {
		a.Status = models.StatusApplied
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO applications (company, position, application_date, status, interview_stage, current_stage_date, platform, job_url, salary_range, location, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Company, a.Position, a.ApplicationDate, a.Status, a.InterviewStage, a.CurrentStageDate, a.Platform, a.JobURL, a.SalaryRange, a.Location, a.Notes)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	a, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

// GetApplicationDetail returns the application with its nested stage
// history: responses, interview sessions and outcomes, oldest first.
func (r *SQLiteRepo) GetApplicationDetail(ctx context.Context, id int64) (*models.ApplicationDetail, error) {
	a, err := r.GetApplication(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}

	detail := &models.ApplicationDetail{
		Application: *a,
		Responses:   []models.Response{},
		Interviews:  []models.InterviewSession{},
		Outcomes:    []models.Outcome{},
	}

	if detail.Responses, err = r.listResponses(ctx, id); err != nil {
		return nil, err
	}
	if detail.Interviews, err = r.listInterviews(ctx, id); err != nil {
		return nil, err
	}
	if detail.Outcomes, err = r.listOutcomes(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

// ListApplications returns applications ordered by application date
// descending, optionally filtered by status. The limit defaults to 50.
func (r *SQLiteRepo) ListApplications(ctx context.Context, status string, limit int) ([]models.Application, error) {
	if limit <= 0 {
		limit = 50
	}

	qb := sq.Select(applicationColumns).
		From("applications").
		OrderBy("application_date DESC", "id DESC").
		Limit(uint64(limit))
	if status != "" {
		qb = qb.Where(sq.Eq{"status": status})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

// UpdateApplicationStatus sets the status label unconditionally. It
// reports false when no row matched the id.
func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id int64, status string) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE applications SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// AdvanceStage moves an application to a new stage: status and
// interview_stage both become the stage label and current_stage_date is
// set to today. Any stage string is accepted; there is no transition
// table. When details are supplied an interview session row tagged with
// the stage is created in the same transaction. Returns false when the
// application does not exist.
func (r *SQLiteRepo) AdvanceStage(ctx context.Context, id int64, stage string, details *models.StageDetails) (bool, error) {
	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE applications SET status = ?, interview_stage = ?, current_stage_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, stage, stage, today(), id)
	if err != nil {
		_ = tx.Rollback()
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if n == 0 {
		_ = tx.Rollback()
		return false, nil
	}

	if details != nil {
		_, err = tx.ExecContext(ctx, `INSERT INTO interview_sessions (application_id, interview_type, interview_stage, stage_order, scheduled_date, scheduled_time, platform, interviewer_name, status, assessment_details, duration, preparation_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'scheduled', ?, 0, 0)`,
			id, details.InterviewType, stage, models.OrderForStage(stage), details.ScheduledDate, details.ScheduledTime, details.Platform, details.InterviewerName, details.AssessmentDetails)
		if err != nil {
			_ = tx.Rollback()
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		a         models.Application
		stage     sql.NullString
		stageDate sql.NullString
		platform  sql.NullString
		jobURL    sql.NullString
		salary    sql.NullString
		location  sql.NullString
		notes     sql.NullString
	)

	err := row.Scan(&a.ID, &a.Company, &a.Position, &a.ApplicationDate, &a.Status, &stage, &stageDate, &platform, &jobURL, &salary, &location, &notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if stage.Valid {
		a.InterviewStage = &stage.String
	}
	if stageDate.Valid {
		a.CurrentStageDate = &stageDate.String
	}
	a.Platform = platform.String
	a.JobURL = jobURL.String
	a.SalaryRange = salary.String
	a.Location = location.String
	a.Notes = notes.String

	return &a, nil
}
