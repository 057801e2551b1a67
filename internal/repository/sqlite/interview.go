package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mstern/applytrack/pkg/models"
)

// CreateInterview inserts an interview session. No status push happens on
// the parent application. A missing stage label leaves stage_order at 0.
func (r *SQLiteRepo) CreateInterview(ctx context.Context, s *models.InterviewSession) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("interview session is nil")
	}

	if s.Status == "" {
		s.Status = "scheduled"
	}
	if s.StageOrder == 0 && s.InterviewStage != "" {
		s.StageOrder = models.OrderForStage(s.InterviewStage)
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO interview_sessions (application_id, interview_type, interview_stage, stage_order, scheduled_date, scheduled_time, platform, interviewer_name, status, feedback, outcome, duration, preparation_time, assessment_details) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ApplicationID, s.InterviewType, s.InterviewStage, s.StageOrder, s.ScheduledDate, s.ScheduledTime, s.Platform, s.InterviewerName, s.Status, s.Feedback, s.Outcome, s.Duration, s.PreparationTime, s.AssessmentDetails)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) listInterviews(ctx context.Context, applicationID int64) ([]models.InterviewSession, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, application_id, interview_type, interview_stage, stage_order, scheduled_date, scheduled_time, platform, interviewer_name, status, feedback, outcome, duration, preparation_time, assessment_details, created_at FROM interview_sessions WHERE application_id = ? ORDER BY stage_order ASC, id ASC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.InterviewSession{}
	for rows.Next() {
		var (
			s                                                 models.InterviewSession
			iType, iStage, sDate, sTime, platform             sql.NullString
			interviewer, feedback, outcome, assessmentDetails sql.NullString
			duration, prepTime                                sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.ApplicationID, &iType, &iStage, &s.StageOrder, &sDate, &sTime, &platform, &interviewer, &s.Status, &feedback, &outcome, &duration, &prepTime, &assessmentDetails, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.InterviewType = iType.String
		s.InterviewStage = iStage.String
		s.ScheduledDate = sDate.String
		s.ScheduledTime = sTime.String
		s.Platform = platform.String
		s.InterviewerName = interviewer.String
		s.Feedback = feedback.String
		s.Outcome = outcome.String
		s.Duration = int(duration.Int64)
		s.PreparationTime = int(prepTime.Int64)
		s.AssessmentDetails = assessmentDetails.String
		out = append(out, s)
	}

	return out, rows.Err()
}
