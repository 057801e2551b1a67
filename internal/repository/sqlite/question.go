package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mstern/applytrack/pkg/models"
)

func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.GeneratedQuestion) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO generated_questions (application_id, interview_type, question, category, difficulty, source, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ApplicationID, q.InterviewType, q.Question, q.Category, q.Difficulty, q.Source, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListQuestionsByApplication(ctx context.Context, applicationID int64) ([]models.GeneratedQuestion, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, application_id, interview_type, question, category, difficulty, source, created FROM generated_questions WHERE application_id = ? ORDER BY created DESC, id DESC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GeneratedQuestion{}
	for rows.Next() {
		var q models.GeneratedQuestion
		var iType, category, difficulty, source sql.NullString
		if err := rows.Scan(&q.ID, &q.ApplicationID, &iType, &q.Question, &category, &difficulty, &source, &q.Created); err != nil {
			return nil, err
		}
		q.InterviewType = iType.String
		q.Category = category.String
		q.Difficulty = difficulty.String
		q.Source = source.String
		out = append(out, q)
	}

	return out, rows.Err()
}
