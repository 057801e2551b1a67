package sqlite

import (
	"context"
	"database/sql"

	"github.com/mstern/applytrack/pkg/models"
)

func (r *SQLiteRepo) GetSchema(ctx context.Context, version string) (*models.Schema, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, version, description, schema_json, created, updated FROM ai_schemas WHERE version = ?`, version)

	var s models.Schema
	var desc sql.NullString
	if err := row.Scan(&s.ID, &s.Version, &desc, &s.SchemaJSON, &s.Created, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	s.Description = desc.String

	return &s, nil
}

func (r *SQLiteRepo) ListSchemas(ctx context.Context) ([]models.Schema, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, version, description, schema_json, created, updated FROM ai_schemas ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Schema
	for rows.Next() {
		var s models.Schema
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Version, &desc, &s.SchemaJSON, &s.Created, &s.Updated); err != nil {
			return nil, err
		}
		s.Description = desc.String
		out = append(out, s)
	}

	return out, rows.Err()
}

// GetTemplates returns the stored question bank for an interview type, or
// (nil, nil) when no bank exists for the type.
func (r *SQLiteRepo) GetTemplates(ctx context.Context, interviewType string) (*models.QuestionTemplate, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, interview_type, version, templates_json, created, updated FROM question_templates WHERE interview_type = ? ORDER BY version DESC LIMIT 1`, interviewType)

	var t models.QuestionTemplate
	if err := row.Scan(&t.ID, &t.InterviewType, &t.Version, &t.TemplatesJSON, &t.Created, &t.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &t, nil
}
