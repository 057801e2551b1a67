package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mstern/applytrack/pkg/models"
)

// CreateResponse inserts a company response and pushes the parent
// application's status per the fixed response-type mapping. The push is
// unconditional (no comparison with the current status) and silently
// matches zero rows when the application id does not exist; the response
// row is kept either way.
func (r *SQLiteRepo) CreateResponse(ctx context.Context, resp *models.Response) (int64, error) {
	if resp == nil {
		return 0, fmt.Errorf("response is nil")
	}

	if resp.ResponseDate == "" {
		resp.ResponseDate = today()
	}

	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO responses (application_id, response_type, response_date, message, next_step) VALUES (?, ?, ?, ?, ?)`,
		resp.ApplicationID, resp.ResponseType, resp.ResponseDate, resp.Message, resp.NextStep)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if pushed := models.ResponseStatusPush(resp.ResponseType); pushed != "" {
		if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, pushed, resp.ApplicationID); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) listResponses(ctx context.Context, applicationID int64) ([]models.Response, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, application_id, response_type, response_date, message, next_step, created_at FROM responses WHERE application_id = ? ORDER BY response_date ASC, id ASC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Response{}
	for rows.Next() {
		var (
			resp     models.Response
			message  sql.NullString
			nextStep sql.NullString
		)
		if err := rows.Scan(&resp.ID, &resp.ApplicationID, &resp.ResponseType, &resp.ResponseDate, &message, &nextStep, &resp.CreatedAt); err != nil {
			return nil, err
		}
		resp.Message = message.String
		resp.NextStep = nextStep.String
		out = append(out, resp)
	}

	return out, rows.Err()
}
