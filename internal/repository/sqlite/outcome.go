package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mstern/applytrack/pkg/models"
)

// CreateOutcome inserts a terminal outcome and overwrites the parent
// application's status with final_outcome. The overwrite is unconditional
// and matches zero rows for a dangling application id.
func (r *SQLiteRepo) CreateOutcome(ctx context.Context, o *models.Outcome) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("outcome is nil")
	}

	if o.OutcomeDate == "" {
		o.OutcomeDate = today()
	}

	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO outcomes (application_id, final_outcome, outcome_date, offer_details, salary_offered, rejection_reason, feedback) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ApplicationID, o.FinalOutcome, o.OutcomeDate, o.OfferDetails, o.SalaryOffered, o.RejectionReason, o.Feedback)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, o.FinalOutcome, o.ApplicationID); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) listOutcomes(ctx context.Context, applicationID int64) ([]models.Outcome, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, application_id, final_outcome, outcome_date, offer_details, salary_offered, rejection_reason, feedback, created_at FROM outcomes WHERE application_id = ? ORDER BY outcome_date ASC, id ASC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Outcome{}
	for rows.Next() {
		var (
			o                           models.Outcome
			offerDetails, rejection, fb sql.NullString
			salary                      sql.NullFloat64
		)
		if err := rows.Scan(&o.ID, &o.ApplicationID, &o.FinalOutcome, &o.OutcomeDate, &offerDetails, &salary, &rejection, &fb, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.OfferDetails = offerDetails.String
		o.RejectionReason = rejection.String
		o.Feedback = fb.String
		if salary.Valid {
			o.SalaryOffered = &salary.Float64
		}
		out = append(out, o)
	}

	return out, rows.Err()
}
