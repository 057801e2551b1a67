package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mstern/applytrack/internal/db"
)

// Repository persists the job queue in the jobs / dead_letter_jobs
// tables.
type Repository struct {
	db *db.DB
}

func NewRepository(d *db.DB) *Repository { return &Repository{db: d} }

// Enqueue inserts a job and returns the new id.
func (r *Repository) Enqueue(ctx context.Context, j *Job) (int64, error) {
	if j.MaxAttempts == 0 {
		j.MaxAttempts = 5
	}
	if j.ScheduledAt.IsZero() {
		j.ScheduledAt = time.Now()
	}

	now := time.Now().UTC().Unix()
	res, err := r.db.Exec(ctx, `INSERT INTO jobs(type, payload, status, attempts, max_attempts, priority, scheduled_at, created, updated) VALUES(?,?,?,?,?,?,?,?,?)`,
		j.Type, string(j.Payload), "queued", j.Attempts, j.MaxAttempts, j.Priority, j.ScheduledAt.UTC().Unix(), now, now)
	if err != nil {
		return 0, fmt.Errorf("enqueue failed: %w", err)
	}

	return res.LastInsertId()
}

// FetchNext claims and returns the next runnable job respecting
// priority and schedule, or nil when the queue is empty. Claiming sets
// status to running so concurrent workers never pick the same job.
func (r *Repository) FetchNext(ctx context.Context) (*Job, error) {
	for {
		j, err := r.nextCandidate(ctx)
		if err != nil || j == nil {
			return j, err
		}

		res, err := r.db.Exec(ctx, `UPDATE jobs SET status = 'running', updated = ? WHERE id = ? AND status IN ('queued','retry')`,
			time.Now().UTC().Unix(), j.ID)
		if err != nil {
			return nil, fmt.Errorf("claim job: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("claim job: %w", err)
		}
		if n == 1 {
			j.Status = "running"
			return j, nil
		}
		// another worker claimed it first, try the next candidate
	}
}

func (r *Repository) nextCandidate(ctx context.Context) (*Job, error) {
	q := `SELECT id, type, payload, status, attempts, max_attempts, priority, scheduled_at, next_try_at, last_error, created, updated FROM jobs WHERE (status = 'queued' OR status = 'retry') AND (next_try_at IS NULL OR next_try_at <= ?) AND scheduled_at <= ? ORDER BY priority ASC, scheduled_at ASC LIMIT 1`
	now := time.Now().UTC().Unix()
	row := r.db.QueryRow(ctx, q, now, now)

	var (
		j           Job
		payload     sql.NullString
		scheduledAt int64
		nextTry     sql.NullInt64
		lastError   sql.NullString
		created     int64
		updated     int64
	)
	if err := row.Scan(&j.ID, &j.Type, &payload, &j.Status, &j.Attempts, &j.MaxAttempts, &j.Priority, &scheduledAt, &nextTry, &lastError, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("fetch next job: %w", err)
	}

	j.ScheduledAt = time.Unix(scheduledAt, 0)
	j.Created = time.Unix(created, 0)
	j.Updated = time.Unix(updated, 0)
	if payload.Valid {
		j.Payload = json.RawMessage(payload.String)
	}
	if nextTry.Valid {
		t := time.Unix(nextTry.Int64, 0)
		j.NextTryAt = &t
	}
	if lastError.Valid {
		j.LastError = lastError.String
	}

	return &j, nil
}

// UpdateJob persists status, attempts, next_try_at and last_error.
func (r *Repository) UpdateJob(ctx context.Context, j *Job) error {
	var nextTry any
	if j.NextTryAt != nil {
		nextTry = j.NextTryAt.Unix()
	}

	_, err := r.db.Exec(ctx, `UPDATE jobs SET status = ?, attempts = ?, next_try_at = ?, last_error = ?, updated = ? WHERE id = ?`,
		j.Status, j.Attempts, nextTry, j.LastError, time.Now().UTC().Unix(), j.ID)

	return err
}

// MoveToDeadLetter moves a permanently failed job to dead_letter_jobs
// and deletes the original row.
func (r *Repository) MoveToDeadLetter(ctx context.Context, j *Job) error {
	tx, err := r.db.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO dead_letter_jobs(job_id, type, payload, attempts, last_error, failed_at) VALUES(?,?,?,?,?,?)`,
		j.ID, j.Type, string(j.Payload), j.Attempts, j.LastError, time.Now().UTC().Unix()); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, j.ID); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
