package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/mstern/applytrack/pkg/models"
)

// ApplicationStats computes the dashboard rollup in one read pass. All
// percentages are 0 when there are no applications.
func (r *SQLiteRepo) ApplicationStats(ctx context.Context) (*models.ApplicationStats, error) {
	stats := models.EmptyApplicationStats()

	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM applications`)
	if err := row.Scan(&stats.TotalApplications); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.StatusBreakdown[status] = count
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	row = r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM responses`)
	if err := row.Scan(&stats.TotalResponses); err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}

	var respondedApplications int
	row = r.conn.QueryRow(ctx, `SELECT COUNT(DISTINCT application_id) FROM responses`)
	if err := row.Scan(&respondedApplications); err != nil {
		return nil, fmt.Errorf("count responded applications: %w", err)
	}

	row = r.conn.QueryRow(ctx, `SELECT COUNT(DISTINCT application_id) FROM interview_sessions`)
	if err := row.Scan(&stats.InterviewsScheduled); err != nil {
		return nil, fmt.Errorf("count interviewed applications: %w", err)
	}

	if stats.TotalApplications > 0 {
		total := float64(stats.TotalApplications)
		stats.ResponseRate = round1(float64(respondedApplications) / total * 100)
		stats.InterviewRate = round1(float64(stats.InterviewsScheduled) / total * 100)
		stats.SuccessRate = round1(float64(stats.StatusBreakdown[models.StatusOffer]) / total * 100)
		stats.RejectionRate = round1(float64(stats.StatusBreakdown[models.StatusRejected]) / total * 100)
	}

	row = r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE application_date >= date('now', '-30 days')`)
	if err := row.Scan(&stats.RecentApplications); err != nil {
		return nil, fmt.Errorf("count recent applications: %w", err)
	}

	rows, err = r.conn.QueryRows(ctx, `SELECT company, COUNT(*) AS count FROM applications GROUP BY company ORDER BY count DESC, company ASC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top companies: %w", err)
	}
	for rows.Next() {
		var cc models.CompanyCount
		if err := rows.Scan(&cc.Company, &cc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.TopCompanies = append(stats.TopCompanies, cc)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.conn.QueryRows(ctx, `SELECT strftime('%Y-%m', application_date) AS month, COUNT(*) AS count FROM applications WHERE application_date >= date('now', '-12 months') GROUP BY month ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	for rows.Next() {
		var mc models.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.MonthlyTrend = append(stats.MonthlyTrend, mc)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return stats, nil
}

// InterviewAnalytics aggregates interview sessions: outcome counts,
// average duration over positive durations, type distribution, and the
// pass rate per type. Only the literal outcome "passed" counts as a pass;
// any other non-empty outcome counts toward the denominator only.
func (r *SQLiteRepo) InterviewAnalytics(ctx context.Context) (*models.InterviewAnalytics, error) {
	analytics := models.EmptyInterviewAnalytics()

	rows, err := r.conn.QueryRows(ctx, `SELECT outcome, COUNT(*) FROM interview_sessions WHERE outcome IS NOT NULL AND outcome != '' GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("interview outcomes: %w", err)
	}
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			rows.Close()
			return nil, err
		}
		analytics.Outcomes[outcome] = count
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	row := r.conn.QueryRow(ctx, `SELECT AVG(duration) FROM interview_sessions WHERE duration > 0`)
	if err := row.Scan(&avg); err != nil {
		return nil, fmt.Errorf("average duration: %w", err)
	}
	if avg.Valid {
		analytics.AverageDuration = round1(avg.Float64)
	}

	rows, err = r.conn.QueryRows(ctx, `SELECT interview_type, COUNT(*) FROM interview_sessions GROUP BY interview_type`)
	if err != nil {
		return nil, fmt.Errorf("interview types: %w", err)
	}
	for rows.Next() {
		var iType sql.NullString
		var count int
		if err := rows.Scan(&iType, &count); err != nil {
			rows.Close()
			return nil, err
		}
		analytics.TypeBreakdown[iType.String] = count
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.conn.QueryRows(ctx, `SELECT interview_type, SUM(CASE WHEN outcome = 'passed' THEN 1 ELSE 0 END) AS passed, COUNT(*) AS total FROM interview_sessions WHERE outcome IS NOT NULL AND outcome != '' GROUP BY interview_type`)
	if err != nil {
		return nil, fmt.Errorf("success by type: %w", err)
	}
	for rows.Next() {
		var iType sql.NullString
		var passed, total int
		if err := rows.Scan(&iType, &passed, &total); err != nil {
			rows.Close()
			return nil, err
		}
		ts := models.TypeSuccess{Total: total, Passed: passed}
		if total > 0 {
			ts.SuccessRate = round1(float64(passed) / float64(total) * 100)
		}
		analytics.SuccessByType[iType.String] = ts
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return analytics, nil
}

// StageAnalytics aggregates applications by interview_stage: counts,
// average days spent in the current stage (julian-day difference between
// updated_at and current_stage_date, 0 when either is unset), and the
// share of applications in the stage not yet rejected. The latter is
// published as success_rate for dashboard compatibility even though it is
// a survival rate.
func (r *SQLiteRepo) StageAnalytics(ctx context.Context) (*models.StageAnalytics, error) {
	analytics := models.EmptyStageAnalytics()

	rows, err := r.conn.QueryRows(ctx, `SELECT interview_stage, COUNT(*) AS total, SUM(CASE WHEN status != 'rejected' THEN 1 ELSE 0 END) AS alive, AVG(CASE WHEN current_stage_date IS NOT NULL AND updated_at IS NOT NULL THEN julianday(updated_at) - julianday(current_stage_date) ELSE 0 END) AS avg_days FROM applications WHERE interview_stage IS NOT NULL AND interview_stage != '' GROUP BY interview_stage`)
	if err != nil {
		return nil, fmt.Errorf("stage analytics: %w", err)
	}
	for rows.Next() {
		var stage string
		var total, alive int
		var avgDays sql.NullFloat64
		if err := rows.Scan(&stage, &total, &alive, &avgDays); err != nil {
			rows.Close()
			return nil, err
		}
		analytics.StageDistribution[stage] = total
		if avgDays.Valid {
			analytics.AvgDaysInStage[stage] = round1(avgDays.Float64)
		} else {
			analytics.AvgDaysInStage[stage] = 0
		}
		if total > 0 {
			analytics.StageSuccessRate[stage] = round1(float64(alive) / float64(total) * 100)
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return analytics, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}

	return rows.Close()
}
