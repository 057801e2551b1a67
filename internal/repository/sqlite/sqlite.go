package sqlite

import (
	"log/slog"
	"time"

	"github.com/mstern/applytrack/internal/db"
	"github.com/mstern/applytrack/pkg/repository"
)

// SQLiteRepo implements the repository interfaces using the internal DB
// wrapper. All queries are raw SQL against the migration schema.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.ApplicationRepo = (*SQLiteRepo)(nil)
var _ repository.ResponseRepo = (*SQLiteRepo)(nil)
var _ repository.InterviewRepo = (*SQLiteRepo)(nil)
var _ repository.OutcomeRepo = (*SQLiteRepo)(nil)
var _ repository.AnalyticsRepo = (*SQLiteRepo)(nil)
var _ repository.QuestionRepo = (*SQLiteRepo)(nil)
var _ repository.SchemaRepo = (*SQLiteRepo)(nil)
var _ repository.TemplateRepo = (*SQLiteRepo)(nil)
var _ repository.UserRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// today is the server-side default for date columns, YYYY-MM-DD.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
