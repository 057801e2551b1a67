package jobs

import (
	"context"
	"encoding/json"
	"time"
)

// Job types processed by this service.
const (
	TypeProcessEmail      = "scanner.process_email"
	TypeGenerateQuestions = "ai.generate_questions"
)

// Job represents one queued unit of background work.
type Job struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Priority    int             `json:"priority"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	NextTryAt   *time.Time      `json:"next_try_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}

// Handler processes one job.
type Handler func(ctx context.Context, j *Job) error

// BackoffDuration returns the exponential retry delay for attempt n,
// capped at five minutes.
func BackoffDuration(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > 5*time.Minute {
		return 5 * time.Minute
	}
	return d
}

// GenerateQuestionsPayload is the payload for TypeGenerateQuestions.
type GenerateQuestionsPayload struct {
	ApplicationID int64  `json:"application_id"`
	InterviewType string `json:"interview_type"`
	Company       string `json:"company,omitempty"`
	Position      string `json:"position,omitempty"`
	Count         int    `json:"count,omitempty"`
}
