package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mstern/applytrack/internal/ai"
	"github.com/mstern/applytrack/internal/scanner"
	"github.com/mstern/applytrack/pkg/repository"
)

// Handlers builds the handler map for the worker pool.
func Handlers(sc *scanner.Scanner, engine *ai.Engine, questions repository.QuestionRepo, logger *slog.Logger) map[string]Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return map[string]Handler{
		TypeProcessEmail:      processEmailHandler(sc, logger),
		TypeGenerateQuestions: generateQuestionsHandler(engine, questions, logger),
	}
}

func processEmailHandler(sc *scanner.Scanner, logger *slog.Logger) Handler {
	return func(ctx context.Context, j *Job) error {
		var email scanner.Email
		if err := json.Unmarshal(j.Payload, &email); err != nil {
			return fmt.Errorf("decode email payload: %w", err)
		}

		result := sc.Scan(ctx, email)
		logger.Info("email scanned",
			"job_id", j.ID,
			"event_id", result.EventID,
			"response_type", result.ResponseType,
			"logged", result.Logged)

		return nil
	}
}

func generateQuestionsHandler(engine *ai.Engine, questions repository.QuestionRepo, logger *slog.Logger) Handler {
	return func(ctx context.Context, j *Job) error {
		var p GenerateQuestionsPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return fmt.Errorf("decode generate payload: %w", err)
		}

		generated, err := engine.GenerateQuestions(ctx, ai.GenerateRequest{
			ApplicationID: p.ApplicationID,
			InterviewType: p.InterviewType,
			Company:       p.Company,
			Position:      p.Position,
			Count:         p.Count,
		})
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		for i := range generated {
			if _, err := questions.CreateQuestion(ctx, &generated[i]); err != nil {
				return fmt.Errorf("store question: %w", err)
			}
		}

		logger.Info("questions generated", "job_id", j.ID, "application_id", p.ApplicationID, "count", len(generated))
		return nil
	}
}
