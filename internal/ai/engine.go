package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mstern/applytrack/internal/config"
	"github.com/mstern/applytrack/pkg/models"
	"github.com/mstern/applytrack/pkg/ollama"
	"github.com/mstern/applytrack/pkg/repository"
)

// questionList is the structured response we expect from the LLM.
type questionList struct {
	Questions []struct {
		Question   string `json:"question"`
		Category   string `json:"category"`
		Difficulty string `json:"difficulty"`
	} `json:"questions"`
}

// GenerateRequest describes one question-generation run.
type GenerateRequest struct {
	ApplicationID int64
	InterviewType string
	Company       string
	Position      string
	Count         int
}

// Engine produces interview questions: LLM first, template bank on any
// failure. A nil ollama client disables the LLM path entirely.
type Engine struct {
	client    *ollama.Client
	cfg       config.EngineConfig
	loader    *Loader
	templates repository.TemplateRepo
	logger    *slog.Logger
}

func NewEngine(ctx context.Context, client *ollama.Client, cfg config.EngineConfig, sr repository.SchemaRepo, tr repository.TemplateRepo, logger *slog.Logger) (*Engine, error) {
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = "v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = 10
	}
	if sr == nil {
		return nil, fmt.Errorf("schema repo is required")
	}
	if tr == nil {
		return nil, fmt.Errorf("template repo is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	loader, err := NewLoader(ctx, sr)
	if err != nil {
		return nil, fmt.Errorf("create loader: %w", err)
	}

	return &Engine{client: client, cfg: cfg, loader: loader, templates: tr, logger: logger}, nil
}

// GenerateQuestions returns up to req.Count questions for the interview
// type. LLM output that fails JSON extraction or schema validation falls
// back to the template bank, so the call only errors when both paths are
// exhausted.
func (e *Engine) GenerateQuestions(ctx context.Context, req GenerateRequest) ([]models.GeneratedQuestion, error) {
	if req.Count <= 0 {
		req.Count = e.cfg.QuestionCount
	}

	if e.client != nil {
		questions, err := e.generateAI(ctx, req)
		if err == nil && len(questions) > 0 {
			return questions, nil
		}
		e.logger.Warn("ai generation failed, falling back to templates", "err", err, "interview_type", req.InterviewType)
	}

	return e.generateFromTemplates(ctx, req)
}

func (e *Engine) generateAI(ctx context.Context, req GenerateRequest) ([]models.GeneratedQuestion, error) {
	ctxReq, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	out, err := e.client.Generate(ctxReq, e.cfg.Model, buildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	j := extractJSON(out)
	if j == "" {
		return nil, errors.New("no JSON object found in response")
	}

	if schema, ok := e.loader.GetSchema(e.cfg.SchemaVersion); ok {
		keyErrs, err := schema.ValidateBytes(ctx, []byte(j))
		if err != nil {
			return nil, fmt.Errorf("validate response: %w", err)
		}
		if len(keyErrs) > 0 {
			return nil, fmt.Errorf("response failed schema %s: %s", e.cfg.SchemaVersion, keyErrs[0].Error())
		}
	}

	var list questionList
	if err := json.Unmarshal([]byte(j), &list); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	questions := make([]models.GeneratedQuestion, 0, len(list.Questions))
	for _, q := range list.Questions {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		questions = append(questions, models.GeneratedQuestion{
			ApplicationID: req.ApplicationID,
			InterviewType: req.InterviewType,
			Question:      q.Question,
			Category:      q.Category,
			Difficulty:    q.Difficulty,
			Source:        "ai",
		})
		if len(questions) == req.Count {
			break
		}
	}

	return questions, nil
}

func (e *Engine) generateFromTemplates(ctx context.Context, req GenerateRequest) ([]models.GeneratedQuestion, error) {
	bank, err := e.loadBank(ctx, req.InterviewType)
	if err != nil {
		return nil, err
	}

	questions := make([]models.GeneratedQuestion, 0, req.Count)
	for _, tpl := range bank {
		questions = append(questions, models.GeneratedQuestion{
			ApplicationID: req.ApplicationID,
			InterviewType: req.InterviewType,
			Question:      fillPlaceholders(tpl, req),
			Category:      req.InterviewType,
			Source:        "template",
		})
		if len(questions) == req.Count {
			break
		}
	}

	return questions, nil
}

// loadBank prefers the stored bank for the type, then the embedded
// defaults, then the embedded behavioral bank as the last resort.
func (e *Engine) loadBank(ctx context.Context, interviewType string) ([]string, error) {
	tpl, err := e.templates.GetTemplates(ctx, interviewType)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	if tpl != nil {
		var bank []string
		if err := json.Unmarshal([]byte(tpl.TemplatesJSON), &bank); err != nil {
			return nil, fmt.Errorf("parse template bank %s: %w", interviewType, err)
		}
		if len(bank) > 0 {
			return bank, nil
		}
	}

	if bank, ok := defaultBanks[interviewType]; ok {
		return bank, nil
	}

	return defaultBanks["behavioral"], nil
}

func buildPrompt(req GenerateRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d tailored interview questions for a %s interview.\n", req.Count, req.InterviewType)
	if req.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", req.Company)
	}
	if req.Position != "" {
		fmt.Fprintf(&sb, "Position: %s\n", req.Position)
	}
	sb.WriteString(`
Respond with only a JSON object of the form:
{"questions":[{"question":"...","category":"...","difficulty":"easy|medium|hard"}]}
Questions must be specific, realistic, and relevant to the role.`)

	return sb.String()
}

func fillPlaceholders(tpl string, req GenerateRequest) string {
	out := strings.ReplaceAll(tpl, "{company}", orDefault(req.Company, "the company"))
	return strings.ReplaceAll(out, "{position}", orDefault(req.Position, "this role"))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// extractJSON returns the substring from the first '{' to the last '}'.
// Model output often wraps JSON in prose or markdown fences.
func extractJSON(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
