// Package scanner turns inbound employer emails into tracker events. It
// is the "response event" producer the store depends on: all fields are
// best-effort extractions from untrusted text, and the tracker performs
// no semantic validation on them.
package scanner

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/mstern/applytrack/internal/tracker"
	"github.com/mstern/applytrack/pkg/models"
)

// Email is one already-fetched inbound message. Body may be HTML or
// plain text.
type Email struct {
	ApplicationID int64  `json:"application_id"`
	From          string `json:"from"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	Date          string `json:"date,omitempty"` // YYYY-MM-DD
}

// ScanResult reports what the scanner did with one email.
type ScanResult struct {
	EventID       string  `json:"event_id"`
	ResponseType  string  `json:"response_type"`
	InterviewType string  `json:"interview_type,omitempty"`
	Confidence    float64 `json:"confidence"`
	ResponseID    int64   `json:"response_id,omitempty"`
	Logged        bool    `json:"logged"`
}

type Scanner struct {
	tracker       *tracker.Tracker
	minConfidence float64
	logger        *slog.Logger
}

func New(t *tracker.Tracker, minConfidence float64, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{tracker: t, minConfidence: minConfidence, logger: logger}
}

// Scan classifies one email and, when the classification is confident
// and an application id is present, logs it as a response (which applies
// the usual status push). Unrecognized or low-confidence emails are
// reported but not logged.
func (s *Scanner) Scan(ctx context.Context, e Email) ScanResult {
	text := ExtractText(e.Body)
	c := Classify(e.Subject, text)

	result := ScanResult{
		EventID:       uuid.NewString(),
		ResponseType:  c.ResponseType,
		InterviewType: c.InterviewType,
		Confidence:    c.Confidence,
	}

	if c.ResponseType == "" || c.Confidence < s.minConfidence {
		s.logger.Info("email not classified", "event_id", result.EventID, "from", e.From, "confidence", c.Confidence)
		return result
	}

	if e.ApplicationID <= 0 {
		s.logger.Info("classified email without application id", "event_id", result.EventID, "response_type", c.ResponseType)
		return result
	}

	resp := &models.Response{
		ApplicationID: e.ApplicationID,
		ResponseType:  c.ResponseType,
		ResponseDate:  e.Date,
		Message:       truncate(text, 2000),
		NextStep:      c.InterviewType,
	}
	result.ResponseID = s.tracker.LogResponse(ctx, resp)
	result.Logged = result.ResponseID > 0

	return result
}

// ExtractText returns the plain text of an email body. HTML bodies are
// stripped with goquery; anything that does not parse is returned as-is.
func ExtractText(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.Contains(trimmed, "<") {
		return trimmed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}
	doc.Find("script, style").Remove()

	text := doc.Text()
	// collapse runs of whitespace left behind by block elements
	return strings.Join(strings.Fields(text), " ")
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
