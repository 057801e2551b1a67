package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/mstern/applytrack/internal/config"
)

var ErrCircuitOpen = errors.New("ollama circuit open")

// Client wraps the Ollama API client and adds retries, per-request
// timeouts and a simple failure-count circuit breaker.
type Client struct {
	api        *api.Client
	cfg        config.OllamaConfig
	httpClient *http.Client
	logger     *slog.Logger

	failures  int32
	openUntil int64 // unix nano
}

func NewClient(cfg config.OllamaConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	return &Client{
		api:        api.NewClient(u, httpClient),
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() error {
	if tr, ok := c.httpClient.Transport.(*http.Transport); ok && tr != nil {
		tr.CloseIdleConnections()
	}

	return nil
}

// Health pings the Ollama server.
func (c *Client) Health(ctx context.Context) error {
	if c.isCircuitOpen() {
		return ErrCircuitOpen
	}

	ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.api.Heartbeat(ctxReq); err != nil {
		c.recordFailure()
		return fmt.Errorf("ollama heartbeat: %w", err)
	}

	atomic.StoreInt32(&c.failures, 0)
	return nil
}

// Generate sends a prompt to the model and returns the accumulated
// response text. Retries with linear backoff; failures feed the circuit
// breaker.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c.isCircuitOpen() {
		return "", ErrCircuitOpen
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)

		var sb strings.Builder
		req := &api.GenerateRequest{Model: model, Prompt: prompt}
		start := time.Now()
		err := c.api.Generate(ctxReq, req, func(r api.GenerateResponse) error {
			sb.WriteString(r.Response)
			return nil
		})
		cancel()

		if err == nil {
			atomic.StoreInt32(&c.failures, 0)
			c.logger.Debug("ollama generate",
				slog.String("model", model),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()))
			return sb.String(), nil
		}

		lastErr = err
		c.recordFailure()
		if c.isCircuitOpen() {
			return "", ErrCircuitOpen
		}
		time.Sleep(c.cfg.Backoff * time.Duration(attempt+1))
	}

	return "", fmt.Errorf("generate failed after retries: %w", lastErr)
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// half-open: reset failures and allow a request through
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	n := atomic.AddInt32(&c.failures, 1)
	if n >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}
