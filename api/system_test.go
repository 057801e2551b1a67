package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mstern/applytrack/api"
)

func TestHealthHandler(t *testing.T) {
	h := &api.SystemHandler{}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.HealthHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"status":"ok"`) || !strings.Contains(string(body), `"service":"applytrack"`) {
		t.Fatalf("unexpected body: %s", string(body))
	}
}

func TestVersionHandler(t *testing.T) {
	h := &api.SystemHandler{}
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()

	h.VersionHandler("1.2.3", "2026-01-02T03:04:05Z")(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"version":"1.2.3"`) || !strings.Contains(string(body), `"buildTime":"2026-01-02T03:04:05Z"`) {
		t.Fatalf("unexpected body: %s", string(body))
	}
}
