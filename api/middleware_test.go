package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mstern/applytrack/api"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := r.Context().Value(api.CtxRequestID).(string); ok {
			seen = id
		}
		w.WriteHeader(http.StatusOK)
	})

	// generated id is echoed in the header and placed in the context
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	api.RequestIDMiddleware(inner).ServeHTTP(w, req)
	if seen == "" {
		t.Fatalf("expected a request id in the context")
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q does not match context id %q", got, seen)
	}

	// a caller-supplied id is preserved
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	api.RequestIDMiddleware(inner).ServeHTTP(w, req)
	if seen != "abc-123" {
		t.Fatalf("expected caller id, got %q", seen)
	}
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := httptest.NewRecorder()
	api.LoggingMiddleware(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	// preflight short-circuits with 204
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()
	api.CORSMiddleware(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS origin header")
	}

	// normal requests pass through with headers set
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	api.CORSMiddleware(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatalf("missing CORS methods header")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	api.RecoveryMiddleware(panicking).ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic got %d", w.Code)
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	secret := "testsecret"
	mw := api.JWTAuthMiddlewareWithSecret(secret)

	makeToken := func(secret string, exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email":   "a@example.com",
			"user_id": 7,
			"exp":     exp.Unix(),
		})
		s, err := tok.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return s
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"MissingHeader", "", http.StatusUnauthorized},
		{"EmptyBearer", "Bearer ", http.StatusUnauthorized},
		{"BadToken", "Bearer not.a.token", http.StatusUnauthorized},
		{"WrongSecret", "Bearer " + makeToken("othersecret", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"Expired", "Bearer " + makeToken(secret, time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"Valid", "Bearer " + makeToken(secret, time.Now().Add(time.Hour)), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id, ok := r.Context().Value(api.CtxUserID).(int64); ok {
					gotUserID = id
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			mw(inner).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("%s: expected %d got %d", tt.name, tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != 7 {
				t.Fatalf("expected user_id 7 in context, got %d", gotUserID)
			}
		})
	}
}
