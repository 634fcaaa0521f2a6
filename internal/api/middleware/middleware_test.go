package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/plans", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	return r
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_Generated(t *testing.T) {
	w := do(newEngine(RequestID()), httptest.NewRequest("POST", "/plans", nil))

	rid := w.Header().Get("X-Request-ID")
	if len(rid) != 36 {
		t.Errorf("expected generated uuid, got %q", rid)
	}
	if w.Body.String() != rid {
		t.Errorf("expected context request id %q, got %q", rid, w.Body.String())
	}
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest("POST", "/plans", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := do(newEngine(RequestID()), req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}

	req = httptest.NewRequest("POST", "/plans", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 100))
	w = do(newEngine(RequestID()), req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("oversized id should be replaced, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	w := do(newEngine(RateLimit(limiter, 1, time.Minute, zap.NewNop())), httptest.NewRequest("POST", "/plans", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if len(limiter.keys) != 1 || !strings.HasSuffix(limiter.keys[0], ":/plans") {
		t.Errorf("unexpected limiter key: %v", limiter.keys)
	}

	limiter = &stubLimiter{err: errors.New("redis down")}
	w = do(newEngine(RateLimit(limiter, 1, time.Minute, zap.NewNop())), httptest.NewRequest("POST", "/plans", nil))
	if w.Code != http.StatusOK {
		t.Errorf("redis failure should fail open, got %d", w.Code)
	}

	w = do(newEngine(RateLimit(nil, 1, time.Minute, zap.NewNop())), httptest.NewRequest("POST", "/plans", nil))
	if w.Code != http.StatusOK {
		t.Errorf("nil limiter should pass, got %d", w.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	req := httptest.NewRequest("POST", "/plans", strings.NewReader(strings.Repeat("a", 64)))
	w := do(newEngine(BodyLimit(16)), req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	req = httptest.NewRequest("POST", "/plans", strings.NewReader("{}"))
	w = do(newEngine(BodyLimit(16)), req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:5173/"}))

	req := httptest.NewRequest("OPTIONS", "/plans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := do(r, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("unexpected allow origin: %q", got)
	}

	req = httptest.NewRequest("POST", "/plans", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = do(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin should not be allowed, got %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := do(newEngine(SecurityHeaders()), httptest.NewRequest("POST", "/plans", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected nosniff header")
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Error("expected no-store header")
	}
}
