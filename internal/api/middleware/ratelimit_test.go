package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	redisdb "github.com/consumershield/claims-core/internal/infrastructure/db/redis"
)

// countingLimiter mimics the fixed-window counter: allows `limit` calls
// per identity, limits everything after.
type countingLimiter struct {
	limit      int
	counts     map[string]int
	identities []string
	err        error
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{limit: limit, counts: make(map[string]int)}
}

func (l *countingLimiter) Allow(_ context.Context, action, identity string) (redisdb.Decision, error) {
	if l.err != nil {
		return redisdb.Decision{}, l.err
	}
	l.identities = append(l.identities, identity)
	key := action + ":" + identity
	l.counts[key]++
	if l.counts[key] > l.limit {
		return redisdb.Decision{Limited: true, RetryAfter: 30 * time.Second}, nil
	}
	return redisdb.Decision{Remaining: l.limit - l.counts[key]}, nil
}

func runRateLimit(limiter Limiter, userID, xff string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/claims", nil)
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}

	handler := RateLimit(limiter, "create_claim", zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	_ = handler(c)
	return rec
}

func TestRateLimit_WindowBoundary(t *testing.T) {
	limiter := newCountingLimiter(5)

	for i := 1; i <= 5; i++ {
		rec := runRateLimit(limiter, "u1", "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, rec.Code)
		}
	}

	rec := runRateLimit(limiter, "u1", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("6th request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "30" {
		t.Errorf("Retry-After = %q, want 30", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimit_IdentitiesAreIndependent(t *testing.T) {
	limiter := newCountingLimiter(1)

	if rec := runRateLimit(limiter, "u1", ""); rec.Code != http.StatusCreated {
		t.Fatalf("u1 first request: expected 201, got %d", rec.Code)
	}
	if rec := runRateLimit(limiter, "u2", ""); rec.Code != http.StatusCreated {
		t.Fatalf("u2 first request: expected 201, got %d", rec.Code)
	}
	if rec := runRateLimit(limiter, "u1", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("u1 second request: expected 429, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpenOnStoreError(t *testing.T) {
	limiter := newCountingLimiter(0)
	limiter.err = errors.New("connection refused")

	rec := runRateLimit(limiter, "u1", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected fail-open 201, got %d", rec.Code)
	}
}

func TestRateLimit_IdentityPrecedence(t *testing.T) {
	limiter := newCountingLimiter(100)

	runRateLimit(limiter, "u1", "203.0.113.7, 10.0.0.1")
	runRateLimit(limiter, "", "203.0.113.7, 10.0.0.1")
	runRateLimit(limiter, "", "")

	if len(limiter.identities) != 3 {
		t.Fatalf("expected 3 identities, got %v", limiter.identities)
	}
	if limiter.identities[0] != "uid:u1" {
		t.Errorf("authenticated identity = %q, want uid:u1", limiter.identities[0])
	}
	if limiter.identities[1] != "ip:203.0.113.7" {
		t.Errorf("forwarded identity = %q, want ip:203.0.113.7", limiter.identities[1])
	}
	if !strings.HasPrefix(limiter.identities[2], "ip:") {
		t.Errorf("fallback identity = %q, want ip-prefixed remote addr", limiter.identities[2])
	}
}
