package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/consumershield/claims-core/internal/api/metrics"
	redisdb "github.com/consumershield/claims-core/internal/infrastructure/db/redis"
)

// Limiter abstracts the windowed counter store backing the rate limiter.
type Limiter interface {
	Allow(ctx context.Context, action, identity string) (redisdb.Decision, error)
}

// RateLimit bounds the call rate of a named mutating action per
// identity. The identity is the authenticated user id when present,
// otherwise the first X-Forwarded-For hop, then X-Real-IP, then the
// remote address. The forwarded headers are spoofable behind an
// untrusted proxy; that is an accepted trust boundary, not a defect.
//
// When the counter store is unreachable the limiter fails open: traffic
// passes and the failure is logged. Blocking every mutation because the
// counter store is down would amplify the outage.
func RateLimit(limiter Limiter, action string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := requestIdentity(c)

			decision, err := limiter.Allow(c.Request().Context(), action, identity)
			if err != nil {
				log.Warn().Err(err).Str("action", action).Msg("rate limit store unreachable, failing open")
				return next(c)
			}

			if decision.Limited {
				metrics.RateLimitHitsTotal.WithLabelValues(action).Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			return next(c)
		}
	}
}

// requestIdentity derives the rate-limit identity for the request.
func requestIdentity(c echo.Context) string {
	if userID, _ := c.Get("user_id").(string); userID != "" {
		return "uid:" + userID
	}
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return "ip:" + strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if realIP := c.Request().Header.Get("X-Real-IP"); realIP != "" {
		return "ip:" + realIP
	}
	return "ip:" + c.Request().RemoteAddr
}
