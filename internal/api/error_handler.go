package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/consumershield/claims-core/internal/api/metrics"
	"github.com/consumershield/claims-core/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Tenant mismatch
	// already presents as ErrClaimNotFound at the repository, so
	// cross-tenant probes see a plain 404 here.
	switch {
	case errors.Is(err, domain.ErrClaimNotFound):
		return http.StatusNotFound, "claim not found"
	case errors.Is(err, domain.ErrUnauthorized):
		metrics.AccessDeniedTotal.WithLabelValues(c.Path()).Inc()
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		metrics.AccessDeniedTotal.WithLabelValues(c.Path()).Inc()
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, "invalid status"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "claim was modified concurrently, retry"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
