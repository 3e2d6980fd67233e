package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/claims", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id":   "u1",
		"role":      "staff",
		"tenant_id": "t1",
		"branch_id": "b1",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	rec, c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Errorf("user_id = %q, want u1", got)
	}
	if got, _ := c.Get("tenant_id").(string); got != "t1" {
		t.Errorf("tenant_id = %q, want t1", got)
	}
	if got, _ := c.Get("role").(string); got != "staff" {
		t.Errorf("role = %q, want staff", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, _, err := runAuth(t, "Token abc")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signedToken(t, "other-secret", jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := runAuth(t, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, _, err := runAuth(t, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
