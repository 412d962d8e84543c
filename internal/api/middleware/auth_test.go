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

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(testSecret)(next)(c)
	return c, err
}

func TestAuthValidTokenInjectsClaims(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"principal": "WV-OWNER",
		"role":      "user",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get("principal"); got != "WV-OWNER" {
		t.Errorf("principal claim = %v", got)
	}
	if got := c.Get("role"); got != "user" {
		t.Errorf("role claim = %v", got)
	}
}

func TestAuthRejections(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"principal": "WV-OWNER",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"principal": "WV-OWNER",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runAuth(t, tt.header)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", httpErr.Code)
			}
		})
	}
}

func TestAuthRejectsUnexpectedAlgorithm(t *testing.T) {
	// alg=none with an empty signature must never validate
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"principal": "WV-OWNER",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, authErr := runAuth(t, "Bearer "+token)
	httpErr, ok := authErr.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", authErr)
	}
}
