package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking/config"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/infra/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test-access-secret"

func newAdminConfig(oauthKey string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret
	if oauthKey != "" {
		cfg.Admin = &config.AdminConfig{OAuthKey: oauthKey}
	}

	return cfg
}

func newAdminMiddlewareForTest(t *testing.T, cfg *config.Config) *AdminMiddleware {
	t.Helper()

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAdminMiddleware(tokenSvc, cfg)
}

func signedToken(t *testing.T, secret string, roles []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": "crm-user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if roles != nil {
		values := make([]any, 0, len(roles))
		for _, role := range roles {
			values = append(values, role)
		}
		claims["roles"] = values
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func runGuard(m *AdminMiddleware, decorate func(*http.Request)) (called bool, err error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/google/status", nil)
	if decorate != nil {
		decorate(req)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := m.RequireAdmin(func(echo.Context) error {
		called = true

		return nil
	})

	return called, handler(c)
}

func TestRequireAdmin_HeaderKeyMatches(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig("ops-shared-key"))

	called, err := runGuard(m, func(req *http.Request) {
		req.Header.Set("X-Admin-OAuth-Key", "ops-shared-key")
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRequireAdmin_HeaderKeyMismatchFallsBackToJWT(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig("ops-shared-key"))

	called, err := runGuard(m, func(req *http.Request) {
		req.Header.Set("X-Admin-OAuth-Key", "wrong-key")
	})

	assert.False(t, called)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.ErrorCode())
}

func TestRequireAdmin_NoCredentials(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig(""))

	called, err := runGuard(m, nil)

	assert.False(t, called)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.ErrorCode())
}

func TestRequireAdmin_ValidAdminJWT(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig(""))
	token := signedToken(t, testAccessSecret, []string{"support", "admin"})

	called, err := runGuard(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRequireAdmin_JWTWithoutAdminRole(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig(""))
	token := signedToken(t, testAccessSecret, []string{"support"})

	called, err := runGuard(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.False(t, called)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.ErrorCode())
}

func TestRequireAdmin_WrongSigningSecret(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig(""))
	token := signedToken(t, "other-secret", []string{"admin"})

	called, err := runGuard(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.False(t, called)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.ErrorCode())
}

func TestRequireAdmin_MalformedAuthorizationHeader(t *testing.T) {
	m := newAdminMiddlewareForTest(t, newAdminConfig(""))

	called, err := runGuard(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic abc123")
	})

	assert.False(t, called)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.ErrorCode())
}
