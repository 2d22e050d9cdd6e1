package middleware

import (
	"crypto/subtle"
	"slices"
	"strings"

	"booking/config"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const adminKeyHeader = "X-Admin-OAuth-Key"

const adminRole = "admin"

// AdminMiddleware gates the calendar management endpoints. Two credentials
// are accepted: a CRM-issued JWT carrying the admin role, or the shared
// operations key in the X-Admin-OAuth-Key header.
type AdminMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAdminMiddleware is the constructor for AdminMiddleware.
func NewAdminMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AdminMiddleware {
	return &AdminMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// RequireAdmin authorizes the request via the operations key header or a
// Bearer JWT with the admin role.
func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.headerKeyMatches(c) {
			return next(c)
		}

		if err := m.authenticateAdminJWT(c); err != nil {
			return err
		}

		return next(c)
	}
}

func (m *AdminMiddleware) headerKeyMatches(c echo.Context) bool {
	key := c.Request().Header.Get(adminKeyHeader)
	if key == "" || m.cfg.Admin == nil || m.cfg.Admin.OAuthKey == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(key), []byte(m.cfg.Admin.OAuthKey)) == 1
}

func (m *AdminMiddleware) authenticateAdminJWT(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return domainerrors.ErrUnauthorized.WithDetails("missing credentials")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return domainerrors.ErrUnauthorized.WithDetails("invalid token format, must be Bearer token")
	}

	token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
	if err != nil || !token.Valid {
		return domainerrors.ErrUnauthorized.WithDetails("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domainerrors.ErrUnauthorized.WithDetails("failed to parse token claims")
	}

	rolesClaim, _ := claims["roles"].([]any)
	var roles []string
	for _, r := range rolesClaim {
		if roleStr, ok := r.(string); ok {
			roles = append(roles, roleStr)
		}
	}

	if !slices.Contains(roles, adminRole) {
		return domainerrors.ErrForbidden.WithDetails("admin role required")
	}

	c.Set("roles", roles)

	return nil
}
