package service

import "github.com/golang-jwt/jwt/v5"

// TokenService validates JWT access tokens issued by the CRM auth system.
// This service only verifies; token issuance belongs to the CRM.
type TokenService interface {
	// ValidateToken checks the validity of a token string against a secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
}
