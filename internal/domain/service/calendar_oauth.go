package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrCredentialRevoked signals that the refresh grant is permanently invalid
// (revoked or expired consent). Wrapped into refresh errors by the OAuth
// infrastructure so the health monitor can tell a purge-worthy failure from
// a transient one.
var ErrCredentialRevoked = errors.New("calendar grant permanently revoked")

// TokenRefresh is the outcome of a successful refresh-credential exchange.
type TokenRefresh struct {
	AccessToken string
	Expiry      time.Time
}

// CalendarOAuth drives the authorization-code flow for the calendar account
// and the active refresh probe used to verify credential health.
type CalendarOAuth interface {
	// Configured reports whether an OAuth client is configured at all.
	Configured() bool

	// ConsentURL builds the provider consent URL. The flow requests offline
	// access with forced consent so a refresh token is always returned.
	ConsentURL() string

	// ExchangeCode exchanges an authorization code for a refresh token.
	ExchangeCode(ctx context.Context, code string) (refreshToken string, err error)

	// Refresh performs a real refresh-credential exchange against the
	// provider. A permanent-revocation failure wraps ErrCredentialRevoked;
	// any other error is transient (network, rate limit, provider outage).
	Refresh(ctx context.Context, refreshToken string) (*TokenRefresh, error)
}
