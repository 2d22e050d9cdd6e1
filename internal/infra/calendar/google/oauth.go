// Package google implements the calendar capabilities against the Google
// Calendar API: the OAuth authorization-code flow, the refresh probe, the
// free/busy read and the event write.
package google

import (
	"context"
	"strings"

	"booking/config"
	"booking/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	authURL       = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL      = "https://oauth2.googleapis.com/token"
	calendarScope = "https://www.googleapis.com/auth/calendar"
)

// newOAuthConfig builds the oauth2 client configuration, or nil when the
// integration is not configured.
func newOAuthConfig(cfg *config.Config) *oauth2.Config {
	gc := cfg.GoogleCalendar
	if gc == nil || gc.ClientID == "" || gc.ClientSecret == "" {
		return nil
	}

	return &oauth2.Config{
		ClientID:     gc.ClientID,
		ClientSecret: gc.ClientSecret,
		RedirectURL:  gc.RedirectURI,
		Scopes:       []string{calendarScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

// OAuthClient implements service.CalendarOAuth on Google's OAuth 2.0 endpoints.
type OAuthClient struct {
	conf *oauth2.Config
}

// NewOAuthClient creates the Google OAuth client for the calendar account.
func NewOAuthClient(cfg *config.Config) service.CalendarOAuth {
	return &OAuthClient{conf: newOAuthConfig(cfg)}
}

func (c *OAuthClient) Configured() bool {
	return c.conf != nil
}

// ConsentURL requests offline access with a forced consent screen so Google
// returns a refresh token even for an account that already granted access.
func (c *OAuthClient) ConsentURL() string {
	if c.conf == nil {
		return ""
	}

	return c.conf.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	if c.conf == nil {
		return "", errors.New("google oauth client is not configured")
	}

	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange authorization code")
	}

	return token.RefreshToken, nil
}

// Refresh exchanges the stored refresh token for a fresh access token. An
// invalid_grant response means the grant was revoked or expired and wraps
// service.ErrCredentialRevoked; everything else is reported as transient.
func (c *OAuthClient) Refresh(ctx context.Context, refreshToken string) (*service.TokenRefresh, error) {
	if c.conf == nil {
		return nil, errors.New("google oauth client is not configured")
	}

	source := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		if isPermanentGrantFailure(err) {
			return nil, errors.Wrap(service.ErrCredentialRevoked, err.Error())
		}

		return nil, errors.Wrap(err, "failed to refresh access token")
	}

	return &service.TokenRefresh{
		AccessToken: token.AccessToken,
		Expiry:      token.Expiry,
	}, nil
}

// isPermanentGrantFailure recognizes the invalid_grant token-endpoint error,
// the only failure class that justifies purging the stored credential.
func isPermanentGrantFailure(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return false
	}
	if retrieveErr.ErrorCode == "invalid_grant" {
		return true
	}

	// Older token endpoints omit the structured error fields.
	return strings.Contains(string(retrieveErr.Body), "invalid_grant")
}
