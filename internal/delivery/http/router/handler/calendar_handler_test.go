package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	domainerrors "booking/internal/domain/errors"
	"booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubCalendarUsecase struct {
	status       *usecase.ConnectionStatus
	consentURL   string
	consentErr   error
	completeErr  error
	gotCode      string
	disconnected bool
}

func (s *stubCalendarUsecase) CheckHealth(_ context.Context) *usecase.ConnectionStatus {
	return s.status
}

func (s *stubCalendarUsecase) ConsentURL() (string, error) {
	return s.consentURL, s.consentErr
}

func (s *stubCalendarUsecase) CompleteConsent(_ context.Context, code string) error {
	s.gotCode = code

	return s.completeErr
}

func (s *stubCalendarUsecase) Disconnect(_ context.Context) error {
	s.disconnected = true

	return nil
}

type stubReauthValidator struct {
	ok bool
}

func (s *stubReauthValidator) Validate(_ string) bool {
	return s.ok
}

func newCalendarHandlerForTest(calendar *stubCalendarUsecase, reauth *stubReauthValidator) *CalendarHandler {
	return NewCalendarHandler(calendar, reauth, newDiscardLogger())
}

func TestCalendarHandler_GetStatus_Connected(t *testing.T) {
	calendar := &stubCalendarUsecase{status: &usecase.ConnectionStatus{Connected: true}}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{})

	c, rec := newTestContext(http.MethodGet, "/api/google/status", "")
	require.NoError(t, h.GetStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected":true`)
	assert.NotContains(t, rec.Body.String(), "reason")
}

func TestCalendarHandler_GetStatus_DisconnectedCarriesReason(t *testing.T) {
	calendar := &stubCalendarUsecase{
		status: &usecase.ConnectionStatus{Connected: false, Reason: "credential revoked"},
	}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{})

	c, rec := newTestContext(http.MethodGet, "/api/google/status", "")
	require.NoError(t, h.GetStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected":false`)
	assert.Contains(t, rec.Body.String(), "credential revoked")
}

func TestCalendarHandler_Connect_RedirectsToConsent(t *testing.T) {
	calendar := &stubCalendarUsecase{consentURL: "https://accounts.google.com/o/oauth2/v2/auth?x=1"}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{})

	c, rec := newTestContext(http.MethodGet, "/api/google/connect", "")
	require.NoError(t, h.Connect(c))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, calendar.consentURL, rec.Header().Get("Location"))
}

func TestCalendarHandler_Connect_NotConfigured(t *testing.T) {
	calendar := &stubCalendarUsecase{consentErr: domainerrors.ErrOAuthNotConfigured}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{})

	c, _ := newTestContext(http.MethodGet, "/api/google/connect", "")
	err := h.Connect(c)

	assert.Equal(t, domainerrors.ErrOAuthNotConfigured, err)
}

func TestCalendarHandler_OAuthCallback(t *testing.T) {
	calendar := &stubCalendarUsecase{}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{})

	c, rec := newTestContext(http.MethodGet, "/api/google/oauth/callback?code=auth-code-1", "")
	require.NoError(t, h.OAuthCallback(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth-code-1", calendar.gotCode)
	assert.Contains(t, rec.Body.String(), "Google Agenda connecté")
}

func TestCalendarHandler_OAuthCallback_ProviderError(t *testing.T) {
	h := newCalendarHandlerForTest(&stubCalendarUsecase{}, &stubReauthValidator{})

	c, _ := newTestContext(http.MethodGet, "/api/google/oauth/callback?error=access_denied", "")
	err := h.OAuthCallback(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OAUTH_EXCHANGE_FAILED", appErr.ErrorCode())
}

func TestCalendarHandler_OAuthCallback_MissingCode(t *testing.T) {
	h := newCalendarHandlerForTest(&stubCalendarUsecase{}, &stubReauthValidator{})

	c, _ := newTestContext(http.MethodGet, "/api/google/oauth/callback", "")
	err := h.OAuthCallback(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_INPUT", appErr.ErrorCode())
}

func TestCalendarHandler_Disconnect(t *testing.T) {
	calendar := &stubCalendarUsecase{}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{})

	c, rec := newTestContext(http.MethodPost, "/api/google/disconnect", "")
	require.NoError(t, h.Disconnect(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, calendar.disconnected)
	assert.Contains(t, rec.Body.String(), "Google Agenda déconnecté")
}

func TestCalendarHandler_TempConnect_RejectsInvalidToken(t *testing.T) {
	calendar := &stubCalendarUsecase{consentURL: "https://accounts.google.com/o/oauth2/v2/auth"}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{ok: false})

	c, _ := newTestContext(http.MethodGet, "/api/google/oauth/temp-connect/deadbeef", "")
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")
	err := h.TempConnect(c)

	assert.Equal(t, domainerrors.ErrReauthTokenInvalid, err)
}

func TestCalendarHandler_TempConnect_RedirectsOnValidToken(t *testing.T) {
	calendar := &stubCalendarUsecase{consentURL: "https://accounts.google.com/o/oauth2/v2/auth"}
	h := newCalendarHandlerForTest(calendar, &stubReauthValidator{ok: true})

	c, rec := newTestContext(http.MethodGet, "/api/google/oauth/temp-connect/deadbeef", "")
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")
	require.NoError(t, h.TempConnect(c))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, calendar.consentURL, rec.Header().Get("Location"))
}
