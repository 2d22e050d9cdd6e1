package impl

import (
	"context"
	"testing"
	"time"

	"booking/internal/domain/entity"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/repository"
	"booking/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCalendarServiceForTest(repo *mockCredentialRepository, oauth *mockCalendarOAuth) *calendarService {
	svc := NewCalendarService(repo, oauth, newDiscardLogger()).(*calendarService)
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 22, 12, 0, 0, 0, time.UTC)
	}

	return svc
}

func TestCalendarService_CheckHealth_NotConfigured(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(false)

	svc := newCalendarServiceForTest(repo, oauth)
	status := svc.CheckHealth(context.Background())

	assert.False(t, status.Connected)
	assert.Equal(t, reasonNotConfigured, status.Reason)
	repo.AssertNotCalled(t, "FindCredential", mock.Anything, mock.Anything)
}

func TestCalendarService_CheckHealth_NoStoredCredential(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(true)
	repo.On("FindCredential", mock.Anything, providerGoogle).Return(nil, repository.ErrCredentialNotFound)

	svc := newCalendarServiceForTest(repo, oauth)
	status := svc.CheckHealth(context.Background())

	assert.False(t, status.Connected)
	assert.Equal(t, reasonNotConnected, status.Reason)
	// Absence is the only case decided without a refresh attempt.
	oauth.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestCalendarService_CheckHealth_RefreshSucceeds(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(true)

	stored := &entity.CalendarCredential{
		Provider:     providerGoogle,
		RefreshToken: "refresh-token",
		Health:       entity.CredentialHealthUnknown,
	}
	repo.On("FindCredential", mock.Anything, providerGoogle).Return(stored, nil)

	expiry := time.Date(2026, time.February, 22, 13, 0, 0, 0, time.UTC)
	oauth.On("Refresh", mock.Anything, "refresh-token").
		Return(&service.TokenRefresh{AccessToken: "fresh-access", Expiry: expiry}, nil)

	repo.On("SaveCredential", mock.Anything, mock.MatchedBy(func(c *entity.CalendarCredential) bool {
		return c.Health == entity.CredentialHealthValid && c.AccessToken == "fresh-access"
	})).Return(nil)

	svc := newCalendarServiceForTest(repo, oauth)
	status := svc.CheckHealth(context.Background())

	assert.True(t, status.Connected)
	assert.Empty(t, status.Reason)
	repo.AssertExpectations(t)
	oauth.AssertExpectations(t)
}

func TestCalendarService_CheckHealth_PermanentRevocationPurges(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(true)

	stored := &entity.CalendarCredential{
		Provider:     providerGoogle,
		RefreshToken: "revoked-token",
		Health:       entity.CredentialHealthValid,
	}
	repo.On("FindCredential", mock.Anything, providerGoogle).Return(stored, nil)
	oauth.On("Refresh", mock.Anything, "revoked-token").
		Return(nil, errors.Wrap(service.ErrCredentialRevoked, "invalid_grant"))
	repo.On("DeleteCredential", mock.Anything, providerGoogle).Return(nil)

	svc := newCalendarServiceForTest(repo, oauth)
	status := svc.CheckHealth(context.Background())

	assert.False(t, status.Connected)
	assert.Equal(t, reasonRevoked, status.Reason)
	repo.AssertCalled(t, "DeleteCredential", mock.Anything, providerGoogle)
	repo.AssertNotCalled(t, "SaveCredential", mock.Anything, mock.Anything)
}

func TestCalendarService_CheckHealth_TransientFailureKeepsCredential(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(true)

	stored := &entity.CalendarCredential{
		Provider:     providerGoogle,
		RefreshToken: "refresh-token",
		Health:       entity.CredentialHealthValid,
	}
	repo.On("FindCredential", mock.Anything, providerGoogle).Return(stored, nil)
	oauth.On("Refresh", mock.Anything, "refresh-token").
		Return(nil, errors.New("connection timed out"))

	// The credential survives with its health downgraded, never deleted.
	repo.On("SaveCredential", mock.Anything, mock.MatchedBy(func(c *entity.CalendarCredential) bool {
		return c.Health == entity.CredentialHealthUnknown && c.RefreshToken == "refresh-token"
	})).Return(nil)

	svc := newCalendarServiceForTest(repo, oauth)
	status := svc.CheckHealth(context.Background())

	assert.False(t, status.Connected)
	assert.Equal(t, reasonProviderFailure, status.Reason)
	repo.AssertNotCalled(t, "DeleteCredential", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestCalendarService_CheckHealth_StoreFailure(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(true)
	repo.On("FindCredential", mock.Anything, providerGoogle).Return(nil, errors.New("connection refused"))

	svc := newCalendarServiceForTest(repo, oauth)
	status := svc.CheckHealth(context.Background())

	assert.False(t, status.Connected)
	assert.Equal(t, reasonStoreFailure, status.Reason)
	oauth.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestCalendarService_ConsentURL(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(true)
	oauth.On("ConsentURL").Return("https://accounts.google.com/consent")

	svc := newCalendarServiceForTest(repo, oauth)
	url, err := svc.ConsentURL()
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.google.com/consent", url)
}

func TestCalendarService_ConsentURL_NotConfigured(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("Configured").Return(false)

	svc := newCalendarServiceForTest(repo, oauth)
	_, err := svc.ConsentURL()
	assert.Equal(t, domainerrors.ErrOAuthNotConfigured, err)
}

func TestCalendarService_CompleteConsent_StoresValidCredential(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("new-refresh-token", nil)

	repo.On("SaveCredential", mock.Anything, mock.MatchedBy(func(c *entity.CalendarCredential) bool {
		return c.Provider == providerGoogle &&
			c.RefreshToken == "new-refresh-token" &&
			c.Health == entity.CredentialHealthValid
	})).Return(nil)

	svc := newCalendarServiceForTest(repo, oauth)
	require.NoError(t, svc.CompleteConsent(context.Background(), "auth-code"))
	repo.AssertExpectations(t)
}

func TestCalendarService_CompleteConsent_NoRefreshToken(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("", nil)

	svc := newCalendarServiceForTest(repo, oauth)
	err := svc.CompleteConsent(context.Background(), "auth-code")
	assert.Equal(t, domainerrors.ErrOAuthNoRefreshToken, err)
	repo.AssertNotCalled(t, "SaveCredential", mock.Anything, mock.Anything)
}

func TestCalendarService_CompleteConsent_ExchangeFails(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	oauth.On("ExchangeCode", mock.Anything, "bad-code").Return("", errors.New("invalid code"))

	svc := newCalendarServiceForTest(repo, oauth)
	err := svc.CompleteConsent(context.Background(), "bad-code")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OAUTH_EXCHANGE_FAILED", appErr.ErrorCode())
}

func TestCalendarService_Disconnect_ToleratesMissingCredential(t *testing.T) {
	repo := new(mockCredentialRepository)
	oauth := new(mockCalendarOAuth)
	repo.On("DeleteCredential", mock.Anything, providerGoogle).Return(repository.ErrCredentialNotFound)

	svc := newCalendarServiceForTest(repo, oauth)
	assert.NoError(t, svc.Disconnect(context.Background()))
}
