package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"booking/internal/domain/entity"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/repository"
	"booking/internal/domain/service"
	"booking/internal/usecase"
)

// providerGoogle keys the single stored credential.
const providerGoogle = "google"

// Disconnected-status reasons surfaced as availability warnings.
const (
	reasonNotConfigured   = "L'intégration Google Agenda n'est pas configurée"
	reasonNotConnected    = "Google Agenda n'est pas connecté"
	reasonRevoked         = "L'autorisation Google Agenda a été révoquée, une reconnexion est nécessaire"
	reasonProviderFailure = "Google Agenda est momentanément injoignable"
	reasonStoreFailure    = "Le stockage des identifiants est momentanément indisponible"
)

type calendarService struct {
	credentialRepo repository.CredentialRepository
	oauth          service.CalendarOAuth
	logger         *slog.Logger
	now            func() time.Time
}

// NewCalendarService creates the calendar credential lifecycle service.
func NewCalendarService(
	credentialRepo repository.CredentialRepository,
	oauth service.CalendarOAuth,
	logger *slog.Logger,
) usecase.CalendarUsecase {
	return &calendarService{
		credentialRepo: credentialRepo,
		oauth:          oauth,
		logger:         logger,
		now:            time.Now,
	}
}

// CheckHealth exercises the stored refresh credential with a real exchange.
// The credential's health flag tracks the outcome of that attempt:
//
//	success            -> valid, connected
//	permanent failure  -> invalid, credential purged, disconnected
//	transient failure  -> unknown, credential kept, disconnected
//
// A missing record is the only cheap short-circuit; a present record is
// never trusted without refreshing.
func (s *calendarService) CheckHealth(ctx context.Context) *usecase.ConnectionStatus {
	if !s.oauth.Configured() {
		return &usecase.ConnectionStatus{Connected: false, Reason: reasonNotConfigured}
	}

	credential, err := s.credentialRepo.FindCredential(ctx, providerGoogle)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return &usecase.ConnectionStatus{Connected: false, Reason: reasonNotConnected}
		}
		s.logger.Error("failed to load calendar credential",
			slog.Any("error", err),
		)

		return &usecase.ConnectionStatus{Connected: false, Reason: reasonStoreFailure}
	}

	refreshed, err := s.oauth.Refresh(ctx, credential.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrCredentialRevoked) {
			s.logger.Warn("calendar grant revoked, purging stored credential",
				slog.Any("error", err),
			)
			if delErr := s.credentialRepo.DeleteCredential(ctx, providerGoogle); delErr != nil {
				s.logger.Error("failed to purge revoked calendar credential",
					slog.Any("error", delErr),
				)
			}

			return &usecase.ConnectionStatus{Connected: false, Reason: reasonRevoked}
		}

		// Transient failure: keep the credential, downgrade its health.
		s.logger.Warn("calendar credential refresh failed transiently",
			slog.Any("error", err),
		)
		credential.Health = entity.CredentialHealthUnknown
		credential.UpdatedAt = s.now()
		if saveErr := s.credentialRepo.SaveCredential(ctx, credential); saveErr != nil {
			s.logger.Error("failed to record unknown credential health",
				slog.Any("error", saveErr),
			)
		}

		return &usecase.ConnectionStatus{Connected: false, Reason: reasonProviderFailure}
	}

	credential.Health = entity.CredentialHealthValid
	credential.AccessToken = refreshed.AccessToken
	credential.AccessTokenExpiry = refreshed.Expiry
	credential.UpdatedAt = s.now()
	if saveErr := s.credentialRepo.SaveCredential(ctx, credential); saveErr != nil {
		s.logger.Error("failed to record valid credential health",
			slog.Any("error", saveErr),
		)
	}

	return &usecase.ConnectionStatus{Connected: true}
}

// ConsentURL builds the provider consent URL for (re-)authorization.
func (s *calendarService) ConsentURL() (string, error) {
	if !s.oauth.Configured() {
		return "", domainerrors.ErrOAuthNotConfigured
	}

	return s.oauth.ConsentURL(), nil
}

// CompleteConsent exchanges the authorization code and stores the credential.
func (s *calendarService) CompleteConsent(ctx context.Context, code string) error {
	refreshToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Error("authorization code exchange failed",
			slog.Any("error", err),
		)

		return domainerrors.ErrOAuthExchangeFailed.WithDetails(err.Error())
	}
	if refreshToken == "" {
		// Happens when the consent prompt was skipped by the provider.
		return domainerrors.ErrOAuthNoRefreshToken
	}

	now := s.now()
	credential := &entity.CalendarCredential{
		Provider:     providerGoogle,
		RefreshToken: refreshToken,
		Health:       entity.CredentialHealthValid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.credentialRepo.SaveCredential(ctx, credential); err != nil {
		return err
	}

	s.logger.Info("calendar credential stored after consent")

	return nil
}

// Disconnect purges the stored credential.
func (s *calendarService) Disconnect(ctx context.Context) error {
	if err := s.credentialRepo.DeleteCredential(ctx, providerGoogle); err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil
		}

		return err
	}

	s.logger.Info("calendar credential disconnected by admin")

	return nil
}
