package handler

import (
	"log/slog"
	"net/http"

	"booking/internal/delivery/http/response"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/service"
	"booking/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CalendarHandler exposes the Google Calendar connection management routes.
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
	reauth          service.ReauthValidator
	logger          *slog.Logger
}

// NewCalendarHandler is the constructor for CalendarHandler.
func NewCalendarHandler(
	calendarUsecase usecase.CalendarUsecase,
	reauth service.ReauthValidator,
	logger *slog.Logger,
) *CalendarHandler {
	return &CalendarHandler{
		calendarUsecase: calendarUsecase,
		reauth:          reauth,
		logger:          logger,
	}
}

type statusResponse struct {
	Connected bool   `json:"connected"`
	Reason    string `json:"reason,omitempty"`
}

// GetStatus reports the empirically verified calendar connection state.
// GET /api/google/status
func (h *CalendarHandler) GetStatus(c echo.Context) error {
	status := h.calendarUsecase.CheckHealth(c.Request().Context())

	return response.Success(c, http.StatusOK, statusResponse{
		Connected: status.Connected,
		Reason:    status.Reason,
	}, "")
}

// Connect redirects the admin's browser to the provider consent screen.
// GET /api/google/connect
func (h *CalendarHandler) Connect(c echo.Context) error {
	url, err := h.calendarUsecase.ConsentURL()
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// OAuthCallback completes the consent flow. Google redirects the browser
// here, so the route carries no admin guard; the authorization code itself
// is the proof of consent.
// GET /api/google/oauth/callback
func (h *CalendarHandler) OAuthCallback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return domainerrors.ErrOAuthExchangeFailed.WithDetails(errParam)
	}

	code := c.QueryParam("code")
	if code == "" {
		return domainerrors.ErrInvalidInput.WithDetails("missing authorization code")
	}

	if err := h.calendarUsecase.CompleteConsent(c.Request().Context(), code); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Google Agenda connecté")
}

// Disconnect purges the stored calendar credential.
// POST /api/google/disconnect
func (h *CalendarHandler) Disconnect(c echo.Context) error {
	if err := h.calendarUsecase.Disconnect(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Google Agenda déconnecté")
}

// TempConnect is the break-glass re-authorization entry point, reachable only
// when explicitly enabled in configuration. A time-derived HMAC token stands
// in for the regular admin credentials; every attempt is logged.
// GET /api/google/oauth/temp-connect/:token
func (h *CalendarHandler) TempConnect(c echo.Context) error {
	token := c.Param("token")
	if !h.reauth.Validate(token) {
		h.logger.Warn("break-glass reauth token rejected",
			slog.String("remote_ip", c.RealIP()),
		)

		return domainerrors.ErrReauthTokenInvalid
	}

	url, err := h.calendarUsecase.ConsentURL()
	if err != nil {
		return err
	}

	h.logger.Warn("break-glass reauth token accepted, redirecting to consent",
		slog.String("remote_ip", c.RealIP()),
	)

	return c.Redirect(http.StatusTemporaryRedirect, url)
}
