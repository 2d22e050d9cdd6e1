// Package errors defines the application error taxonomy exposed to API
// clients, mapped to HTTP by the delivery layer.
package errors

import (
	"fmt"
	"net/http"

	"booking/internal/domain/schedule"
	"booking/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Booking pipeline outcomes. The guard relies on these being distinct so the
// client can tell "that slot is taken" apart from "temporarily unable to book".
var (
	// ErrInvalidInput rejects malformed or logically inconsistent requests
	// (unparsable timestamp, end before start). Never retried.
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Les horaires demandés sont invalides",
		"",
	)

	// ErrNoticeTooShort rejects a slot starting inside the minimum-notice
	// window. The message carries the exact requirement so the client can
	// explain it to the user.
	ErrNoticeTooShort = NewBaseError(
		http.StatusUnprocessableEntity,
		"NOTICE_TOO_SHORT",
		fmt.Sprintf("Les rendez-vous doivent être réservés au moins %d heures à l'avance", schedule.MinNoticeHours),
		"",
	)

	// ErrCalendarUnavailable covers an invalid/expired credential or an
	// unreachable provider.
	ErrCalendarUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"CALENDAR_UNAVAILABLE",
		"La réservation est momentanément indisponible",
		"",
	)

	// ErrSlotConflict means the race was lost to another booking between
	// display and commit.
	ErrSlotConflict = NewBaseError(
		http.StatusConflict,
		"SLOT_CONFLICT",
		"Ce créneau vient d'être réservé, veuillez en choisir un autre",
		"",
	)

	// ErrCommitFailed means the provider accepted the pre-checks but
	// rejected the event creation itself. Not retried automatically, to
	// avoid duplicate-event risk.
	ErrCommitFailed = NewBaseError(
		http.StatusBadGateway,
		"COMMIT_FAILED",
		"La création du rendez-vous a échoué, veuillez réessayer plus tard",
		"",
	)
)

// Calendar management errors.
var (
	ErrOAuthNotConfigured = NewBaseError(
		http.StatusServiceUnavailable,
		"OAUTH_NOT_CONFIGURED",
		"L'intégration Google Agenda n'est pas configurée",
		"",
	)

	ErrOAuthExchangeFailed = NewBaseError(
		http.StatusBadGateway,
		"OAUTH_EXCHANGE_FAILED",
		"L'échange du code d'autorisation a échoué",
		"",
	)

	ErrOAuthNoRefreshToken = NewBaseError(
		http.StatusBadGateway,
		"OAUTH_NO_REFRESH_TOKEN",
		"Google n'a pas retourné de refresh token, relancez le consentement",
		"",
	)

	ErrReauthTokenInvalid = NewBaseError(
		http.StatusForbidden,
		"REAUTH_TOKEN_INVALID",
		"Jeton de réautorisation invalide ou expiré",
		"",
	)
)

// General errors.
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Les données soumises sont invalides",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Identifiants administrateur manquants ou invalides",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Accès refusé",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Erreur interne du service",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Erreur d'accès à la base de données"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
