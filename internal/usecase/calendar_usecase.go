package usecase

import "context"

// ConnectionStatus is the verified state of the calendar connection.
// Reason is human-readable and set only when Connected is false.
type ConnectionStatus struct {
	Connected bool
	Reason    string
}

// CalendarUsecase owns the calendar credential lifecycle: the active health
// probe and the consent/disconnect management operations.
type CalendarUsecase interface {
	// CheckHealth empirically verifies the stored credential by performing
	// a real refresh exchange. It never claims Connected without having
	// refreshed; only the absence of a stored credential short-circuits the
	// network round-trip. Never returns an error: every failure mode is a
	// disconnected status with a reason.
	CheckHealth(ctx context.Context) *ConnectionStatus

	// ConsentURL builds the provider consent URL for (re-)authorization.
	ConsentURL() (string, error)

	// CompleteConsent exchanges the authorization code returned by the
	// provider and stores the resulting credential.
	CompleteConsent(ctx context.Context, code string) error

	// Disconnect purges the stored credential.
	Disconnect(ctx context.Context) error
}
