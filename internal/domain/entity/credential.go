package entity

import "time"

// CredentialHealth is the empirically verified state of the stored calendar
// credential. It is driven only by explicit refresh attempts, never inferred
// from the record's mere presence in storage. Treating "record exists" as
// "token valid" was the original production defect.
type CredentialHealth string

const (
	// CredentialHealthUnknown means the last refresh attempt failed
	// transiently (network, rate limit) or no attempt has been made yet.
	CredentialHealthUnknown CredentialHealth = "unknown"
	// CredentialHealthValid means the last refresh exchange succeeded.
	CredentialHealthValid CredentialHealth = "valid"
	// CredentialHealthInvalid means the grant was permanently revoked.
	CredentialHealthInvalid CredentialHealth = "invalid"
)

// CalendarCredential holds the OAuth grant for the external calendar
// account. Created on successful consent; purged when a refresh attempt
// fails with a permanent-revocation signal; never silently resurrected,
// re-creation requires a fresh consent flow.
type CalendarCredential struct {
	Provider          string
	RefreshToken      string
	AccessToken       string
	AccessTokenExpiry time.Time
	Health            CredentialHealth
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
