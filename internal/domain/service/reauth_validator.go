package service

// ReauthValidator checks the short-lived break-glass tokens gating the
// temporary re-authorization route.
type ReauthValidator interface {
	// Validate reports whether the token is currently acceptable.
	Validate(token string) bool
}
