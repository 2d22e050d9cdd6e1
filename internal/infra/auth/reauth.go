package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"

	"booking/config"
	"booking/internal/domain/service"
)

const (
	// reauthBucketSeconds is the width of one token validity bucket.
	reauthBucketSeconds = 600
	// reauthTokenLength is the number of hex characters kept from the MAC.
	reauthTokenLength = 8
	// reauthBucketTolerance accepts tokens from this many buckets on either
	// side of the current one, covering clock skew and the time it takes to
	// type the token in.
	reauthBucketTolerance = 2
)

// ReauthTokenValidator validates the short-lived break-glass tokens that gate
// the temporary re-authorization route. A token is the first 8 hex characters
// of HMAC-SHA256 over the decimal 600-second time bucket, so it can be
// computed offline by anyone holding the shared secret.
type ReauthTokenValidator struct {
	secret []byte
	now    func() time.Time
}

// NewReauthTokenValidator creates a validator over the configured shared
// secret. With no secret configured every token is rejected.
func NewReauthTokenValidator(cfg *config.Config) service.ReauthValidator {
	var secret []byte
	if cfg.Reauth != nil {
		secret = []byte(cfg.Reauth.Secret)
	}

	return &ReauthTokenValidator{
		secret: secret,
		now:    time.Now,
	}
}

// Validate reports whether the token matches any bucket inside the tolerance
// window. Comparison is constant-time per candidate.
func (v *ReauthTokenValidator) Validate(token string) bool {
	if len(v.secret) == 0 || len(token) != reauthTokenLength {
		return false
	}

	bucket := v.now().Unix() / reauthBucketSeconds
	for offset := int64(-reauthBucketTolerance); offset <= reauthBucketTolerance; offset++ {
		expected := v.tokenForBucket(bucket + offset)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1 {
			return true
		}
	}

	return false
}

func (v *ReauthTokenValidator) tokenForBucket(bucket int64) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strconv.FormatInt(bucket, 10)))

	return hex.EncodeToString(mac.Sum(nil))[:reauthTokenLength]
}
