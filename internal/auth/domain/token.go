package domain

import (
	"time"
)

// AccessClaims holds the validated claims of an access token. The subject is
// the account email; the account id is not embedded and callers resolve it
// through the user repository.
// Timestamps carry second precision, matching the JWT NumericDate encoding.
type AccessClaims struct {
	Email     string
	Authority Authority
	IssuedAt  time.Time
	ExpiresAt time.Time
}
