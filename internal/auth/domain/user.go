package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system.
// Password holds the Argon2id hash, never the plain text.
// PasswordChangedAt drives the password age policy: when the password is
// older than the configured maximum age, sign-in is refused until it changes.
type User struct {
	ID                uuid.UUID
	Username          string
	Email             string
	Password          string
	Authority         Authority
	IsActive          bool
	PasswordChangedAt time.Time
	CreatedAt         time.Time
}

// PasswordExpired reports whether the user's password is older than maxAge at
// the given reference time.
func (u *User) PasswordExpired(now time.Time, maxAge time.Duration) bool {
	return now.Sub(u.PasswordChangedAt) > maxAge
}

// SignupInput contains the parameters for registering a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput contains the credentials presented at sign-in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains the result of a successful sign-in.
// Token is the signed access token; IssuedAt and ExpiresAt mirror the
// iat and exp claims embedded in it.
type LoginOutput struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
