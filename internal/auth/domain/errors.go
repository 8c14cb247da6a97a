package domain

import (
	"github.com/allisson/accounts/internal/errors"
)

// Authentication errors.
var (
	// ErrUserNotFound indicates a user with the specified ID or email was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUnknownUser indicates a sign-in attempt with an email that has no account.
	// Maps to the same HTTP response as ErrInvalidCredentials to prevent enumeration.
	ErrUnknownUser = errors.Wrap(errors.ErrUnauthorized, "unknown user")

	// ErrInvalidCredentials indicates the presented password did not match.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrCredentialsExpired indicates the password is past its maximum age and
	// must be changed before a new session can start.
	ErrCredentialsExpired = errors.Wrap(errors.ErrPasswordExpired, "credentials expired")

	// ErrInvalidToken indicates the access token is missing, malformed, revoked,
	// expired, or otherwise unusable.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrUserInactive indicates the account exists but is deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is inactive")

	// ErrSignatureInvalid indicates a user log signature failed verification.
	ErrSignatureInvalid = errors.New("user log signature is invalid")
)
