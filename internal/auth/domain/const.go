// Package domain defines authentication domain models.
// Implements user credentials, access tokens, revocation state, and user activity logging.
package domain

// Authority defines the permission level assigned to a user.
// The authority is embedded in access token claims, so changes only take
// effect after the user's outstanding tokens are invalidated.
type Authority string

const (
	// AuthorityUser is the default authority for regular accounts.
	AuthorityUser Authority = "USER"

	// AuthorityAdmin grants access to administrative operations.
	AuthorityAdmin Authority = "ADMIN"
)

// LogType classifies user activity log entries.
type LogType string

const (
	// LogTypeLoginSuccess records a successful sign-in.
	LogTypeLoginSuccess LogType = "LOGIN_SUCCESS"

	// LogTypeLoginFailure records a failed sign-in attempt with the reason in the message.
	LogTypeLoginFailure LogType = "LOGIN_FAILURE"

	// LogTypeLogout records a logout.
	LogTypeLogout LogType = "LOGOUT"
)

// ValidAuthority reports whether the given value is a known authority.
func ValidAuthority(a Authority) bool {
	switch a {
	case AuthorityUser, AuthorityAdmin:
		return true
	}
	return false
}

// ValidLogType reports whether the given value is a known log type.
func ValidLogType(t LogType) bool {
	switch t {
	case LogTypeLoginSuccess, LogTypeLoginFailure, LogTypeLogout:
		return true
	}
	return false
}
