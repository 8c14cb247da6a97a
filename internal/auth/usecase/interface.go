// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on duplicate email.
	Create(ctx context.Context, user *authDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)
}

// UserLogRepository defines persistence operations for user activity logs.
type UserLogRepository interface {
	// Create stores a new user log entry.
	Create(ctx context.Context, log *authDomain.UserLog) error

	// List retrieves user logs ordered by ID descending (newest first) with
	// pagination and optional filtering. Nil filter means no filtering.
	List(
		ctx context.Context,
		offset, limit int,
		filter *authDomain.UserLogFilter,
	) ([]*authDomain.UserLog, error)
}

// AuthUseCase defines the token and session lifecycle operations.
type AuthUseCase interface {
	// Signup registers a new user account with USER authority.
	// Returns ErrUserAlreadyExists if the email is taken.
	Signup(ctx context.Context, input *authDomain.SignupInput) (*authDomain.User, error)

	// Login authenticates credentials and issues a signed access token.
	//
	// Every outcome is recorded in the user log. Failure modes, in evaluation
	// order:
	//   - unknown email: ErrUnknownUser (logged without a user ID)
	//   - inactive account: ErrUserInactive
	//   - password past maximum age: ErrCredentialsExpired, and all of the
	//     user's outstanding tokens are invalidated
	//   - password mismatch: ErrInvalidCredentials
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Logout revokes the presented token until its own expiration and records
	// the logout. An expired token can still be logged out; a missing or
	// already revoked token returns ErrInvalidToken.
	Logout(ctx context.Context, token string) error

	// Authenticate validates an access token for request authorization and
	// returns its claims. Rejects revoked, expired, and invalidated tokens
	// with ErrInvalidToken-wrapped errors; a token whose account no longer
	// exists is invalid, and a deactivated account returns ErrUserInactive.
	Authenticate(ctx context.Context, token string) (*authDomain.AccessClaims, error)
}

// AdminUseCase defines administrative operations over users and their logs.
type AdminUseCase interface {
	// ExpireUserTokens invalidates all tokens issued to the user up to now.
	// Returns ErrUserNotFound if the user doesn't exist.
	ExpireUserTokens(ctx context.Context, userID uuid.UUID) error

	// ListUserLogs retrieves user logs with pagination and optional filtering.
	ListUserLogs(
		ctx context.Context,
		offset, limit int,
		filter *authDomain.UserLogFilter,
	) ([]*authDomain.UserLog, error)

	// VerifyLogs checks the signatures of all user logs created within the
	// given time range and reports the results.
	VerifyLogs(ctx context.Context, startTime, endTime time.Time) (*VerificationReport, error)
}

// VerificationReport summarizes the result of a batch log signature verification.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidLogs   []uuid.UUID
}
