// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authService "github.com/allisson/accounts/internal/auth/service"
	"github.com/allisson/accounts/internal/config"
	apperrors "github.com/allisson/accounts/internal/errors"
	appValidation "github.com/allisson/accounts/internal/validation"
)

// authUseCase implements AuthUseCase for the token and session lifecycle.
type authUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	userLogRepo     UserLogRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	revocation      authService.RevocationRegistry
	logSigner       authService.LogSigner
	logSigningKey   []byte
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
// logSigningKey may be nil, which disables user log signing.
func NewAuthUseCase(
	cfg *config.Config,
	userRepo UserRepository,
	userLogRepo UserLogRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
	revocation authService.RevocationRegistry,
	logSigner authService.LogSigner,
	logSigningKey []byte,
) AuthUseCase {
	return &authUseCase{
		config:          cfg,
		userRepo:        userRepo,
		userLogRepo:     userLogRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		revocation:      revocation,
		logSigner:       logSigner,
		logSigningKey:   logSigningKey,
	}
}

// validateSignupInput validates the registration input.
func (a *authUseCase) validateSignupInput(input *authDomain.SignupInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("username must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Signup registers a new user account with USER authority.
// The password is hashed with Argon2id before storage and PasswordChangedAt
// starts at the creation time, anchoring the password age policy.
func (a *authUseCase) Signup(
	ctx context.Context,
	input *authDomain.SignupInput,
) (*authDomain.User, error) {
	if err := a.validateSignupInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := a.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		ID:                uuid.Must(uuid.NewV7()),
		Username:          strings.TrimSpace(input.Username),
		Email:             strings.TrimSpace(strings.ToLower(input.Email)),
		Password:          hashedPassword,
		Authority:         authDomain.AuthorityUser,
		IsActive:          true,
		PasswordChangedAt: now,
		CreatedAt:         now,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates credentials and issues a signed access token.
//
// Outcomes are checked in a fixed order so that each failure mode produces a
// distinct user log entry: unknown email, inactive account, expired password,
// wrong password, success. The HTTP layer collapses unknown email and wrong
// password into the same response; the log keeps the precise reason.
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			if logErr := a.recordLog(
				ctx,
				nil,
				authDomain.LogTypeLoginFailure,
				fmt.Sprintf("login failed: unknown email %s", email),
			); logErr != nil {
				return nil, logErr
			}
			return nil, authDomain.ErrUnknownUser
		}
		return nil, err
	}

	if !user.IsActive {
		if logErr := a.recordLog(
			ctx,
			&user.ID,
			authDomain.LogTypeLoginFailure,
			"login failed: user is inactive",
		); logErr != nil {
			return nil, logErr
		}
		return nil, authDomain.ErrUserInactive
	}

	now := time.Now().UTC()
	if user.PasswordExpired(now, a.config.PasswordMaxAge) {
		if logErr := a.recordLog(
			ctx,
			&user.ID,
			authDomain.LogTypeLoginFailure,
			"login failed: password expired",
		); logErr != nil {
			return nil, logErr
		}
		// An expired password also voids every session the user still holds.
		a.revocation.InvalidateUser(user.ID, now)
		return nil, authDomain.ErrCredentialsExpired
	}

	if !a.passwordService.ComparePassword(input.Password, user.Password) {
		if logErr := a.recordLog(
			ctx,
			&user.ID,
			authDomain.LogTypeLoginFailure,
			"login failed: invalid password",
		); logErr != nil {
			return nil, logErr
		}
		return nil, authDomain.ErrInvalidCredentials
	}

	token, claims, err := a.tokenService.Issue(user)
	if err != nil {
		return nil, err
	}

	if logErr := a.recordLog(
		ctx,
		&user.ID,
		authDomain.LogTypeLoginSuccess,
		"login succeeded",
	); logErr != nil {
		return nil, logErr
	}

	return &authDomain.LoginOutput{
		Token:     token,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Logout revokes the presented token and records the logout.
//
// A token past its expiration can still be logged out: the claims survive the
// expiry check, and revoking it is harmless. A token that is missing, already
// revoked, or undecodable returns ErrInvalidToken.
func (a *authUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return authService.ErrTokenEmpty
	}

	if a.revocation.IsBlacklisted(token) {
		return apperrors.Wrap(authDomain.ErrInvalidToken, "token already revoked")
	}

	claims, err := a.tokenService.Decode(token)
	if err != nil && !errors.Is(err, authService.ErrTokenExpired) {
		return err
	}

	user, err := a.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return apperrors.Wrap(authDomain.ErrInvalidToken, "token user not found")
		}
		return err
	}

	// The token blocks itself only for its remaining lifetime.
	a.revocation.Blacklist(token, claims.ExpiresAt)

	return a.recordLog(ctx, &user.ID, authDomain.LogTypeLogout, "user logged out")
}

// Authenticate validates an access token for request authorization.
//
// Checks, in order: revocation of the exact token, signature and expiration,
// account resolution by the email subject, the per-user invalidation cutoff,
// and finally that the account is active. Token failures map to
// ErrInvalidToken-wrapped errors so callers respond uniformly; a deactivated
// account returns ErrUserInactive.
//
// The authority in the returned claims comes from the token itself, not from
// the account row: an authority change takes effect only once the user's
// outstanding tokens are invalidated and reissued.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.AccessClaims, error) {
	if token == "" {
		return nil, authService.ErrTokenEmpty
	}

	if a.revocation.IsBlacklisted(token) {
		return nil, apperrors.Wrap(authDomain.ErrInvalidToken, "token is revoked")
	}

	claims, err := a.tokenService.Decode(token)
	if err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, apperrors.Wrap(authDomain.ErrInvalidToken, "token user not found")
		}
		return nil, err
	}

	if a.revocation.IsInvalidated(user.ID, claims.IssuedAt) {
		return nil, apperrors.Wrap(authDomain.ErrInvalidToken, "token is invalidated")
	}

	if !user.IsActive {
		return nil, authDomain.ErrUserInactive
	}

	return claims, nil
}

// recordLog persists a user log entry, signing it when a signing key is configured.
func (a *authUseCase) recordLog(
	ctx context.Context,
	userID *uuid.UUID,
	logType authDomain.LogType,
	message string,
) error {
	log := &authDomain.UserLog{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Type:      logType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if len(a.logSigningKey) > 0 {
		signature, err := a.logSigner.Sign(a.logSigningKey, log)
		if err != nil {
			return apperrors.Wrap(err, "failed to sign user log")
		}
		log.Signature = signature
	}

	if err := a.userLogRepo.Create(ctx, log); err != nil {
		return apperrors.Wrap(err, "failed to create user log")
	}

	return nil
}
