// Package service provides technical services for authentication operations.
//
// This package implements reusable services for password hashing, access token
// signing and validation, in-memory token revocation, and user log signing.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// PasswordService defines operations for password hashing and validation.
// Implementations must use industry-standard hashing algorithms (e.g., argon2, bcrypt).
type PasswordService interface {
	// HashPassword hashes a plain text password using a secure hashing algorithm.
	HashPassword(plainPassword string) (hashedPassword string, error error)

	// ComparePassword compares a plain text password against a hashed password.
	// Returns true if the plain password matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenService defines operations for access token signing and validation.
type TokenService interface {
	// Issue creates a signed access token for the user with the configured
	// expiration. Returns the compact token and the claims embedded in it.
	Issue(user *authDomain.User) (token string, claims *authDomain.AccessClaims, error error)

	// Decode validates the token signature and structure and returns its claims.
	//
	// An expired token is a special case: the claims are still returned
	// alongside ErrTokenExpired, so callers such as logout can act on tokens
	// past their expiration. Any other failure returns nil claims.
	Decode(token string) (*authDomain.AccessClaims, error)
}

// RevocationRegistry tracks revoked tokens and per-user invalidation cutoffs
// in memory. Revocation state does not survive a process restart, which is
// acceptable because tokens are short-lived.
type RevocationRegistry interface {
	// Blacklist marks a token as revoked until its expiration time, after
	// which the entry is eligible for eviction.
	Blacklist(token string, expiresAt time.Time)

	// IsBlacklisted reports whether the token has been revoked.
	// Expired entries are evicted lazily during lookups.
	IsBlacklisted(token string) bool

	// InvalidateUser records a cutoff for the user: tokens issued before the
	// cutoff are no longer accepted. A later call moves the cutoff forward,
	// never backward.
	InvalidateUser(userID uuid.UUID, cutoff time.Time)

	// IsInvalidated reports whether a token issued at issuedAt for the user
	// falls strictly before the user's invalidation cutoff.
	IsInvalidated(userID uuid.UUID, issuedAt time.Time) bool
}

// LogSigner defines operations for signing and verifying user log entries.
// Signatures allow detection of tampering with persisted activity logs.
type LogSigner interface {
	// Sign generates a signature for the user log entry using the root key.
	Sign(rootKey []byte, log *authDomain.UserLog) ([]byte, error)

	// Verify checks the user log entry signature against the root key.
	// Returns nil if valid, ErrSignatureInvalid if tampered.
	Verify(rootKey []byte, log *authDomain.UserLog) error
}

// KeyService loads key material from configuration, optionally unwrapping it
// through a KMS provider.
type KeyService interface {
	// LoadKey decodes the base64 key material. When encryptedKey and keyURI
	// are both set, the material is first decrypted through the KMS keeper
	// at keyURI.
	LoadKey(ctx context.Context, plainKey, encryptedKey, keyURI string) ([]byte, error)
}
