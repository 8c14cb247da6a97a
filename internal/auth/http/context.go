// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// userKey is a context key type for storing authenticated user claims.
type userKey struct{}

// WithUser stores authenticated user claims in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithUser(ctx context.Context, claims *authDomain.AccessClaims) context.Context {
	return context.WithValue(ctx, userKey{}, claims)
}

// GetUser retrieves authenticated user claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) if none were set.
// This is typically called by handlers or subsequent middleware that need the authenticated user.
func GetUser(ctx context.Context) (*authDomain.AccessClaims, bool) {
	claims, ok := ctx.Value(userKey{}).(*authDomain.AccessClaims)
	return claims, ok
}
