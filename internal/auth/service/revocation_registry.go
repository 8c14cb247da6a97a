package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// revocationRegistry implements RevocationRegistry with two concurrent maps:
// one for individually revoked tokens and one for per-user invalidation
// cutoffs. Revoked token entries are evicted lazily once their expiration
// passes, so the registry never needs a background sweeper.
type revocationRegistry struct {
	revokedTokens sync.Map // map[string]time.Time (token -> expiration)
	userCutoffs   sync.Map // map[uuid.UUID]time.Time (user ID -> cutoff)
}

// NewRevocationRegistry creates a new in-memory RevocationRegistry.
func NewRevocationRegistry() RevocationRegistry {
	return &revocationRegistry{}
}

// Blacklist marks the token as revoked until expiresAt.
func (r *revocationRegistry) Blacklist(token string, expiresAt time.Time) {
	r.revokedTokens.Store(token, expiresAt.UTC())
}

// IsBlacklisted reports whether the token is currently revoked.
func (r *revocationRegistry) IsBlacklisted(token string) bool {
	return r.isBlacklistedAt(token, time.Now().UTC())
}

// isBlacklistedAt reports whether the token is revoked at the given instant.
// An entry counts as revoked up to and including its expiration. Once the
// expiration is strictly in the past the entry is removed and no longer
// counts, since the token would be rejected as expired anyway.
func (r *revocationRegistry) isBlacklistedAt(token string, now time.Time) bool {
	val, ok := r.revokedTokens.Load(token)
	if !ok {
		return false
	}

	expiresAt := val.(time.Time)
	if now.After(expiresAt) {
		// Lazy eviction keeps the map bounded by the number of live tokens.
		r.revokedTokens.Delete(token)
		return false
	}

	return true
}

// InvalidateUser records the invalidation cutoff for a user. The cutoff only
// moves forward: an earlier call can never undo a later one.
func (r *revocationRegistry) InvalidateUser(userID uuid.UUID, cutoff time.Time) {
	cutoff = cutoff.UTC()
	for {
		val, loaded := r.userCutoffs.LoadOrStore(userID, cutoff)
		if !loaded {
			return
		}
		current := val.(time.Time)
		if !cutoff.After(current) {
			return
		}
		if r.userCutoffs.CompareAndSwap(userID, current, cutoff) {
			return
		}
	}
}

// IsInvalidated reports whether a token issued at issuedAt is covered by the
// user's invalidation cutoff. Only tokens issued strictly before the cutoff
// are invalidated, so tokens issued after the cutoff was set stay valid.
func (r *revocationRegistry) IsInvalidated(userID uuid.UUID, issuedAt time.Time) bool {
	val, ok := r.userCutoffs.Load(userID)
	if !ok {
		return false
	}
	cutoff := val.(time.Time)
	return issuedAt.UTC().Before(cutoff)
}
