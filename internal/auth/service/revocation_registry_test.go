package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestRevocationRegistry_Blacklist(t *testing.T) {
	registry := NewRevocationRegistry()

	t.Run("Success_BlacklistedTokenIsRevoked", func(t *testing.T) {
		expiresAt := time.Now().UTC().Add(time.Hour)
		registry.Blacklist("token-1", expiresAt)

		assert.True(t, registry.IsBlacklisted("token-1"))
	})

	t.Run("Success_UnknownTokenIsNotRevoked", func(t *testing.T) {
		assert.False(t, registry.IsBlacklisted("never-seen"))
	})

	t.Run("Success_ExpiredEntryIsEvicted", func(t *testing.T) {
		expiresAt := time.Now().UTC().Add(-time.Second)
		registry.Blacklist("token-expired", expiresAt)

		// Past expiration the token would be rejected as expired anyway,
		// so the entry no longer counts and is removed.
		assert.False(t, registry.IsBlacklisted("token-expired"))
		assert.False(t, registry.IsBlacklisted("token-expired"))
	})

	t.Run("Success_TokenAtExactExpirationIsStillRevoked", func(t *testing.T) {
		reg := NewRevocationRegistry().(*revocationRegistry)
		expiresAt := time.Now().UTC().Add(time.Hour)
		reg.Blacklist("token-boundary", expiresAt)

		// Revoked up to and including the expiration instant
		assert.True(t, reg.isBlacklistedAt("token-boundary", expiresAt))
		assert.False(t, reg.isBlacklistedAt("token-boundary", expiresAt.Add(time.Nanosecond)))
	})
}

func TestRevocationRegistry_InvalidateUser(t *testing.T) {
	registry := NewRevocationRegistry()
	userID := uuid.Must(uuid.NewV7())
	cutoff := time.Now().UTC()

	t.Run("Success_TokenIssuedBeforeCutoffIsInvalidated", func(t *testing.T) {
		registry.InvalidateUser(userID, cutoff)

		assert.True(t, registry.IsInvalidated(userID, cutoff.Add(-time.Minute)))
	})

	t.Run("Success_TokenIssuedAtCutoffIsAccepted", func(t *testing.T) {
		// Only tokens issued strictly before the cutoff are rejected
		assert.False(t, registry.IsInvalidated(userID, cutoff))
	})

	t.Run("Success_TokenIssuedAfterCutoffIsAccepted", func(t *testing.T) {
		assert.False(t, registry.IsInvalidated(userID, cutoff.Add(time.Second)))
	})

	t.Run("Success_UserWithoutCutoffIsAccepted", func(t *testing.T) {
		otherID := uuid.Must(uuid.NewV7())
		assert.False(t, registry.IsInvalidated(otherID, cutoff))
	})

	t.Run("Success_CutoffOnlyMovesForward", func(t *testing.T) {
		later := cutoff.Add(time.Hour)
		registry.InvalidateUser(userID, later)

		// An earlier call can never undo a later one
		registry.InvalidateUser(userID, cutoff)

		assert.True(t, registry.IsInvalidated(userID, later.Add(-time.Minute)))
		assert.False(t, registry.IsInvalidated(userID, later))
		assert.False(t, registry.IsInvalidated(userID, later.Add(time.Second)))
	})

	t.Run("Success_CutoffsAreIndependentPerUser", func(t *testing.T) {
		user1 := uuid.Must(uuid.NewV7())
		user2 := uuid.Must(uuid.NewV7())
		registry.InvalidateUser(user1, cutoff)

		assert.True(t, registry.IsInvalidated(user1, cutoff.Add(-time.Second)))
		assert.False(t, registry.IsInvalidated(user2, cutoff.Add(-time.Second)))
	})
}

func TestRevocationRegistry_ConcurrentAccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	registry := NewRevocationRegistry()
	userID := uuid.Must(uuid.NewV7())
	base := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			registry.Blacklist("token", base.Add(time.Hour))
			registry.IsBlacklisted("token")
			registry.InvalidateUser(userID, base.Add(time.Duration(n)*time.Second))
			registry.IsInvalidated(userID, base)
		}(i)
	}
	wg.Wait()

	// The highest cutoff written concurrently must win
	assert.True(t, registry.IsInvalidated(userID, base.Add(48*time.Second)))
	assert.False(t, registry.IsInvalidated(userID, base.Add(49*time.Second)))
}
