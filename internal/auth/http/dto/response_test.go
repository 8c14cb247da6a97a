package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

func TestMapUserToSignupResponse(t *testing.T) {
	now := time.Now().UTC()
	user := &authDomain.User{
		ID:                uuid.Must(uuid.NewV7()),
		Username:          "alice",
		Email:             "alice@example.com",
		Password:          "hashed-password",
		Authority:         authDomain.AuthorityUser,
		IsActive:          true,
		PasswordChangedAt: now,
		CreatedAt:         now,
	}

	response := MapUserToSignupResponse(user)

	assert.Equal(t, user.ID.String(), response.ID)
	assert.Equal(t, "alice", response.Username)
	assert.Equal(t, "alice@example.com", response.Email)
	assert.Equal(t, "USER", response.Authority)
	assert.Equal(t, now, response.CreatedAt)
}

func TestMapLoginOutputToResponse(t *testing.T) {
	issuedAt := time.Now().UTC().Truncate(time.Second)
	output := &authDomain.LoginOutput{
		Token:     "signed-token",
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(time.Hour),
	}

	response := MapLoginOutputToResponse(output)

	assert.Equal(t, "signed-token", response.Token)
	assert.Equal(t, issuedAt.Unix(), response.IssuedAt)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), response.ExpiresAt)
}

func TestMapUserLogToResponse(t *testing.T) {
	t.Run("Success_SignedLogWithUser", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		log := &authDomain.UserLog{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    &userID,
			Type:      authDomain.LogTypeLoginSuccess,
			Message:   "login succeeded",
			Signature: []byte("signature"),
			CreatedAt: time.Now().UTC(),
		}

		response := MapUserLogToResponse(log)

		assert.Equal(t, log.ID.String(), response.ID)
		require.NotNil(t, response.UserID)
		assert.Equal(t, userID.String(), *response.UserID)
		assert.Equal(t, "LOGIN_SUCCESS", response.Type)
		assert.Equal(t, "login succeeded", response.Message)
		assert.True(t, response.Signed)
		assert.Equal(t, log.CreatedAt, response.CreatedAt)
	})

	t.Run("Success_UnsignedLogWithoutUser", func(t *testing.T) {
		log := &authDomain.UserLog{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    nil,
			Type:      authDomain.LogTypeLoginFailure,
			Message:   "login failed: unknown email ghost@example.com",
			CreatedAt: time.Now().UTC(),
		}

		response := MapUserLogToResponse(log)

		assert.Nil(t, response.UserID)
		assert.Equal(t, "LOGIN_FAILURE", response.Type)
		assert.False(t, response.Signed)
	})
}

func TestMapUserLogsToListResponse(t *testing.T) {
	t.Run("Success_MultipleLogs", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		logs := []*authDomain.UserLog{
			{
				ID:        uuid.Must(uuid.NewV7()),
				UserID:    &userID,
				Type:      authDomain.LogTypeLoginSuccess,
				Message:   "login succeeded",
				CreatedAt: time.Now().UTC(),
			},
			{
				ID:        uuid.Must(uuid.NewV7()),
				UserID:    &userID,
				Type:      authDomain.LogTypeLogout,
				Message:   "user logged out",
				CreatedAt: time.Now().UTC(),
			},
		}

		response := MapUserLogsToListResponse(logs)

		require.Len(t, response.Data, 2)
		assert.Equal(t, logs[0].ID.String(), response.Data[0].ID)
		assert.Equal(t, logs[1].ID.String(), response.Data[1].ID)
	})

	t.Run("Success_EmptyListMapsToEmptySlice", func(t *testing.T) {
		response := MapUserLogsToListResponse(nil)

		// Data must serialize as [] rather than null
		assert.NotNil(t, response.Data)
		assert.Empty(t, response.Data)
	})
}
