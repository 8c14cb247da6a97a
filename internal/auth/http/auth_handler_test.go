package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/http/dto"
	httpMocks "github.com/allisson/accounts/internal/auth/http/mocks"
)

// setupAuthTestHandler creates a test auth handler with mocked dependencies.
func setupAuthTestHandler(t *testing.T) (*AuthHandler, *httpMocks.MockAuthUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockAuthUseCase := &httpMocks.MockAuthUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewAuthHandler(mockAuthUseCase, logger)

	return handler, mockAuthUseCase
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestAuthHandler_SignupHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		userID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		request := dto.SignupRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		}

		expectedUser := &authDomain.User{
			ID:        userID,
			Username:  "alice",
			Email:     "alice@example.com",
			Authority: authDomain.AuthorityUser,
			IsActive:  true,
			CreatedAt: now,
		}

		mockUseCase.On("Signup", mock.Anything, mock.MatchedBy(func(input *authDomain.SignupInput) bool {
			return input.Username == "alice" && input.Email == "alice@example.com"
		})).Return(expectedUser, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/signup", request)

		handler.SignupHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.SignupResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, userID.String(), response.ID)
		assert.Equal(t, "alice", response.Username)
		assert.Equal(t, "alice@example.com", response.Email)
		assert.Equal(t, "USER", response.Authority)
		assert.NotContains(t, w.Body.String(), "password")

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupAuthTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users/signup", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))

		handler.SignupHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "validation_error", response["error"])
	})

	t.Run("Error_MissingEmail", func(t *testing.T) {
		handler, _ := setupAuthTestHandler(t)

		request := dto.SignupRequest{
			Username: "alice",
			Email:    "",
			Password: "Sup3r$ecret",
		}

		c, w := createTestContext(http.MethodPost, "/v1/users/signup", request)

		handler.SignupHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "validation_error", response["error"])
	})

	t.Run("Error_ShortPassword", func(t *testing.T) {
		handler, _ := setupAuthTestHandler(t)

		request := dto.SignupRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "short",
		}

		c, w := createTestContext(http.MethodPost, "/v1/users/signup", request)

		handler.SignupHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		request := dto.SignupRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		}

		mockUseCase.On("Signup", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrUserAlreadyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/signup", request)

		handler.SignupHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "conflict", response["error"])

		mockUseCase.AssertExpectations(t)
	})
}

func TestAuthHandler_SigninHandler(t *testing.T) {
	t.Run("Success_ValidCredentials", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		issuedAt := time.Now().UTC().Truncate(time.Second)
		expiresAt := issuedAt.Add(1 * time.Hour)

		request := dto.SigninRequest{
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		}

		expectedOutput := &authDomain.LoginOutput{
			Token:     "header.payload.signature",
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		}

		mockUseCase.On("Login", mock.Anything, mock.MatchedBy(func(input *authDomain.LoginInput) bool {
			return input.Email == "alice@example.com" && input.Password == "Sup3r$ecret"
		})).Return(expectedOutput, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/signin", request)

		handler.SigninHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SigninResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "header.payload.signature", response.Token)
		assert.Equal(t, issuedAt.Unix(), response.IssuedAt)
		assert.Equal(t, expiresAt.Unix(), response.ExpiresAt)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingCredentials", func(t *testing.T) {
		handler, _ := setupAuthTestHandler(t)

		request := dto.SigninRequest{
			Email:    "",
			Password: "",
		}

		c, w := createTestContext(http.MethodPost, "/v1/users/signin", request)

		handler.SigninHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnknownEmailAndWrongPasswordLookAlike", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		request := dto.SigninRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		}

		// Unknown user and wrong password produce the same response body.
		for _, authErr := range []error{
			authDomain.ErrUnknownUser,
			authDomain.ErrInvalidCredentials,
		} {
			mockUseCase.On("Login", mock.Anything, mock.Anything).
				Return(nil, authErr).
				Once()

			c, w := createTestContext(http.MethodPost, "/v1/users/signin", request)

			handler.SigninHandler(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Equal(t, "unauthorized", response["error"])
		}

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_PasswordExpired", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		request := dto.SigninRequest{
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		}

		mockUseCase.On("Login", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrCredentialsExpired).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/signin", request)

		handler.SigninHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "password_expired", response["error"])

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InactiveUser", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		request := dto.SigninRequest{
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		}

		mockUseCase.On("Login", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrUserInactive).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/signin", request)

		handler.SigninHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_RepositoryError", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		request := dto.SigninRequest{
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		}

		mockUseCase.On("Login", mock.Anything, mock.Anything).
			Return(nil, errors.New("database connection failed")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/signin", request)

		handler.SigninHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "internal_error", response["error"])

		mockUseCase.AssertExpectations(t)
	})
}

func TestAuthHandler_LogoutHandler(t *testing.T) {
	t.Run("Success_ValidToken", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		mockUseCase.On("Logout", mock.Anything, "valid-token").
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/logout", nil)
		c.Request.Header.Set("Authorization", "Bearer valid-token")

		handler.LogoutHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingAuthorizationHeader", func(t *testing.T) {
		handler, _ := setupAuthTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users/logout", nil)

		handler.LogoutHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_RevokedToken", func(t *testing.T) {
		handler, mockUseCase := setupAuthTestHandler(t)

		mockUseCase.On("Logout", mock.Anything, "revoked-token").
			Return(authDomain.ErrInvalidToken).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/logout", nil)
		c.Request.Header.Set("Authorization", "Bearer revoked-token")

		handler.LogoutHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		mockUseCase.AssertExpectations(t)
	})
}
