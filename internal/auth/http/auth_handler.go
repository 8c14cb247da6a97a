// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/http/dto"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/httputil"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// AuthHandler handles HTTP requests for the account and session lifecycle.
// It coordinates signup, signin, and logout with the AuthUseCase.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// SignupHandler registers a new user account.
// POST /v1/users/signup - No authentication required.
// Returns 201 Created with the new account (password hash excluded).
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Create input for use case
	input := &authDomain.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	// Call use case
	user, err := h.authUseCase.Signup(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToSignupResponse(user))
}

// SigninHandler authenticates credentials and issues an access token.
// POST /v1/users/signin - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the token and its issued/expiration times.
func (h *AuthHandler) SigninHandler(c *gin.Context) {
	var req dto.SigninRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Create input for use case
	input := &authDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	// Call use case
	output, err := h.authUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// LogoutHandler revokes the presented access token.
// POST /v1/users/logout - Takes the token from the Authorization header directly
// rather than going through the authentication middleware, so that a token past
// its expiration can still be revoked.
// Returns 204 No Content on success.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token, err := ExtractBearerToken(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
