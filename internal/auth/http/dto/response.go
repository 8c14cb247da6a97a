// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// SignupResponse contains the result of registering a new user account.
// The password hash is never exposed.
type SignupResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Authority string    `json:"authority"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserToSignupResponse converts a domain user to a signup API response.
func MapUserToSignupResponse(user *authDomain.User) SignupResponse {
	return SignupResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Authority: string(user.Authority),
		CreatedAt: user.CreatedAt,
	}
}

// SigninResponse contains the result of a successful sign-in.
// Issued and expiration times are Unix timestamps in seconds, matching the
// token's registered claims.
type SigninResponse struct {
	Token     string `json:"token"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// MapLoginOutputToResponse converts a login result to a sign-in API response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) SigninResponse {
	return SigninResponse{
		Token:     output.Token,
		IssuedAt:  output.IssuedAt.Unix(),
		ExpiresAt: output.ExpiresAt.Unix(),
	}
}

// UserLogResponse represents a user log entry in API responses.
type UserLogResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Signed    bool      `json:"signed"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserLogToResponse converts a domain user log to an API response.
func MapUserLogToResponse(log *authDomain.UserLog) UserLogResponse {
	response := UserLogResponse{
		ID:        log.ID.String(),
		Type:      string(log.Type),
		Message:   log.Message,
		Signed:    len(log.Signature) > 0,
		CreatedAt: log.CreatedAt,
	}
	if log.UserID != nil {
		userID := log.UserID.String()
		response.UserID = &userID
	}
	return response
}

// ListUserLogsResponse represents a paginated list of user logs in API responses.
type ListUserLogsResponse struct {
	Data []UserLogResponse `json:"data"`
}

// MapUserLogsToListResponse converts a slice of domain user logs to a list API response.
func MapUserLogsToListResponse(logs []*authDomain.UserLog) ListUserLogsResponse {
	logResponses := make([]UserLogResponse, 0, len(logs))
	for _, log := range logs {
		logResponses = append(logResponses, MapUserLogToResponse(log))
	}
	return ListUserLogsResponse{
		Data: logResponses,
	}
}
