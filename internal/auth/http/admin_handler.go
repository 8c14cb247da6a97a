package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/http/dto"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/httputil"
)

// AdminHandler handles HTTP requests for administrative operations.
type AdminHandler struct {
	adminUseCase authUseCase.AdminUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(
	adminUseCase authUseCase.AdminUseCase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// ListUserLogsHandler retrieves user logs with pagination support and optional filtering.
// GET /v1/admin/user-logs?offset=0&limit=50&user_id=<uuid>&log_type=LOGIN_FAILURE&created_at_from=2026-02-01T00:00:00Z&created_at_to=2026-02-14T23:59:59Z
// Requires ADMIN authority. Returns 200 OK with the log list ordered newest first.
// Timestamps are RFC3339 and converted to UTC, both boundaries inclusive.
func (h *AdminHandler) ListUserLogsHandler(c *gin.Context) {
	// Parse offset and limit query parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := &authDomain.UserLogFilter{}

	// Parse optional user_id query parameter
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid user_id format: must be a valid UUID"),
				h.logger)
			return
		}
		filter.UserID = &userID
	}

	// Parse optional log_type query parameter
	if typeStr := c.Query("log_type"); typeStr != "" {
		logType := authDomain.LogType(typeStr)
		if !authDomain.ValidLogType(logType) {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid log_type: must be one of LOGIN_SUCCESS, LOGIN_FAILURE, LOGOUT"),
				h.logger)
			return
		}
		filter.Type = &logType
	}

	// Parse optional created_at_from query parameter
	if fromStr := c.Query("created_at_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_from format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		filter.CreatedAtFrom = &utcTime
	}

	// Parse optional created_at_to query parameter
	if toStr := c.Query("created_at_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_to format: must be RFC3339 (e.g., 2026-02-14T23:59:59Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		filter.CreatedAtTo = &utcTime
	}

	// Validate that created_at_from is before or equal to created_at_to
	if filter.CreatedAtFrom != nil && filter.CreatedAtTo != nil &&
		filter.CreatedAtFrom.After(*filter.CreatedAtTo) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	// Call use case
	logs, err := h.adminUseCase.ListUserLogs(c.Request.Context(), offset, limit, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response
	response := dto.MapUserLogsToListResponse(logs)
	c.JSON(http.StatusOK, response)
}

// ExpireUserTokensHandler invalidates every token issued to a user up to now.
// POST /v1/admin/users/:id/expire-tokens - Requires ADMIN authority.
// Tokens issued after this call remain valid. Returns 204 No Content.
func (h *AdminHandler) ExpireUserTokensHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user id format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.adminUseCase.ExpireUserTokens(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
