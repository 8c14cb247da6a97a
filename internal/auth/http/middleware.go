package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
)

// ExtractBearerToken extracts the Bearer token from the Authorization header.
// The "bearer" scheme is matched case-insensitively.
// Returns an ErrUnauthorized-wrapped error when the header is missing or malformed.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, "missing authorization header")
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, "malformed authorization header")
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, "empty bearer token")
	}

	return token, nil
}

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Validates the token using authUseCase.Authenticate()
// 3. Stores the authenticated user claims in the request context
// 4. Allows downstream handlers to access the claims via GetUser()
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/revoked/invalidated token → 401 Unauthorized (from AuthUseCase.Authenticate)
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Authenticate the token
		claims, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store authenticated user claims in context
		ctx := WithUser(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("email", claims.Email),
			slog.String("authority", string(claims.Authority)))

		// Continue to next handler
		c.Next()
	}
}

// AuthorityMiddleware provides authority-based authorization for authenticated users.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires
// authenticated user claims to be present in the request context. The authority
// is read from the token claims, so a role change takes effect only once the
// user's outstanding tokens have been invalidated and reissued.
//
// Error handling:
//   - No claims in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Authority mismatch → 403 Forbidden
func AuthorityMiddleware(
	authority authDomain.Authority,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetUser(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("authorization failed: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if claims.Authority != authority {
			logger.Debug("authorization failed: insufficient authority",
				slog.String("email", claims.Email),
				slog.String("authority", string(claims.Authority)),
				slog.String("required", string(authority)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		logger.Debug("authorization successful",
			slog.String("email", claims.Email),
			slog.String("authority", string(claims.Authority)))

		// Continue to next handler
		c.Next()
	}
}
