package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/accounts/internal/auth/http"
	authRepository "github.com/allisson/accounts/internal/auth/repository"
	authService "github.com/allisson/accounts/internal/auth/service"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
)

// authServices bundles the technical services behind the auth use cases.
type authServices struct {
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	revocation      authService.RevocationRegistry
	logSigner       authService.LogSigner
	logSigningKey   []byte
}

// PasswordService returns the password hashing service.
func (s *authServices) PasswordService() authService.PasswordService {
	return s.passwordService
}

// TokenService returns the access token service.
func (s *authServices) TokenService() authService.TokenService {
	return s.tokenService
}

// AuthServices returns the auth technical services, loading key material on first access.
func (c *Container) AuthServices() (*authServices, error) {
	var err error
	c.authServicesInit.Do(func() {
		c.authServices, err = c.initAuthServices()
		if err != nil {
			c.initErrors["authServices"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authServices"]; exists {
		return nil, storedErr
	}
	return c.authServices, nil
}

// initAuthServices loads the token signing key, optionally unwrapping it
// through the configured KMS, and wires the technical services.
func (c *Container) initAuthServices() (*authServices, error) {
	keyService := authService.NewKeyService()

	signingKey, err := keyService.LoadKey(
		context.Background(),
		c.config.JWTSecret,
		c.config.JWTSecretEncrypted,
		c.config.KMSKeyURI,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load token signing key: %w", err)
	}

	// Log signing is optional: no root key disables signatures.
	var logSigningKey []byte
	if c.config.LogSignerSecret != "" {
		logSigningKey, err = keyService.LoadKey(context.Background(), c.config.LogSignerSecret, "", "")
		if err != nil {
			return nil, fmt.Errorf("failed to load log signing key: %w", err)
		}
	}

	return &authServices{
		passwordService: authService.NewPasswordService(),
		tokenService:    authService.NewJWTService(signingKey, c.config.AccessTokenExpiration),
		revocation:      authService.NewRevocationRegistry(),
		logSigner:       authService.NewLogSigner(),
		logSigningKey:   logSigningKey,
	}, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserLogRepository creates the user log repository instance.
func (c *Container) initUserLogRepository() (authUseCase.UserLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user log repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLUserLogRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLUserLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	userLogRepo, err := c.UserLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user log repository for auth use case: %w", err)
	}

	services, err := c.AuthServices()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth services for auth use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(
		c.config,
		userRepo,
		userLogRepo,
		services.passwordService,
		services.tokenService,
		services.revocation,
		services.logSigner,
		services.logSigningKey,
	)

	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAdminUseCase creates the admin use case with all its dependencies.
func (c *Container) initAdminUseCase() (authUseCase.AdminUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for admin use case: %w", err)
	}

	userLogRepo, err := c.UserLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user log repository for admin use case: %w", err)
	}

	services, err := c.AuthServices()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth services for admin use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for admin use case: %w", err)
	}

	useCase := authUseCase.NewAdminUseCase(
		userRepo,
		userLogRepo,
		services.revocation,
		services.logSigner,
		services.logSigningKey,
	)

	return authUseCase.NewAdminUseCaseWithMetrics(useCase, businessMetrics), nil
}

// authHandler creates the auth HTTP handler.
func (c *Container) authHandler() (*authHTTP.AuthHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, err
	}
	return authHTTP.NewAuthHandler(useCase, c.Logger()), nil
}

// adminHandler creates the admin HTTP handler.
func (c *Container) adminHandler() (*authHTTP.AdminHandler, error) {
	useCase, err := c.AdminUseCase()
	if err != nil {
		return nil, err
	}
	return authHTTP.NewAdminHandler(useCase, c.Logger()), nil
}
