package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/app"
	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authService "github.com/allisson/accounts/internal/auth/service"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/config"
)

// RunCreateAdmin creates a new user account with ADMIN authority.
// When no password is provided, a random one is generated and printed once.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(ctx context.Context, username, email, password, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	userRepo, err := container.UserRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize user repository: %w", err)
	}

	services, err := container.AuthServices()
	if err != nil {
		return fmt.Errorf("failed to initialize auth services: %w", err)
	}

	return createAdmin(
		ctx,
		userRepo,
		services.PasswordService(),
		logger,
		DefaultIO().Writer,
		username,
		email,
		password,
		format,
	)
}

// createAdmin persists the admin account and writes the result to the writer.
func createAdmin(
	ctx context.Context,
	userRepo authUseCase.UserRepository,
	passwordService authService.PasswordService,
	logger *slog.Logger,
	writer io.Writer,
	username, email, password, format string,
) error {
	email = strings.TrimSpace(strings.ToLower(email))

	generated := false
	if password == "" {
		var err error
		password, err = generatePassword()
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		generated = true
	}

	hashedPassword, err := passwordService.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		ID:                uuid.Must(uuid.NewV7()),
		Username:          strings.TrimSpace(username),
		Email:             email,
		Password:          hashedPassword,
		Authority:         authDomain.AuthorityAdmin,
		IsActive:          true,
		PasswordChangedAt: now,
		CreatedAt:         now,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if format == "json" {
		result := map[string]any{
			"id":       user.ID.String(),
			"username": user.Username,
			"email":    user.Email,
		}
		if generated {
			result["password"] = password
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "Admin user created\n")
		_, _ = fmt.Fprintf(writer, "==================\n\n")
		_, _ = fmt.Fprintf(writer, "ID:       %s\n", user.ID)
		_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
		_, _ = fmt.Fprintf(writer, "Email:    %s\n", user.Email)
		if generated {
			_, _ = fmt.Fprintf(writer, "Password: %s\n\n", password)
			_, _ = fmt.Fprintf(writer, "Save this password now, it will not be shown again.\n")
		}
	}

	logger.Info("admin user created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// generatePassword returns a random url-safe password.
func generatePassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
