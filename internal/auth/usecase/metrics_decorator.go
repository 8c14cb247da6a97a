package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Signup records metrics for signup operations.
func (a *authUseCaseWithMetrics) Signup(
	ctx context.Context,
	input *authDomain.SignupInput,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := a.next.Signup(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "signup", status)
	a.metrics.RecordDuration(ctx, "auth", "signup", time.Since(start), status)

	return user, err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, token string) error {
	start := time.Now()
	err := a.next.Logout(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "logout", status)
	a.metrics.RecordDuration(ctx, "auth", "logout", time.Since(start), status)

	return err
}

// Authenticate records metrics for token authentication operations.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.AccessClaims, error) {
	start := time.Now()
	claims, err := a.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return claims, err
}

// adminUseCaseWithMetrics decorates AdminUseCase with metrics instrumentation.
type adminUseCaseWithMetrics struct {
	next    AdminUseCase
	metrics metrics.BusinessMetrics
}

// NewAdminUseCaseWithMetrics wraps an AdminUseCase with metrics recording.
func NewAdminUseCaseWithMetrics(useCase AdminUseCase, m metrics.BusinessMetrics) AdminUseCase {
	return &adminUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ExpireUserTokens records metrics for token invalidation operations.
func (a *adminUseCaseWithMetrics) ExpireUserTokens(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := a.next.ExpireUserTokens(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "admin", "expire_user_tokens", status)
	a.metrics.RecordDuration(ctx, "admin", "expire_user_tokens", time.Since(start), status)

	return err
}

// ListUserLogs records metrics for user log list operations.
func (a *adminUseCaseWithMetrics) ListUserLogs(
	ctx context.Context,
	offset, limit int,
	filter *authDomain.UserLogFilter,
) ([]*authDomain.UserLog, error) {
	start := time.Now()
	logs, err := a.next.ListUserLogs(ctx, offset, limit, filter)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "admin", "list_user_logs", status)
	a.metrics.RecordDuration(ctx, "admin", "list_user_logs", time.Since(start), status)

	return logs, err
}

// VerifyLogs records metrics for batch log verification operations.
func (a *adminUseCaseWithMetrics) VerifyLogs(
	ctx context.Context,
	startTime, endTime time.Time,
) (*VerificationReport, error) {
	start := time.Now()
	report, err := a.next.VerifyLogs(ctx, startTime, endTime)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "admin", "verify_logs", status)
	a.metrics.RecordDuration(ctx, "admin", "verify_logs", time.Since(start), status)

	return report, err
}
