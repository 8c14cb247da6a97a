package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
)

// MockAdminUseCase is a mock implementation of AdminUseCase for testing.
type MockAdminUseCase struct {
	mock.Mock
}

// ExpireUserTokens mocks the ExpireUserTokens method of AdminUseCase.
func (m *MockAdminUseCase) ExpireUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ListUserLogs mocks the ListUserLogs method of AdminUseCase.
func (m *MockAdminUseCase) ListUserLogs(
	ctx context.Context,
	offset, limit int,
	filter *authDomain.UserLogFilter,
) ([]*authDomain.UserLog, error) {
	args := m.Called(ctx, offset, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.UserLog), args.Error(1)
}

// VerifyLogs mocks the VerifyLogs method of AdminUseCase.
func (m *MockAdminUseCase) VerifyLogs(
	ctx context.Context,
	startTime, endTime time.Time,
) (*authUseCase.VerificationReport, error) {
	args := m.Called(ctx, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.VerificationReport), args.Error(1)
}
