package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authService "github.com/allisson/accounts/internal/auth/service"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// verifyBatchSize is the page size used when scanning logs for verification.
const verifyBatchSize = 500

// adminUseCase implements AdminUseCase for administrative operations.
type adminUseCase struct {
	userRepo      UserRepository
	userLogRepo   UserLogRepository
	revocation    authService.RevocationRegistry
	logSigner     authService.LogSigner
	logSigningKey []byte
}

// NewAdminUseCase creates a new AdminUseCase with the provided dependencies.
// logSigningKey may be nil, in which case VerifyLogs reports all entries as unsigned.
func NewAdminUseCase(
	userRepo UserRepository,
	userLogRepo UserLogRepository,
	revocation authService.RevocationRegistry,
	logSigner authService.LogSigner,
	logSigningKey []byte,
) AdminUseCase {
	return &adminUseCase{
		userRepo:      userRepo,
		userLogRepo:   userLogRepo,
		revocation:    revocation,
		logSigner:     logSigner,
		logSigningKey: logSigningKey,
	}
}

// ExpireUserTokens invalidates every token issued to the user up to now.
// Tokens issued after this call remain valid.
func (a *adminUseCase) ExpireUserTokens(ctx context.Context, userID uuid.UUID) error {
	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	a.revocation.InvalidateUser(user.ID, time.Now().UTC())
	return nil
}

// ListUserLogs retrieves user logs ordered by ID descending (newest first)
// with pagination and optional filtering by user, log type, and time range.
func (a *adminUseCase) ListUserLogs(
	ctx context.Context,
	offset, limit int,
	filter *authDomain.UserLogFilter,
) ([]*authDomain.UserLog, error) {
	if filter != nil && filter.Type != nil && !authDomain.ValidLogType(*filter.Type) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown log type")
	}

	logs, err := a.userLogRepo.List(ctx, offset, limit, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user logs")
	}

	return logs, nil
}

// VerifyLogs checks the signatures of all user logs created within the time
// range, paging through the repository in batches. Unsigned entries are
// counted separately so pre-signing history doesn't fail the check.
func (a *adminUseCase) VerifyLogs(
	ctx context.Context,
	startTime, endTime time.Time,
) (*VerificationReport, error) {
	report := &VerificationReport{}

	filter := &authDomain.UserLogFilter{
		CreatedAtFrom: &startTime,
		CreatedAtTo:   &endTime,
	}

	for offset := 0; ; offset += verifyBatchSize {
		logs, err := a.userLogRepo.List(ctx, offset, verifyBatchSize, filter)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list user logs for verification")
		}
		if len(logs) == 0 {
			break
		}

		for _, log := range logs {
			report.TotalChecked++

			if len(log.Signature) == 0 {
				report.UnsignedCount++
				continue
			}
			report.SignedCount++

			if len(a.logSigningKey) == 0 {
				// Signed entry but no key to check it with.
				report.InvalidCount++
				report.InvalidLogs = append(report.InvalidLogs, log.ID)
				continue
			}

			if err := a.logSigner.Verify(a.logSigningKey, log); err != nil {
				if errors.Is(err, authDomain.ErrSignatureInvalid) {
					report.InvalidCount++
					report.InvalidLogs = append(report.InvalidLogs, log.ID)
					continue
				}
				return nil, apperrors.Wrap(err, "failed to verify user log")
			}
			report.ValidCount++
		}

		if len(logs) < verifyBatchSize {
			break
		}
	}

	return report, nil
}
