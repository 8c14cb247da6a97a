package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// MySQLUserLogRepository implements UserLog persistence for MySQL.
// Uses BINARY(16) UUID types.
type MySQLUserLogRepository struct {
	db *sql.DB
}

// NewMySQLUserLogRepository creates a new MySQL UserLog repository.
func NewMySQLUserLogRepository(db *sql.DB) *MySQLUserLogRepository {
	return &MySQLUserLogRepository{db: db}
}

// Create inserts a new UserLog into the MySQL database.
func (m *MySQLUserLogRepository) Create(ctx context.Context, log *authDomain.UserLog) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO user_logs (id, user_id, type, message, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	idBytes, err := log.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	var userIDBytes []byte
	if log.UserID != nil {
		userIDBytes, err = log.UserID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal user UUID")
		}
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		userIDBytes,
		string(log.Type),
		log.Message,
		log.Signature,
		log.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user log")
	}
	return nil
}

// List retrieves user logs ordered by ID descending (newest first) with
// pagination and optional filtering.
func (m *MySQLUserLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter *authDomain.UserLogFilter,
) ([]*authDomain.UserLog, error) {
	querier := database.GetTx(ctx, m.db)

	var conditions []string
	var args []any

	if filter != nil {
		if filter.UserID != nil {
			userIDBytes, err := filter.UserID.MarshalBinary()
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to marshal user UUID")
			}
			conditions = append(conditions, "user_id = ?")
			args = append(args, userIDBytes)
		}
		if filter.Type != nil {
			conditions = append(conditions, "type = ?")
			args = append(args, string(*filter.Type))
		}
		if filter.CreatedAtFrom != nil {
			conditions = append(conditions, "created_at >= ?")
			args = append(args, *filter.CreatedAtFrom)
		}
		if filter.CreatedAtTo != nil {
			conditions = append(conditions, "created_at <= ?")
			args = append(args, *filter.CreatedAtTo)
		}
	}

	query := `SELECT id, user_id, type, message, signature, created_at FROM user_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user logs")
	}
	defer func() { _ = rows.Close() }()

	var logs []*authDomain.UserLog
	for rows.Next() {
		var log authDomain.UserLog
		var idBytes, userIDBytes []byte
		var logType string

		err := rows.Scan(
			&idBytes,
			&userIDBytes,
			&logType,
			&log.Message,
			&log.Signature,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user log")
		}

		if err := log.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if len(userIDBytes) > 0 {
			var userID uuid.UUID
			if err := userID.UnmarshalBinary(userIDBytes); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal user UUID")
			}
			log.UserID = &userID
		}

		log.Type = authDomain.LogType(logType)
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user logs")
	}

	return logs, nil
}
