package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// PostgreSQLUserLogRepository implements UserLog persistence for PostgreSQL.
type PostgreSQLUserLogRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserLogRepository creates a new PostgreSQL UserLog repository.
func NewPostgreSQLUserLogRepository(db *sql.DB) *PostgreSQLUserLogRepository {
	return &PostgreSQLUserLogRepository{db: db}
}

// Create inserts a new UserLog into the PostgreSQL database.
func (p *PostgreSQLUserLogRepository) Create(ctx context.Context, log *authDomain.UserLog) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_logs (id, user_id, type, message, signature, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		log.ID,
		log.UserID,
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
func (p *PostgreSQLUserLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter *authDomain.UserLogFilter,
) ([]*authDomain.UserLog, error) {
	querier := database.GetTx(ctx, p.db)

	var conditions []string
	var args []any

	if filter != nil {
		if filter.UserID != nil {
			args = append(args, *filter.UserID)
			conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
		}
		if filter.Type != nil {
			args = append(args, string(*filter.Type))
			conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
		}
		if filter.CreatedAtFrom != nil {
			args = append(args, *filter.CreatedAtFrom)
			conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
		}
		if filter.CreatedAtTo != nil {
			args = append(args, *filter.CreatedAtTo)
			conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
		}
	}

	query := `SELECT id, user_id, type, message, signature, created_at FROM user_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user logs")
	}
	defer func() { _ = rows.Close() }()

	var logs []*authDomain.UserLog
	for rows.Next() {
		var log authDomain.UserLog
		var logType string

		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&logType,
			&log.Message,
			&log.Signature,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user log")
		}

		log.Type = authDomain.LogType(logType)
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user logs")
	}

	return logs, nil
}
