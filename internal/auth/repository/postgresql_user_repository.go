// Package repository implements data persistence for users and user activity logs.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new User into the PostgreSQL database.
// Returns ErrUserAlreadyExists on duplicate email.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, username, email, password, authority, is_active, password_changed_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		string(user.Authority),
		user.IsActive,
		user.PasswordChangedAt,
		user.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return authDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID from the PostgreSQL database.
func (p *PostgreSQLUserRepository) GetByID(
	ctx context.Context,
	userID uuid.UUID,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, email, password, authority, is_active, password_changed_at, created_at
			  FROM users WHERE id = $1`

	return scanPostgreSQLUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByEmail retrieves a User by email from the PostgreSQL database.
func (p *PostgreSQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, email, password, authority, is_active, password_changed_at, created_at
			  FROM users WHERE email = $1`

	return scanPostgreSQLUser(querier.QueryRowContext(ctx, query, email))
}

// scanPostgreSQLUser scans a single user row, translating sql.ErrNoRows.
func scanPostgreSQLUser(row *sql.Row) (*authDomain.User, error) {
	var user authDomain.User
	var authority string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&authority,
		&user.IsActive,
		&user.PasswordChangedAt,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	user.Authority = authDomain.Authority(authority)
	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
