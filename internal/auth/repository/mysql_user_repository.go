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

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) UUID types with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new User into the MySQL database.
// Returns ErrUserAlreadyExists on duplicate email.
func (m *MySQLUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (id, username, email, password, authority, is_active, password_changed_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
		user.Username,
		user.Email,
		user.Password,
		string(user.Authority),
		user.IsActive,
		user.PasswordChangedAt,
		user.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return authDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID from the MySQL database.
func (m *MySQLUserRepository) GetByID(
	ctx context.Context,
	userID uuid.UUID,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, email, password, authority, is_active, password_changed_at, created_at
			  FROM users WHERE id = ?`

	uuidBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return scanMySQLUser(querier.QueryRowContext(ctx, query, uuidBytes))
}

// GetByEmail retrieves a User by email from the MySQL database.
func (m *MySQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*authDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, email, password, authority, is_active, password_changed_at, created_at
			  FROM users WHERE email = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, email))
}

// scanMySQLUser scans a single user row, converting the BINARY(16) ID back to a UUID.
func scanMySQLUser(row *sql.Row) (*authDomain.User, error) {
	var user authDomain.User
	var idBytes []byte
	var authority string

	err := row.Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	user.Authority = authDomain.Authority(authority)
	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
