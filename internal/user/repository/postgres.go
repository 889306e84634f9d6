package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bizconnect/backend/internal/user/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, password_hash, email, first_name, last_name, active, created_at, updated_at, last_login_at`

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername returns the user with the given username (case-sensitive
// exact match), or nil if not found.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, email, first_name, last_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID,
		u.Username,
		u.PasswordHash,
		nullString(u.Email),
		nullString(u.FirstName),
		nullString(u.LastName),
		u.Active,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

// Update writes the user's mutable fields. The username column is immutable
// after creation and deliberately absent from the statement.
func (r *PostgresRepository) Update(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $2, email = $3, first_name = $4, last_name = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		u.ID,
		u.PasswordHash,
		nullString(u.Email),
		nullString(u.FirstName),
		nullString(u.LastName),
		u.Active,
		u.UpdatedAt,
	)
	return err
}

// UpdateLastLogin stamps the user's last-login timestamp. Missing rows are not an error.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	return err
}

// SetActive flips the soft-delete flag. Missing rows are not an error.
func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET active = $2, updated_at = $3 WHERE id = $1`, id, active, time.Now().UTC())
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u           domain.User
		email       sql.NullString
		firstName   sql.NullString
		lastName    sql.NullString
		lastLoginAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &firstName, &lastName,
		&u.Active, &u.CreatedAt, &u.UpdatedAt, &lastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Email = email.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
