package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"bizconnect/backend/internal/session/domain"
)

// Postgres error code for unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByToken returns the session for token, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, token, user_id, active, expires_at, ip_address, user_agent, created_at
		FROM sessions WHERE token = $1`, token)

	var (
		s         domain.Session
		ipAddress sql.NullString
		userAgent sql.NullString
	)
	err := row.Scan(&s.ID, &s.Token, &s.UserID, &s.Active, &s.ExpiresAt, &ipAddress, &userAgent, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.IPAddress = ipAddress.String
	s.UserAgent = userAgent.String
	return &s, nil
}

// Create persists the session. Returns ErrDuplicateToken when the unique
// token index rejects the row, so the caller can resample.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, user_id, active, expires_at, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID,
		s.Token,
		s.UserID,
		s.Active,
		s.ExpiresAt,
		sql.NullString{String: s.IPAddress, Valid: s.IPAddress != ""},
		sql.NullString{String: s.UserAgent, Valid: s.UserAgent != ""},
		s.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateToken
	}
	return err
}

// Revoke marks the session with the given token inactive. Idempotent; a
// missing row is not an error.
func (r *PostgresRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET active = FALSE WHERE token = $1`, token)
	return err
}

// RevokeAllForUser marks every session owned by userID inactive.
func (r *PostgresRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET active = FALSE WHERE user_id = $1`, userID)
	return err
}

// DeleteExpiredBefore removes sessions whose expiry is before cutoff and
// returns the number of rows deleted.
func (r *PostgresRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
