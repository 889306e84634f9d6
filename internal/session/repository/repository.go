package repository

import (
	"context"
	"errors"
	"time"

	"bizconnect/backend/internal/session/domain"
)

// ErrDuplicateToken is returned by Create when the token collides with an
// existing session. The store resamples a fresh token and retries.
var ErrDuplicateToken = errors.New("session token already exists")

// Repository defines persistence for sessions.
type Repository interface {
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	// Revoke sets active = false for the session with the given token.
	// Unknown or already-revoked tokens are not an error.
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	// DeleteExpiredBefore removes sessions whose expiry is before cutoff and
	// returns the number of rows deleted. Out-of-band GC only; the request
	// path never deletes rows.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
