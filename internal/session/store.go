// Package session issues and tracks opaque session tokens. Expiry is a pure
// function of the stored timestamp against the clock; revocation is an
// idempotent one-way transition.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bizconnect/backend/internal/security"
	"bizconnect/backend/internal/session/domain"
	"bizconnect/backend/internal/session/repository"
)

// maxTokenAttempts bounds collision resampling at create time. The token
// space is 256 bits, so more than one retry is already extraordinary.
const maxTokenAttempts = 5

// Store manages session lifecycle over a repository.
type Store struct {
	repo          repository.Repository
	sessionTTL    time.Duration
	persistentTTL time.Duration
	now           func() time.Time
}

// NewStore returns a Store with the given TTL tiers. Non-positive TTLs fall
// back to 1h for normal and 720h for persistent sign-in.
func NewStore(repo repository.Repository, sessionTTL, persistentTTL time.Duration) *Store {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	if persistentTTL <= 0 {
		persistentTTL = 720 * time.Hour
	}
	return &Store{
		repo:          repo,
		sessionTTL:    sessionTTL,
		persistentTTL: persistentTTL,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the store's clock. Test hook.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// TTL returns the session lifetime for the given tier. The transport uses it
// to align cookie Max-Age with the stored expiry.
func (s *Store) TTL(persistent bool) time.Duration {
	if persistent {
		return s.persistentTTL
	}
	return s.sessionTTL
}

// Create issues a new active session for userID with the TTL tier selected by
// persistent. The token is resampled until it is collision-free against the
// store. Returns the stored record, whose Token field carries the credential
// for the transport.
func (s *Store) Create(ctx context.Context, userID string, persistent bool, meta domain.Metadata) (*domain.Session, error) {
	now := s.now()
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := security.GenerateToken()
		if err != nil {
			return nil, err
		}
		sess := &domain.Session{
			ID:        uuid.New().String(),
			Token:     token,
			UserID:    userID,
			Active:    true,
			ExpiresAt: now.Add(s.TTL(persistent)),
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
			CreatedAt: now,
		}
		err = s.repo.Create(ctx, sess)
		if errors.Is(err, repository.ErrDuplicateToken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sess, nil
	}
	return nil, fmt.Errorf("session: token collision persisted after %d attempts", maxTokenAttempts)
}

// Get returns the session for token, or nil if absent. Expiry and revocation
// are not judged here; use Validate.
func (s *Store) Get(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.repo.GetByToken(ctx, token)
}

// Validate resolves token to its owning user. valid is false when the token
// is absent, revoked, or expired. Expired rows are left in place for
// out-of-band cleanup. err is non-nil only for repository failures.
func (s *Store) Validate(ctx context.Context, token string) (userID string, valid bool, err error) {
	if token == "" {
		return "", false, nil
	}
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return "", false, err
	}
	if sess == nil || !sess.ValidAt(s.now()) {
		return "", false, nil
	}
	return sess.UserID, true, nil
}

// Revoke deactivates the session for token. Idempotent: revoking an unknown
// or already-inactive token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Revoke(ctx, token)
}

// RevokeAllForUser deactivates every session owned by userID. Used when an
// account is soft-deleted.
func (s *Store) RevokeAllForUser(ctx context.Context, userID string) error {
	return s.repo.RevokeAllForUser(ctx, userID)
}

// PurgeExpired deletes sessions that expired before now and returns the
// count. Intended for a periodic maintenance caller, never the request path.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredBefore(ctx, s.now())
}
