package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizconnect/backend/internal/audit"
	auditdomain "bizconnect/backend/internal/audit/domain"
	"bizconnect/backend/internal/security"
	"bizconnect/backend/internal/user/domain"
	userrepo "bizconnect/backend/internal/user/repository"
)

// Sentinel errors for the directory service.
var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrUserNotFound    = errors.New("user not found")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)

// SessionRevoker is the session surface the directory needs: deactivating an
// account must cascade to every session it owns.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID string) error
}

// Directory manages user identity records: provisioning, profile updates,
// and soft deletion. Authentication itself lives in the auth service; this
// is the collaborator it reads from.
type Directory struct {
	repo     userrepo.Repository
	sessions SessionRevoker
	hasher   *security.Hasher
	log      *zap.Logger
	audit    audit.Recorder
}

// NewDirectory returns a Directory with the given dependencies.
// log and auditor may be nil; they default to no-ops.
func NewDirectory(repo userrepo.Repository, sessions SessionRevoker, hasher *security.Hasher, log *zap.Logger, auditor audit.Recorder) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Directory{
		repo:     repo,
		sessions: sessions,
		hasher:   hasher,
		log:      log,
		audit:    auditor,
	}
}

// Provision creates a new active user with a hashed password. The username is
// immutable afterwards. Returns ErrUsernameTaken when the name is already in
// use (case-sensitive, like the login match).
func (d *Directory) Provision(ctx context.Context, username, password, email, firstName, lastName string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	existing, err := d.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := d.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := d.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	d.audit.Record(ctx, u.ID, auditdomain.ActionUserProvisioned, "", "username="+username)
	return u, nil
}

// UpdateProfile writes email and name fields for an existing user. The
// username and password are not touched here.
func (d *Directory) UpdateProfile(ctx context.Context, userID, email, firstName, lastName string) (*domain.User, error) {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	u.Email = email
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.UpdatedAt = time.Now().UTC()

	if err := d.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Deactivate soft-deletes the account and revokes every session it owns. The
// user row is retained. Idempotent for an already-inactive account.
func (d *Directory) Deactivate(ctx context.Context, userID string) error {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := d.repo.SetActive(ctx, userID, false); err != nil {
		return err
	}
	// Cascade: no session may outlive its account. A failure here is logged
	// but does not resurrect the user; Authenticate re-checks the active flag
	// on every request regardless.
	if err := d.sessions.RevokeAllForUser(ctx, userID); err != nil {
		d.log.Error("deactivate: session cascade failed", zap.String("user_id", userID), zap.Error(err))
	}
	d.audit.Record(ctx, userID, auditdomain.ActionUserDeactivated, "", "")
	return nil
}

// IsActive reports whether the user exists and is not soft-deleted.
func (d *Directory) IsActive(ctx context.Context, userID string) (bool, error) {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u != nil && u.Active, nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil // optional
	}
	const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ok, _ := regexp.MatchString(simpleEmail, email)
	if !ok {
		return ErrInvalidEmail
	}
	return nil
}
