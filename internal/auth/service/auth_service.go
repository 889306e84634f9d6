package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bizconnect/backend/internal/audit"
	auditdomain "bizconnect/backend/internal/audit/domain"
	"bizconnect/backend/internal/security"
	sessiondomain "bizconnect/backend/internal/session/domain"
	userdomain "bizconnect/backend/internal/user/domain"
)

// Sentinel errors for the auth service; the handler maps them to responses.
var (
	// ErrInvalidCredentials covers unknown username, wrong password, and
	// inactive account. The three are deliberately indistinguishable to the
	// caller to prevent username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated covers a missing, expired, or revoked session, and a
	// session whose owning account has since been deactivated.
	ErrUnauthenticated = errors.New("not authenticated")
)

// UserDirectory is the minimal user lookup surface the auth service depends on.
type UserDirectory interface {
	GetByUsername(ctx context.Context, username string) (*userdomain.User, error)
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// SessionStore is the minimal session surface the auth service depends on.
type SessionStore interface {
	Create(ctx context.Context, userID string, persistent bool, meta sessiondomain.Metadata) (*sessiondomain.Session, error)
	Validate(ctx context.Context, token string) (userID string, valid bool, err error)
	Revoke(ctx context.Context, token string) error
}

// Identity is the claim set handed to the transport layer after successful
// authentication. The transport encodes it into whatever credential
// mechanism it uses; nothing here is a secret.
type Identity struct {
	UserID   string
	Username string
	Email    string
	FullName string
}

// Claims returns the identity as a flat claim-name → value mapping.
func (i Identity) Claims() map[string]string {
	return map[string]string{
		"sub":       i.UserID,
		"username":  i.Username,
		"email":     i.Email,
		"full_name": i.FullName,
	}
}

// Issued is the outcome of a successful login.
type Issued struct {
	Token     string
	ExpiresAt time.Time
	Identity  Identity
}

// AuthService validates credentials, issues sessions, verifies them per
// request, and performs sign-out. Collaborator faults during Login and
// Authenticate are reported to the logger and downgraded to the matching
// rejection; they never reach the caller as storage errors.
type AuthService struct {
	users    UserDirectory
	sessions SessionStore
	hasher   *security.Hasher
	log      *zap.Logger
	audit    audit.Recorder
}

// NewAuthService returns an AuthService with the given dependencies.
// log and auditor may be nil; they default to no-ops.
func NewAuthService(users UserDirectory, sessions SessionStore, hasher *security.Hasher, log *zap.Logger, auditor audit.Recorder) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		log:      log,
		audit:    auditor,
	}
}

// Login authenticates username/password and issues a session. persistent
// selects the long-lived "remember me" TTL tier. The username match is
// case-sensitive and exact.
//
// Every rejection is ErrInvalidCredentials: unknown user, wrong password,
// inactive account, and collaborator faults all look identical from outside.
// Internally the cases diverge only in the audit trail and log fields.
func (s *AuthService) Login(ctx context.Context, username, password string, persistent bool, meta sessiondomain.Metadata) (*Issued, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.log.Error("login: user lookup failed", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if user == nil {
		// Burn a bcrypt verification against a throwaway hash so the response
		// time does not reveal whether the account exists.
		s.hasher.Verify([]byte(password), security.DummyHash)
		s.audit.Record(ctx, "", auditdomain.ActionLoginFailure, meta.IPAddress, "reason=unknown_user")
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify([]byte(password), user.PasswordHash) {
		s.audit.Record(ctx, user.ID, auditdomain.ActionLoginFailure, meta.IPAddress, "reason=bad_password")
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		s.log.Info("login: denied for inactive account", zap.String("user_id", user.ID))
		s.audit.Record(ctx, user.ID, auditdomain.ActionLoginDeniedInactive, meta.IPAddress, "")
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID, persistent, meta)
	if err != nil {
		s.log.Error("login: session create failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	// Best effort: a failed stamp must not undo a successful login.
	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.log.Warn("login: last-login stamp failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.audit.Record(ctx, user.ID, auditdomain.ActionLoginSuccess, meta.IPAddress, "")
	return &Issued{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Identity:  identityOf(user),
	}, nil
}

// Authenticate resolves a session token to the current identity. The user
// record is re-fetched on every call so a deactivated account invalidates
// all of its sessions immediately, even though the session rows themselves
// remain active.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	userID, valid, err := s.sessions.Validate(ctx, token)
	if err != nil {
		s.log.Error("authenticate: session validate failed", zap.Error(err))
		return nil, ErrUnauthenticated
	}
	if !valid {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Error("authenticate: user lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrUnauthenticated
	}
	if user == nil || !user.Active {
		return nil, ErrUnauthenticated
	}

	id := identityOf(user)
	return &id, nil
}

// Logout revokes the session for token. It always succeeds from the caller's
// perspective: unknown and already-revoked tokens are fine, and store faults
// are logged and swallowed. Sign-out must never block the caller.
func (s *AuthService) Logout(ctx context.Context, token string) {
	userID, _, _ := s.sessions.Validate(ctx, token)
	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.log.Error("logout: revoke failed", zap.Error(err))
		return
	}
	s.audit.Record(ctx, userID, auditdomain.ActionLogout, "", "")
}

func identityOf(u *userdomain.User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName(),
	}
}
