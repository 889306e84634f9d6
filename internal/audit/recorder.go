package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizconnect/backend/internal/audit/domain"
	auditrepo "bizconnect/backend/internal/audit/repository"
)

// Recorder writes a single audit event with an explicit action. Used by the
// login, logout, and user-deactivation code paths.
// Record is best-effort: failures are logged and do not affect the caller.
type Recorder interface {
	Record(ctx context.Context, userID, action, ip, metadata string)
}

// Logger implements Recorder using the audit repository.
type Logger struct {
	repo auditrepo.Repository
	log  *zap.Logger
}

// NewLogger returns a Recorder that persists to repo and reports insert
// failures to log. log may be nil; then failures are silently dropped.
func NewLogger(repo auditrepo.Repository, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{repo: repo, log: log}
}

// Record writes one audit entry. Best-effort: errors are logged and not returned.
func (l *Logger) Record(ctx context.Context, userID, action, ip, metadata string) {
	if l.repo == nil {
		return
	}
	if ip == "" {
		ip = "unknown"
	}
	entry := &domain.Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.Warn("audit: failed to record event",
			zap.String("action", action),
			zap.Error(err))
	}
}

// Nop is a Recorder that discards every event. Useful in tests and for
// callers that run without a database.
type Nop struct{}

func (Nop) Record(context.Context, string, string, string, string) {}
