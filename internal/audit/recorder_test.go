package audit

import (
	"context"
	"errors"
	"testing"

	"bizconnect/backend/internal/audit/domain"
)

// mockAuditRepo implements the audit repository interface for tests.
type mockAuditRepo struct {
	entries   []*domain.Event
	createErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, e *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.Event, error) {
	return nil, nil
}

func TestRecord_Success(t *testing.T) {
	repo := &mockAuditRepo{}
	rec := NewLogger(repo, nil)

	rec.Record(context.Background(), "user-1", domain.ActionLoginSuccess, "192.168.1.1", "persistent=false")

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" {
		t.Error("event ID should be assigned")
	}
	if e.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", e.UserID, "user-1")
	}
	if e.Action != domain.ActionLoginSuccess {
		t.Errorf("Action = %q, want %q", e.Action, domain.ActionLoginSuccess)
	}
	if e.IP != "192.168.1.1" {
		t.Errorf("IP = %q, want %q", e.IP, "192.168.1.1")
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestRecord_EmptyIPBecomesUnknown(t *testing.T) {
	repo := &mockAuditRepo{}
	rec := NewLogger(repo, nil)

	rec.Record(context.Background(), "user-1", domain.ActionLogout, "", "")

	if repo.entries[0].IP != "unknown" {
		t.Errorf("IP = %q, want %q", repo.entries[0].IP, "unknown")
	}
}

func TestRecord_RepoErrorSwallowed(t *testing.T) {
	repo := &mockAuditRepo{createErr: errors.New("db down")}
	rec := NewLogger(repo, nil)

	// Must not panic or propagate the failure.
	rec.Record(context.Background(), "user-1", domain.ActionLoginFailure, "10.0.0.1", "")

	if len(repo.entries) != 0 {
		t.Errorf("no entries expected, got %d", len(repo.entries))
	}
}

func TestRecord_NilRepoIsNoop(t *testing.T) {
	rec := NewLogger(nil, nil)
	rec.Record(context.Background(), "user-1", domain.ActionLogout, "", "")
}
