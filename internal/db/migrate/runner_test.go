package migrate

import (
	"strings"
	"testing"
)

func TestRun_EmptyDSN(t *testing.T) {
	err := Run("", "up")
	if err == nil {
		t.Fatal("Run with empty DSN should fail")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error should point at DATABASE_URL, got %q", err)
	}
}

func TestRun_InvalidDirection(t *testing.T) {
	for _, direction := range []string{"", "sideways", "UP", "Down"} {
		if err := Run("postgres://localhost/bizconnect", direction); err == nil {
			t.Errorf("direction %q should be rejected", direction)
		}
	}
}

func TestRun_InvalidDSN(t *testing.T) {
	for _, dsn := range []string{"invalid-dsn", "://localhost/bizconnect", "postgres://"} {
		if err := Run(dsn, "up"); err == nil {
			t.Errorf("Run(%q) should fail", dsn)
		}
	}
}
