package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.CookieName != "bizconnect_auth" {
		t.Errorf("CookieName = %q, want %q", cfg.CookieName, "bizconnect_auth")
	}
	if cfg.LoginPath != "/login" {
		t.Errorf("LoginPath = %q, want %q", cfg.LoginPath, "/login")
	}
	if cfg.SessionTTL != "1h" {
		t.Errorf("SessionTTL = %q, want %q", cfg.SessionTTL, "1h")
	}
	if cfg.PersistentSessionTTL != "720h" {
		t.Errorf("PersistentSessionTTL = %q, want %q", cfg.PersistentSessionTTL, "720h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if !cfg.SlidingExpiration {
		t.Error("SlidingExpiration should default to true")
	}
	if cfg.RequireHTTPS {
		t.Error("RequireHTTPS should default to false")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("COOKIE_NAME", "custom_session")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("SLIDING_EXPIRATION", "false")
	os.Setenv("REQUIRE_HTTPS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.CookieName != "custom_session" {
		t.Errorf("CookieName = %q, want %q", cfg.CookieName, "custom_session")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if cfg.SlidingExpiration {
		t.Error("SlidingExpiration should be false")
	}
	if !cfg.RequireHTTPS {
		t.Error("RequireHTTPS should be true")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	for _, cost := range []string{"3", "32", "-1"} {
		os.Clearenv()
		os.Setenv("HTTP_ADDR", ":8080")
		os.Setenv("BCRYPT_COST", cost)

		if _, err := Load(); err == nil {
			t.Errorf("Load with BCRYPT_COST=%s should fail", cost)
		}
	}
}

func TestLoad_InvalidCookieName(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("COOKIE_NAME", "bad name;")

	if _, err := Load(); err == nil {
		t.Error("Load with invalid COOKIE_NAME should fail")
	}
}

func TestLoad_InvalidLoginPath(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("LOGIN_PATH", "login")

	if _, err := Load(); err == nil {
		t.Error("Load with relative LOGIN_PATH should fail")
	}
}

func TestSessionDuration(t *testing.T) {
	tests := []struct {
		ttl  string
		want time.Duration
	}{
		{"1h", time.Hour},
		{"30m", 30 * time.Minute},
		{"", time.Hour},
		{"garbage", time.Hour},
		{"-5m", time.Hour},
	}
	for _, tt := range tests {
		c := &Config{SessionTTL: tt.ttl}
		if got := c.SessionDuration(); got != tt.want {
			t.Errorf("SessionDuration(%q) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}

func TestPersistentSessionDuration(t *testing.T) {
	tests := []struct {
		ttl  string
		want time.Duration
	}{
		{"720h", 720 * time.Hour},
		{"48h", 48 * time.Hour},
		{"", 720 * time.Hour},
		{"nope", 720 * time.Hour},
	}
	for _, tt := range tests {
		c := &Config{PersistentSessionTTL: tt.ttl}
		if got := c.PersistentSessionDuration(); got != tt.want {
			t.Errorf("PersistentSessionDuration(%q) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}
