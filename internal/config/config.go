// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; empty until DB is wired.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// CookieName is the name of the session cookie.
	CookieName string `mapstructure:"COOKIE_NAME"`
	// LoginPath is where unauthenticated browser requests are redirected.
	LoginPath string `mapstructure:"LOGIN_PATH"`
	// LogoutPath is the path the logout handler redirects to after clearing the cookie.
	LogoutPath string `mapstructure:"LOGOUT_PATH"`
	// AccessDeniedPath is where authenticated requests without access land.
	AccessDeniedPath string `mapstructure:"ACCESS_DENIED_PATH"`
	// SessionTTL is the normal sign-in session lifetime (e.g. "1h").
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// PersistentSessionTTL is the "remember me" session lifetime (e.g. "720h").
	PersistentSessionTTL string `mapstructure:"PERSISTENT_SESSION_TTL"`
	// SlidingExpiration re-issues a fresh-TTL session on each authenticated request.
	SlidingExpiration bool `mapstructure:"SLIDING_EXPIRATION"`
	// RequireHTTPS marks the session cookie Secure so browsers only send it over TLS.
	RequireHTTPS bool `mapstructure:"REQUIRE_HTTPS"`
	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("COOKIE_NAME", "bizconnect_auth")
	v.SetDefault("LOGIN_PATH", "/login")
	v.SetDefault("LOGOUT_PATH", "/login")
	v.SetDefault("ACCESS_DENIED_PATH", "/access-denied")
	v.SetDefault("SESSION_TTL", "1h")
	v.SetDefault("PERSISTENT_SESSION_TTL", "720h") // 30d
	v.SetDefault("SLIDING_EXPIRATION", true)
	v.SetDefault("REQUIRE_HTTPS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.CookieName == "" || strings.ContainsAny(cfg.CookieName, " ;,=") {
		return nil, errors.New("config: COOKIE_NAME must be a valid cookie name")
	}
	if !strings.HasPrefix(cfg.LoginPath, "/") {
		return nil, errors.New("config: LOGIN_PATH must start with /")
	}

	return &cfg, nil
}

// SessionDuration parses SessionTTL as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) SessionDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// PersistentSessionDuration parses PersistentSessionTTL as a time.Duration. Returns 720h if unset or invalid.
func (c *Config) PersistentSessionDuration() time.Duration {
	d, err := time.ParseDuration(c.PersistentSessionTTL)
	if err != nil || d <= 0 {
		return 720 * time.Hour
	}
	return d
}
