package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxUsernameLen bounds the unique username column.
const MaxUsernameLen = 50

// User is the core identity record. Username is unique, case-sensitive, and
// immutable after creation. Active false marks a soft-deleted account; the
// row is retained.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time // nil until first successful login
}

// FullName returns the display name assembled from first/last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if len(u.Username) > MaxUsernameLen {
		return errors.New("username exceeds 50 characters")
	}
	if u.Active && u.PasswordHash == "" {
		return errors.New("active user must have a password hash")
	}
	return nil
}
