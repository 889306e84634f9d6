package domain

import "time"

// Metadata carries optional client attributes captured at session creation.
// Audit only; never used in validation decisions.
type Metadata struct {
	IPAddress string
	UserAgent string
}

// Session represents one issued authentication session. The token is opaque
// and unique across all sessions. Active false means explicitly revoked;
// expiry is judged against ExpiresAt at read time and the stored value is
// never extended.
type Session struct {
	ID        string
	Token     string
	UserID    string
	Active    bool
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// ValidAt reports whether the session is usable at the given instant:
// active and not yet expired.
func (s *Session) ValidAt(t time.Time) bool {
	return s.Active && t.Before(s.ExpiresAt)
}
