package security

import (
	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a well-formed bcrypt digest of a random throwaway value. Login
// verifies against it when the username is unknown so the response time does
// not reveal whether the account exists. It never grants access; the result
// of the comparison is discarded.
const DummyHash = "$2a$12$K7ZBWJGmc8szkirvW1xM9eXrmGvLSHOXMkYRtV4KrTgpsiDrdngm2"

// Hasher hashes and verifies passwords using bcrypt. Callers must not log or
// persist plaintext passwords.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost (4-31). Cost 12 is a
// reasonable default for interactive login.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of password. The salt and cost are embedded in
// the returned string, which is suitable for storage as-is.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches the stored bcrypt hash. A malformed
// or empty hash verifies as false; it is never an error. bcrypt's comparison
// is constant-time with respect to the password.
func (h *Hasher) Verify(password []byte, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}
