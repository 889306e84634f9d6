package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

// TokenBytes is the entropy of a session token: 32 bytes = 256 bits,
// hex-encoded to 64 characters.
const TokenBytes = 32

// GenerateToken returns a new opaque session token from crypto/rand.
func GenerateToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TokenEqual performs constant-time comparison of two session tokens.
// Returns true only if they match.
func TokenEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
