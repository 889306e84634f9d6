package security

import (
	"encoding/hex"
	"testing"
)

func TestGenerateToken_Format(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if len(token) != TokenBytes*2 {
		t.Errorf("token length = %d, want %d", len(token), TokenBytes*2)
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token %q is not hex: %v", token, err)
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestTokenEqual(t *testing.T) {
	a, _ := GenerateToken()
	b, _ := GenerateToken()

	if !TokenEqual(a, a) {
		t.Error("TokenEqual should match identical tokens")
	}
	if TokenEqual(a, b) {
		t.Error("TokenEqual should reject different tokens")
	}
	if TokenEqual(a, a+"0") {
		t.Error("TokenEqual should reject tokens of different length")
	}
	if TokenEqual("", a) {
		t.Error("TokenEqual should reject empty token")
	}
}
