package domain

import (
	"strings"
	"testing"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Alice", "Archer", "Alice Archer"},
		{"Alice", "", "Alice"},
		{"", "Archer", "Archer"},
		{"", "", ""},
	}
	for _, tc := range cases {
		u := &User{FirstName: tc.first, LastName: tc.last}
		if got := u.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := &User{Username: "alice", PasswordHash: "hash", Active: true}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid user: %v", err)
	}

	if err := (&User{PasswordHash: "hash"}).Validate(); err == nil {
		t.Error("missing username should fail")
	}
	long := &User{Username: strings.Repeat("a", MaxUsernameLen+1), PasswordHash: "hash"}
	if err := long.Validate(); err == nil {
		t.Error("over-long username should fail")
	}
	if err := (&User{Username: "alice", Active: true}).Validate(); err == nil {
		t.Error("active user without hash should fail")
	}
	if err := (&User{Username: "alice", Active: false}).Validate(); err != nil {
		t.Errorf("inactive user without hash should pass: %v", err)
	}
}
