package auth

import (
	"testing"
	"time"
)

func TestTokenManager_SignVerify(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, expires, err := m.Sign(42, "ravi", RoleUser)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Error("expiry should be in the future")
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "ravi" {
		t.Errorf("Username = %q, want ravi", claims.Username)
	}
	if claims.Role != RoleUser {
		t.Errorf("Role = %q, want %q", claims.Role, RoleUser)
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Sign(1, "u", RoleUser)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("token signed with a different secret should not verify")
	}
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	if _, err := m.Verify("not-a-token"); err == nil {
		t.Error("garbage token should not verify")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter22" {
		t.Error("hash should not equal the plaintext")
	}

	if err := ComparePassword(hash, "hunter22"); err != nil {
		t.Errorf("ComparePassword() with correct password error = %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("ComparePassword() with wrong password should fail")
	}
}

func TestSubjects(t *testing.T) {
	u := UserSubject(7)
	if !u.IsUser() || u.IsGuest() || u.IsZero() {
		t.Errorf("user subject flags wrong: %+v", u)
	}

	g := NewGuest()
	if !g.IsGuest() || g.IsUser() {
		t.Errorf("guest subject flags wrong: %+v", g)
	}
	if g.GuestID == NewGuest().GuestID {
		t.Error("guest tokens should be unique")
	}

	var zero Subject
	if !zero.IsZero() {
		t.Error("zero subject should report IsZero")
	}
}
