package helpers

import "testing"

func TestJWTSignVerifyRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret")

	token, err := m.Sign("user-123")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if token == "" {
		t.Fatal("Sign returned empty token")
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("Verify user id = %q, want %q", userID, "user-123")
	}
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").Sign("user-123")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := NewJWTManager("secret-b").Verify(token); err == nil {
		t.Fatal("Verify accepted a token signed with another secret")
	}
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret")
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); err == nil {
			t.Fatalf("Verify(%q) accepted garbage", tok)
		}
	}
}

func TestJWTVerifyRejectsTampered(t *testing.T) {
	m := NewJWTManager("test-secret")
	token, err := m.Sign("user-123")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.Verify(tampered); err == nil {
		t.Fatal("Verify accepted a tampered token")
	}
}
