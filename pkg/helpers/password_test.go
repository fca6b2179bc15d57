package helpers

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("hash equals the plain password")
	}

	if !CheckPassword(hash, "Sup3rSecret") {
		t.Fatal("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "WrongPass1") {
		t.Fatal("CheckPassword accepted a wrong password")
	}
}

func TestCheckPasswordBadHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatal("CheckPassword accepted a malformed hash")
	}
}
