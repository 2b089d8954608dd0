package users_test

import (
	"strings"
	"testing"

	"github.com/ariefcatur/go-storefront-api.git/internal/users"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := users.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if strings.Contains(hash, "s3cret-pass") {
		t.Fatal("hash contains the plaintext password")
	}
	if !users.CheckPassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if users.CheckPassword(hash, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := users.HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := users.HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}
