package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("equal digests for repeated calls; salt not fresh")
	}
	if !CheckPassword(h1, "s3cret-pass") || !CheckPassword(h2, "s3cret-pass") {
		t.Fatalf("digest does not verify against its own plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("hunter2!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword(h, "hunter2!") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(h, "hunter2!x") {
		t.Fatalf("wrong password accepted")
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	if CheckPassword("not-a-bcrypt-digest", "whatever") {
		t.Fatalf("malformed digest verified")
	}
	if CheckPassword("", "whatever") {
		t.Fatalf("empty digest verified")
	}
}

func TestHashPassword_CostClamped(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw", 99)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("cost = %d, want clamp to %d", cost, DefaultBcryptCost)
	}
}
