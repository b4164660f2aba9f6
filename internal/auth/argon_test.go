package auth_test

import (
	"testing"

	"github.com/reks-G/Mrdomsetos/internal/auth"
)

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	h := auth.NewArgon2Hasher()

	encoded, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if encoded == "hunter2" {
		t.Fatalf("hash must not be the plain password")
	}
	if !h.Verify("hunter2", encoded) {
		t.Fatalf("correct password must verify")
	}
	if h.Verify("wrong", encoded) {
		t.Fatalf("wrong password must not verify")
	}
	if h.Verify("hunter2", "not-an-encoded-hash") {
		t.Fatalf("garbage hash must not verify")
	}
}
