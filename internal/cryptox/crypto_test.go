package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestDeriveAccountKey_Deterministic(t *testing.T) {
	a := DeriveAccountKey("alice", "correct-horse", "pepper")
	b := DeriveAccountKey("alice", "correct-horse", "pepper")
	if !hmac.Equal(a, b) {
		t.Fatalf("same inputs must derive the same key")
	}
	if len(a) != AccountKeySize {
		t.Fatalf("expected %d-byte key, got %d", AccountKeySize, len(a))
	}
}

func TestDeriveAccountKey_InputsMatter(t *testing.T) {
	base := DeriveAccountKey("alice", "correct-horse", "pepper")

	variants := [][]byte{
		DeriveAccountKey("bob", "correct-horse", "pepper"),
		DeriveAccountKey("alice", "wrong-horse", "pepper"),
		DeriveAccountKey("alice", "correct-horse", "salt"),
	}
	for i, v := range variants {
		if hmac.Equal(base, v) {
			t.Fatalf("variant %d produced the same key as base", i)
		}
	}
}

func TestDeriveAccountKey_KnownConstruction(t *testing.T) {
	// the key is sha256("{username}:{salt}:{passphrase}")
	want := sha256.Sum256([]byte("alice:pepper:correct-horse"))
	got := DeriveAccountKey("alice", "correct-horse", "pepper")
	if !hmac.Equal(want[:], got) {
		t.Fatalf("derivation does not match sha256 over the concatenated string")
	}
}

func TestDeriveAccountKeyStretched_DiffersFromPlain(t *testing.T) {
	plain := DeriveAccountKey("alice", "correct-horse", "pepper")
	stretched := DeriveAccountKeyStretched("alice", "correct-horse", "pepper")
	if len(stretched) != AccountKeySize {
		t.Fatalf("expected %d-byte key, got %d", AccountKeySize, len(stretched))
	}
	if hmac.Equal(plain, stretched) {
		t.Fatalf("stretched key must not equal the plain derivation")
	}
	again := DeriveAccountKeyStretched("alice", "correct-horse", "pepper")
	if !hmac.Equal(stretched, again) {
		t.Fatalf("stretched derivation must be deterministic")
	}
}

func TestParseKDF(t *testing.T) {
	if _, err := ParseKDF("sha256"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseKDF("argon2id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseKDF("md5"); err == nil {
		t.Fatalf("expected error for unknown kdf")
	}
}

func TestRespond_MatchesHMAC(t *testing.T) {
	key := DeriveAccountKey("alice", "correct-horse", "pepper")
	challenge := []byte("header.payload.signature")

	mac := hmac.New(sha256.New, key)
	mac.Write(challenge)
	want := mac.Sum(nil)

	got := Respond(challenge, key)
	if !hmac.Equal(want, got) {
		t.Fatalf("Respond does not match HMAC-SHA256")
	}
}

func TestRespondHex_Format(t *testing.T) {
	key := DeriveAccountKey("alice", "correct-horse", "pepper")
	s := RespondHex([]byte("challenge"), key)
	if len(s) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(s))
	}
	if s != strings.ToLower(s) {
		t.Fatalf("expected lowercase hex, got %q", s)
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("not valid hex: %v", err)
	}
}

func TestVerifyResponse(t *testing.T) {
	key := DeriveAccountKey("alice", "correct-horse", "pepper")
	challenge := []byte("some.challenge.token")
	resp := RespondHex(challenge, key)

	if !VerifyResponse(challenge, key, resp) {
		t.Fatalf("valid response rejected")
	}
	if !VerifyResponse(challenge, key, strings.ToUpper(resp)) {
		t.Fatalf("uppercase hex must be accepted after normalization")
	}

	wrongKey := DeriveAccountKey("alice", "wrong-horse", "pepper")
	if VerifyResponse(challenge, wrongKey, resp) {
		t.Fatalf("response accepted with the wrong key")
	}
	if VerifyResponse(challenge, key, "zz") {
		t.Fatalf("non-hex response accepted")
	}
	if VerifyResponse(challenge, key, resp[:32]) {
		t.Fatalf("truncated response accepted")
	}
}
