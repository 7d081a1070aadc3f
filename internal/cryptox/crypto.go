// Package cryptox implements the cryptographic primitives of the
// challenge-response protocol: account-key derivation and response
// computation. Both the CLI client and the server use the same functions,
// which is what keeps the two sides byte-for-byte compatible.
package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// AccountKeySize is the size of a derived account key in bytes.
const AccountKeySize = 32

// KDF selects the account-key derivation function. The choice is a client-side
// concern: the server stores whatever key it is given at signup and only ever
// compares HMACs, so both variants share the same external contract.
type KDF string

const (
	// KDFSHA256 is a single SHA-256 pass over "{username}:{salt}:{passphrase}".
	// Fast and therefore weak against offline brute force if the stored key
	// leaks; kept as the wire-compatible default.
	KDFSHA256 KDF = "sha256"

	// KDFArgon2id stretches the passphrase with Argon2id before use.
	KDFArgon2id KDF = "argon2id"
)

// ParseKDF maps a configuration string to a KDF.
func ParseKDF(s string) (KDF, error) {
	switch KDF(s) {
	case KDFSHA256:
		return KDFSHA256, nil
	case KDFArgon2id:
		return KDFArgon2id, nil
	default:
		return "", fmt.Errorf("unknown kdf %q", s)
	}
}

// DeriveAccountKey derives the 256-bit account key from a username, passphrase
// and server-configured salt: SHA-256 over the UTF-8 bytes of
// "{username}:{salt}:{passphrase}".
//
// Deterministic and total; changing any input changes the key. The salt is not
// secret-strength, it only has to be consistent between derivation and later
// comparison.
func DeriveAccountKey(username, passphrase, salt string) []byte {
	h := sha256.Sum256([]byte(username + ":" + salt + ":" + passphrase))
	return h[:]
}

// DeriveAccountKeyStretched is the hardened variant of DeriveAccountKey:
// Argon2id over the same concatenated input, keyed by the salt. Same contract
// (derive → compare), deliberately slow.
func DeriveAccountKeyStretched(username, passphrase, salt string) []byte {
	return argon2.IDKey([]byte(username+":"+salt+":"+passphrase), []byte(salt), 1, 64*1024, 4, AccountKeySize)
}

// Derive dispatches to the derivation function selected by kdf.
func (k KDF) Derive(username, passphrase, salt string) []byte {
	if k == KDFArgon2id {
		return DeriveAccountKeyStretched(username, passphrase, salt)
	}
	return DeriveAccountKey(username, passphrase, salt)
}

// Respond computes the challenge response: HMAC-SHA256(key, challenge).
// The challenge must be the exact issued token bytes, never a re-serialized
// form, or client and server will disagree.
func Respond(challenge, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(challenge)
	return mac.Sum(nil)
}

// RespondHex is Respond in its wire encoding: 64 lowercase hex characters.
func RespondHex(challenge, key []byte) string {
	return hex.EncodeToString(Respond(challenge, key))
}

// VerifyResponse recomputes the expected response for a challenge and compares
// it with the candidate hex string in constant time. Uppercase hex is
// normalized before comparison; anything that is not 64 hex characters fails.
func VerifyResponse(challenge, key []byte, responseHex string) bool {
	candidate, err := hex.DecodeString(responseHex)
	if err != nil || len(candidate) != sha256.Size {
		return false
	}
	expected := Respond(challenge, key)
	return subtle.ConstantTimeCompare(expected, candidate) == 1
}
