// Package cryptox derives and checks the backend admin password verifier.
//
// The backend never keeps the admin password itself: at startup it derives an
// argon2id key from (password, salt) and keeps only a SHA-256 verifier of that
// key. Logins repeat the derivation and compare verifiers in constant time.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches password with salt using argon2id (1 pass, 64 MiB, 4 lanes, 32 bytes).
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key so it can be stored and compared.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewVerifier is DeriveKey followed by MakeVerifier.
func NewVerifier(password, salt []byte) []byte {
	return MakeVerifier(DeriveKey(password, salt))
}

// CheckPassword reports whether password+salt reproduce verifier.
func CheckPassword(password, salt, verifier []byte) bool {
	candidate := NewVerifier(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
