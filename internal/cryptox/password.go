// Package cryptox implements password hashing for the local credential.
//
// Hashing is deliberately slow (argon2id) so that a stolen device backup
// cannot be brute-forced cheaply offline. Verification is constant-time.
package cryptox

import (
	"crypto/subtle"

	"github.com/tinashem/dukabook/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the fixed salt length in bytes, generated once at setup.
const SaltSize = 16

// argon2id parameters, tuned so a single derivation takes on the order of
// 100 ms on the target hardware.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSalt returns a fresh random salt of SaltSize bytes.
func NewSalt() []byte {
	return common.GenerateRandBytes(SaltSize)
}

// HashPassword derives the stored password hash from a password and salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword recomputes the hash for the candidate password and compares
// it to the stored hash in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
