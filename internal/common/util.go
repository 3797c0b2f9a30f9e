// Package common contains small shared helpers used across dukabook
// components.
package common

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandBytes returns n cryptographically random bytes.
// It panics if the system entropy source fails, since no credential
// material may ever be derived from a partial read.
func GenerateRandBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// MakeRandHexString returns a hex string encoding n random bytes
// (so the result is 2*n characters long).
func MakeRandHexString(n int) string {
	return hex.EncodeToString(GenerateRandBytes(n))
}
