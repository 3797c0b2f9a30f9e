package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSalt_SizeAndUniqueness(t *testing.T) {
	a := NewSalt()
	b := NewSalt()
	assert.Len(t, a, SaltSize)
	assert.Len(t, b, SaltSize)
	assert.False(t, bytes.Equal(a, b), "two salts should not collide")
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := NewSalt()
	h1 := HashPassword([]byte("secret1"), salt)
	h2 := HashPassword([]byte("secret1"), salt)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, argonKeyLen)
}

func TestHashPassword_SaltMatters(t *testing.T) {
	h1 := HashPassword([]byte("secret1"), NewSalt())
	h2 := HashPassword([]byte("secret1"), NewSalt())
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	salt := NewSalt()
	hash := HashPassword([]byte("secret1"), salt)

	assert.True(t, VerifyPassword([]byte("secret1"), salt, hash))
	assert.False(t, VerifyPassword([]byte("secret2"), salt, hash))
	assert.False(t, VerifyPassword([]byte(""), salt, hash))
}
