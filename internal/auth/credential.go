package auth

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SecretName is the secret-store entry holding the local credential.
// The Manager is the sole writer of this entry.
const SecretName = "local_auth"

// Credential is the one-per-device local credential persisted in the secret
// store, never in the relational database. Its presence is the definition of
// "setup complete".
type Credential struct {
	PrincipalID      string `json:"principalId"`
	PasswordHash     []byte `json:"passwordHash"`
	Salt             string `json:"salt"` // hex-encoded, fixed length
	BiometricEnabled bool   `json:"biometricEnabled"`
	LastLogin        int64  `json:"lastLogin"` // unix milliseconds
}

// SaltBytes decodes the hex salt.
func (c *Credential) SaltBytes() ([]byte, error) {
	salt, err := hex.DecodeString(c.Salt)
	if err != nil {
		return nil, fmt.Errorf("corrupt credential salt: %w", err)
	}
	return salt, nil
}

func (c *Credential) marshal() ([]byte, error) {
	return json.Marshal(c)
}

func unmarshalCredential(blob []byte) (*Credential, error) {
	c := &Credential{}
	if err := json.Unmarshal(blob, c); err != nil {
		return nil, fmt.Errorf("corrupt credential blob: %w", err)
	}
	return c, nil
}
