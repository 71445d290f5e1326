package credential

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/twooter-server/internal/model"
)

var _ model.CredentialVerifier = (*Argon2)(nil)

const keyLen = 32

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	MemKiB  uint32
	Par     uint8
	SaltLen int
}

// Argon2 hashes passwords with Argon2id.
type Argon2 struct {
	params KDFParams
}

// NewArgon2 creates an Argon2 verifier. Zero fields fall back to defaults.
func NewArgon2(params KDFParams) *Argon2 {
	if params.Time == 0 {
		params.Time = 1
	}
	if params.MemKiB == 0 {
		params.MemKiB = 64 * 1024
	}
	if params.Par == 0 {
		params.Par = 4
	}
	if params.SaltLen <= 0 {
		params.SaltLen = 16
	}

	return &Argon2{params: params}
}

// NewSalt returns a fresh random salt.
func (a *Argon2) NewSalt() ([]byte, error) {
	salt := make([]byte, a.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives the password hash for salt.
func (a *Argon2) Hash(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, a.params.Time, a.params.MemKiB, a.params.Par, keyLen)
}
