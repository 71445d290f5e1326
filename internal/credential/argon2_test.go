package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArgon2() *Argon2 {
	return NewArgon2(KDFParams{Time: 1, MemKiB: 1024, Par: 1, SaltLen: 8})
}

func TestArgon2_NewSalt(t *testing.T) {
	a := newTestArgon2()

	s1, err := a.NewSalt()
	require.NoError(t, err)
	s2, err := a.NewSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 8)
	assert.NotEqual(t, s1, s2)
}

func TestArgon2_Hash(t *testing.T) {
	a := newTestArgon2()
	salt := []byte("saltsalt")

	h1 := a.Hash("secret", salt)
	h2 := a.Hash("secret", salt)

	assert.Len(t, h1, keyLen)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, a.Hash("other", salt))
	assert.NotEqual(t, h1, a.Hash("secret", []byte("pepper!!")))
}

func TestNewArgon2_Defaults(t *testing.T) {
	a := NewArgon2(KDFParams{})

	assert.Equal(t, uint32(1), a.params.Time)
	assert.Equal(t, uint32(64*1024), a.params.MemKiB)
	assert.Equal(t, uint8(4), a.params.Par)
	assert.Equal(t, 16, a.params.SaltLen)
}
