package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, verifier.Compare(hash, "secret123"))
	assert.Error(t, verifier.Compare(hash, "secret124"))
	assert.Error(t, verifier.Compare("not-a-hash", "secret123"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestBcryptHasherRejectsOverlongPassword(t *testing.T) {
	t.Parallel()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(string(long))
	assert.Error(t, err)
}
