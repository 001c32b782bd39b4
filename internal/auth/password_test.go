package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
)

func TestHashPassword_VerifiesAndSalts(t *testing.T) {
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, auth.ComparePassword(hash, "password123"))
	assert.Error(t, auth.ComparePassword(hash, "password124"))

	// Hashing is salted, two hashes of the same input differ.
	other, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestComparePassword_GarbageHash(t *testing.T) {
	assert.Error(t, auth.ComparePassword("not-a-bcrypt-hash", "password123"))
}
