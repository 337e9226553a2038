package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("1234", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "1234", hash)
	assert.True(t, VerifyPassword(hash, "1234"))
	assert.False(t, VerifyPassword(hash, "12345"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("secret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-hash", "1234"))
}
