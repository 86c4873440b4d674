package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.NoError(t, hasher.Compare(hash, "secret"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	a, err := hasher.Hash("secret")
	require.NoError(t, err)
	b, err := hasher.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestInvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "secret"))
}
