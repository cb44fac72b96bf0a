package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	secret, prefix := GenerateAPIKey()

	assert.True(t, strings.HasPrefix(secret, "bb_"))
	assert.Equal(t, secret[:11], prefix)

	other, _ := GenerateAPIKey()
	assert.NotEqual(t, secret, other)
}

func TestHashAndCheckSecret(t *testing.T) {
	secret, _ := GenerateAPIKey()

	hash, err := HashSecret(secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, hash)

	assert.True(t, CheckSecret(secret, hash))
	assert.False(t, CheckSecret("bb_wrong", hash))
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "bb_12345678", KeyPrefix("bb_12345678rest-of-the-secret"))
	assert.Equal(t, "short", KeyPrefix("short"))
}
