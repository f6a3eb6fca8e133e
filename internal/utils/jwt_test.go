package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "user@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("another-secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	assert.Error(t, err)
}
