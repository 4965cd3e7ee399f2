package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Sign(secret, "user-123", "alice", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Verify(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Sign([]byte("secret-a"), "user-123", "alice", time.Hour)
	require.NoError(t, err)

	_, err = Verify([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Sign(secret, "user-123", "alice", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(secret, token)
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := Verify([]byte("test-secret"), "not.a.jwt")
	assert.Error(t, err)
}
