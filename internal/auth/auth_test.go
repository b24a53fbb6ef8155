package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}

func TestTokenIssueAndVerify(t *testing.T) {
	token, err := IssueToken("test-secret", "user-1", true, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", "user-1", false, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	token, err := IssueToken("test-secret", "user-1", false, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("test-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
