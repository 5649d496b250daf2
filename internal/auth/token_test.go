package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusevents/backend/internal/model"
)

var testSecret = []byte("unit-test-secret")

func testUser() *model.User {
	return &model.User{
		ID:    "user-1",
		Email: "student@campus.edu",
		Role:  model.RoleStudent,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	raw, err := IssueToken(testSecret, time.Hour, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseToken(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "student@campus.edu", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	raw, err := IssueToken(testSecret, time.Hour, testUser())
	require.NoError(t, err)

	_, err = ParseToken([]byte("some-other-secret"), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	raw, err := IssueToken(testSecret, -time.Minute, testUser())
	require.NoError(t, err)

	_, err = ParseToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := ParseToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse battery"))
}
