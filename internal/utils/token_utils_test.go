package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAdminToken(t *testing.T) {
	now := time.Now()
	token, err := GenerateAdminToken("  ops  ", "secret", time.Hour, now)
	require.NoError(t, err)

	claims, err := ParseAdminToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, AdminTokenIssuer, claims.Issuer)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestGenerateAdminToken_RejectsEmptyInput(t *testing.T) {
	_, err := GenerateAdminToken(" ", "secret", time.Hour, time.Now())
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = GenerateAdminToken("ops", "", time.Hour, time.Now())
	assert.Error(t, err)
}

func TestParseAdminToken_Failures(t *testing.T) {
	expired, err := GenerateAdminToken("ops", "secret", -time.Minute, time.Now())
	require.NoError(t, err)
	_, err = ParseAdminToken(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := GenerateAdminToken("ops", "secret", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseAdminToken(valid, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseAdminToken(noSubject, "secret")
	assert.ErrorIs(t, err, ErrMissingSubject)
}
