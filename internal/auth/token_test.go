package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	require.NotNil(t, claims.IssuedAt)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	other := NewTokenManager("secret-b", 60)

	token, _, err := tm.GenerateToken(1)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestIssuedBefore(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken(7)
	require.NoError(t, err)
	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	// A password change after issuance invalidates the token.
	assert.True(t, claims.IssuedBefore(time.Now().Add(time.Minute)))
	// A change before issuance does not.
	assert.False(t, claims.IssuedBefore(time.Now().Add(-time.Minute)))

	// Tokens without an issued-at claim are always treated as stale.
	empty := &Claims{}
	assert.True(t, empty.IssuedBefore(time.Now()))
}

func TestIssuedBeforeSecondResolution(t *testing.T) {
	issued := time.Date(2026, 3, 1, 8, 8, 17, 0, time.UTC)
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(issued),
	}}

	// Changing the password a few hundred milliseconds after issuance lands
	// in the same whole second, so the token the change itself returned
	// must still pass.
	assert.False(t, claims.IssuedBefore(issued.Add(100*time.Millisecond)))
	assert.False(t, claims.IssuedBefore(issued.Add(999*time.Millisecond)))

	// One second later the token is stale.
	assert.True(t, claims.IssuedBefore(issued.Add(time.Second)))
}
