package auth_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/auth"
	"saledash/internal/users"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &users.User{ID: 42, Email: "alice@example.com", Role: users.RoleUser}

	token, err := auth.CreateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = auth.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSignature(t *testing.T) {
	claims := jwt.MapClaims{"userId": float64(7)}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingUserID(t *testing.T) {
	user := &users.User{Email: "no-id@example.com", Role: users.RoleUser}

	token, err := auth.CreateAccessToken(user)
	require.NoError(t, err)

	// ID 0 is not a valid user reference.
	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
