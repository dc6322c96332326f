package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_minimum_32_chars"

func TestGenerateAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		role   string
	}{
		{name: "Junior", userID: 1, role: "JUNIOR"},
		{name: "Senior", userID: 2, role: "SENIOR"},
	}

	m := NewTokenManager(testSecret, time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.Generate(tt.userID, tt.role)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := m.Validate(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.role, claims.Role)
			assert.True(t, claims.ExpiresAt.Time.After(time.Now()))
			assert.False(t, claims.ExpiresAt.Time.After(time.Now().Add(time.Hour+time.Minute)))
		})
	}
}

func TestValidate_InvalidToken(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	for _, token := range []string{"", "invalid.token.here", "randomstring"} {
		_, err := m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}

	other, err := NewTokenManager("another_secret_key_minimum_32_chars", time.Hour).Generate(1, "JUNIOR")
	require.NoError(t, err)
	_, err = m.Validate(other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, -time.Minute)
	token, err := m.Generate(7, "JUNIOR")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "abc", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
}
