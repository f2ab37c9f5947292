package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	userID := uuid.New()

	token, session, err := m.Generate(userID, "a@gmail.com")
	require.NoError(t, err)
	assert.NotEmpty(t, session.TokenID)
	assert.Equal(t, time.Hour, session.ExpiresAt.Sub(session.IssuedAt))

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@gmail.com", claims.Email)

	got, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, session.TokenID, got.TokenID)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret", time.Hour).Generate(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.Generate(uuid.New(), "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "*"}, "*"))
	assert.False(t, Contains(nil, "*"))
}
