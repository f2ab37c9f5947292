package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("Abcdef12")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(encoded), "argon2id$v=19$m=65536,t=1,p=4$"))

	assert.NoError(t, VerifyPassword(string(encoded), "Abcdef12"))
	assert.ErrorIs(t, VerifyPassword(string(encoded), "abcdef12"), ErrPasswordMismatch)
}

func TestHashIsSalted(t *testing.T) {
	h := Argon2Hasher{}
	a, err := h.Hash("Abcdef12")
	require.NoError(t, err)
	b, err := h.Hash("Abcdef12")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NoError(t, h.Verify(a, "Abcdef12"))
	assert.NoError(t, h.Verify(b, "Abcdef12"))
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"bcrypt$whatever",
		"argon2id$v=19$m=x$salt$hash",
		"argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	} {
		err := VerifyPassword(encoded, "Abcdef12")
		assert.Error(t, err, encoded)
		assert.NotErrorIs(t, err, ErrPasswordMismatch, encoded)
	}
}
