package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdeck_backend/internal/appErrors"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, CheckPasswordHash("secret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.ErrorIs(t, ValidatePassword("short"), appErrors.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword(""), appErrors.ErrWeakPassword)
}

func TestGenerateTempPassword(t *testing.T) {
	first, err := GenerateTempPassword()
	require.NoError(t, err)
	second, err := GenerateTempPassword()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, len(first), 8)
}

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	require.NoError(t, err)
	second, err := GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, len(first), 32)
}
