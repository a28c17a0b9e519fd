package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdeck_backend/internal/config"
	"coachdeck_backend/internal/models"
)

func setTestConfig(t *testing.T, secret string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t, "unit-test-secret")

	user := &models.User{
		BaseModel:   models.BaseModel{ID: "user-1"},
		Phone:       "+639170000000",
		Role:        models.UserRoleCoach,
		AccessLevel: models.AccessLevelUser,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleCoach, claims.Role)
	assert.Equal(t, "+639170000000", claims.Phone)
	assert.False(t, claims.IsSuperAdmin)
}

func TestTokenCarriesSuperAdminFlag(t *testing.T) {
	setTestConfig(t, "unit-test-secret")

	user := &models.User{
		BaseModel:   models.BaseModel{ID: "admin-1"},
		Role:        models.UserRoleSuperAdmin,
		AccessLevel: models.AccessLevelAdmin,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsSuperAdmin)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setTestConfig(t, "first-secret")
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: models.UserRoleStudent}

	token, err := GenerateToken(user)
	require.NoError(t, err)

	setTestConfig(t, "second-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig(t, "unit-test-secret")
	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}
