package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushp314/learnhub-backend/internal/config"
)

func init() {
	config.AppConfig = &config.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("user-1", "asha@example.com", "USER")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "learnhub-backend", claims.Issuer)
}

func TestTokenSecretsAreSeparate(t *testing.T) {
	access, err := GenerateAccessToken("user-1", "asha@example.com", "USER")
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken("user-1", "asha@example.com", "USER")
	require.NoError(t, err)

	_, err = ValidateToken(refresh)
	assert.Error(t, err)
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
