package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neethishnk/hawkcards/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})

	token, err := GenerateToken("user-1", "john.anderson@hawkforce.ai", "USER")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "john.anderson@hawkforce.ai", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-a"})
	token, err := GenerateToken("user-1", "a@b.c", "USER")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "key-b"})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
