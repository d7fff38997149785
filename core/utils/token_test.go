package utils

import (
	"testing"

	"marketplace-api/core/config"
	"marketplace-api/core/constants"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	_, err := config.Load()
	require.NoError(t, err)

	userID := uuid.New()
	token, err := GenerateToken(userID, "jane@example.com", constants.RoleSeller, constants.ScopeTokenAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndParseToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, constants.RoleSeller, claims.Role)
	require.Equal(t, constants.ScopeTokenAccess, claims.Scope)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := config.Load()
	require.NoError(t, err)

	_, err = ValidateAndParseToken("not-a-jwt")
	require.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hashed)

	require.True(t, ComparePassword(hashed, "s3cret-pass"))
	require.False(t, ComparePassword(hashed, "wrong"))
}

func TestGenerateReferenceCode(t *testing.T) {
	code := GenerateReferenceCode()
	require.Len(t, code, 10)
	require.NotEqual(t, code, GenerateReferenceCode())
}

func TestGenerateSlugSuffix(t *testing.T) {
	require.Len(t, GenerateSlugSuffix(), 6)
}
