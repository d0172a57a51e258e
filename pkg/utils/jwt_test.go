package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateToken(t *testing.T) {
	secret := []byte("unit-test-secret")
	ownerID := uuid.New()

	token, err := CreateToken(secret, ownerID, "acme")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, ownerID.String(), claims.OwnerID)
	assert.Equal(t, "acme", claims.UserName)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := CreateToken([]byte("signing-secret"), uuid.New(), "acme")
	require.NoError(t, err)

	_, err = ValidateToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken([]byte("unit-test-secret"), "not.a.token")
	assert.Error(t, err)
}
