package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)
	userID := uuid.New()

	token, err := m.Generate(userID, RoleRenter)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleRenter, claims.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", 15*time.Minute)
	token, err := m.Generate(uuid.New(), RoleAdmin)
	require.NoError(t, err)

	other := NewJWTManager("secret-b", 15*time.Minute)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -1*time.Minute)
	token, err := m.Generate(uuid.New(), RoleRenter)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}
