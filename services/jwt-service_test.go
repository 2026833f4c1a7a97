package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/models"
)

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	user := models.User{ID: 42, Username: "alice"}

	access, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = svc.ValidateToken(refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestValidateToken_RejectsWrongType(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	access, refresh, err := svc.GenerateTokenPair(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(refresh, TokenTypeAccess)
	assert.Error(t, err, "a refresh token must not pass as an access token")
	_, err = svc.ValidateToken(access, TokenTypeRefresh)
	assert.Error(t, err, "an access token must not pass as a refresh token")
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateTokenPair(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute, 24*time.Hour)
	verifier := NewJWTService("secret-b", 15*time.Minute, 24*time.Hour)

	access, _, err := issuer.GenerateTokenPair(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)

	_, err = verifier.ValidateToken("not-a-token", TokenTypeAccess)
	assert.Error(t, err)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	_, refresh, err := svc.GenerateTokenPair(models.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "bob", claims.Username)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateTokenPair(models.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	_, err = svc.Refresh(access)
	assert.Error(t, err)
}
