package jwt

import (
	"FeastForBeasts/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token := svc.GenerateTokenUser("user1", domain.RoleAdmin)
	require.NotEmpty(t, token)

	session, err := svc.SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Session{UserID: "user1", Role: domain.RoleAdmin, Token: token}, session)
	assert.True(t, session.IsAdmin())
}

func TestSessionFromToken_DefaultsToDonor(t *testing.T) {
	svc := NewJWTService("test-secret")

	session, err := svc.SessionFromToken(svc.GenerateTokenUser("user1", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDonor, session.Role)
}

func TestSessionFromToken_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.SessionFromToken("")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	_, err = svc.SessionFromToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	foreign := NewJWTService("other-secret").GenerateTokenUser("user1", domain.RoleAdmin)
	_, err = svc.SessionFromToken(foreign)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := &jwtService{
		secretKey: "test-secret",
		issuer:    "FEASTFORBEASTS",
		now:       func() time.Time { return time.Now().Add(-3 * time.Hour) },
	}
	_, err = svc.SessionFromToken(expired.GenerateTokenUser("user1", domain.RoleDonor))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
