package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktravel/worktravel-api/internal/domain/auth"
	"github.com/worktravel/worktravel-api/internal/domain/user"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("u1", user.RoleHR)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)

	p, err := svc.ParsePrincipal(claims)
	require.NoError(t, err)
	assert.Equal(t, user.Principal{UserID: "u1", Role: user.RoleHR}, p)
}

func TestParsePrincipal_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	_, err := svc.ParsePrincipal(map[string]interface{}{"type": "refresh", "user_id": "u1", "role": "user"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.ParsePrincipal(map[string]interface{}{"type": "access", "role": "user"})
	assert.ErrorIs(t, err, auth.ErrMissingUserID)

	_, err = svc.ParsePrincipal(map[string]interface{}{"type": "access", "user_id": "u1", "role": "owner"})
	assert.ErrorIs(t, err, auth.ErrUnknownRole)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")
	_, _, err := svc.GenerateAccessToken("u1", user.RoleUser)
	assert.Error(t, err)
}
