package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestJWTService_GenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@example.com", employee.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, employee.RoleAdmin, claims.Role)
	assert.True(t, claims.CanViewAll())
}

func TestJWTService_InvalidExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever")
	_, _, err := svc.GenerateAccessToken("user-1", "a@example.com", employee.RoleEmployee)
	assert.Error(t, err)
}

func TestJWTService_RevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", time.Now().Add(time.Hour))
	assert.True(t, svc.IsTokenRevoked("abc"))

	// Expired entries are pruned on the next revocation.
	svc.RevokeToken("old", time.Now().Add(-time.Hour))
	svc.RevokeToken("new", time.Now().Add(time.Hour))
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("new"))
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)
}

func TestClaims_CanViewAll(t *testing.T) {
	assert.False(t, Claims{Role: employee.RoleEmployee}.CanViewAll())
	assert.True(t, Claims{Role: employee.RoleCEO}.CanViewAll())
}
