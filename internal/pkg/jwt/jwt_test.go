package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("sup-1", "lead")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sup-1", claims[ClaimSupervisorID])
	assert.Equal(t, "lead", claims[ClaimUsername])
	assert.Equal(t, TokenTypeAccess, claims[ClaimType])
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour).(*JWTService)
	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, _, err := svc.GenerateAccessToken("sup-1", "lead")
	require.NoError(t, err)

	var verifyErr error
	handler := jwtauth.Verifier(svc.JWTAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, verifyErr = jwtauth.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Error(t, verifyErr)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	a := NewJWTService("first-secret-key-0001", time.Hour)
	b := NewJWTService("second-secret-key-002", time.Hour)

	token, _, err := a.GenerateAccessToken("sup-1", "lead")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(b.JWTAuth(), token)
	assert.Error(t, err)
}
